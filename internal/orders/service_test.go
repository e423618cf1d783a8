package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/internal/cart"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/pagination"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (f *fakeOrderRepo) WithTx(*gorm.DB) OrderRepository { return f }

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID, _ pagination.Params) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID, status *enums.OrderStatus, _ pagination.Params) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.RestaurantID != restaurantID {
			continue
		}
		if status != nil && order.Status != *status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

type fakeCartStore struct {
	cart *models.Cart
}

func (f *fakeCartStore) WithTx(*gorm.DB) cart.CartRepository { return f }

func (f *fakeCartStore) Create(_ context.Context, c *models.Cart) (*models.Cart, error) {
	c.ID = uuid.New()
	f.cart = c
	return c, nil
}

func (f *fakeCartStore) FindByUser(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	if f.cart == nil || f.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.cart, nil
}

func (f *fakeCartStore) FindByUserAndRestaurant(ctx context.Context, userID, _ uuid.UUID) (*models.Cart, error) {
	return f.FindByUser(ctx, userID)
}

func (f *fakeCartStore) FindByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return f.FindByUser(ctx, userID)
}

func (f *fakeCartStore) ReplaceItems(_ context.Context, cartID uuid.UUID, items []models.CartItem) error {
	if f.cart == nil || f.cart.ID != cartID {
		return gorm.ErrRecordNotFound
	}
	f.cart.Items = items
	return nil
}

func (f *fakeCartStore) UpdateTotal(_ context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	if f.cart == nil || f.cart.ID != cartID {
		return gorm.ErrRecordNotFound
	}
	f.cart.TotalPrice = total
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func cartWithItems(userID, restaurantID uuid.UUID, prices ...string) *models.Cart {
	c := &models.Cart{
		ID:           uuid.New(),
		UserID:       userID,
		RestaurantID: restaurantID,
	}
	total := decimal.Zero
	for _, price := range prices {
		amount, _ := decimal.NewFromString(price)
		c.Items = append(c.Items, models.CartItem{
			ID:        uuid.New(),
			CartID:    c.ID,
			ItemID:    uuid.New(),
			UnitPrice: amount,
		})
		total = total.Add(amount)
	}
	c.TotalPrice = total
	return c
}

func newTestService(t *testing.T, repo OrderRepository, carts cart.CartRepository) Service {
	t.Helper()
	svc, err := NewService(repo, carts, fakeTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, &fakeCartStore{}, fakeTxRunner{}); err == nil {
		t.Fatal("expected error without order repo")
	}
	if _, err := NewService(newFakeOrderRepo(), nil, fakeTxRunner{}); err == nil {
		t.Fatal("expected error without cart repo")
	}
	if _, err := NewService(newFakeOrderRepo(), &fakeCartStore{}, nil); err == nil {
		t.Fatal("expected error without tx runner")
	}
}

func TestCheckoutConvertsCartToOrder(t *testing.T) {
	userID, restaurantID := uuid.New(), uuid.New()
	carts := &fakeCartStore{cart: cartWithItems(userID, restaurantID, "45.00", "22.50")}
	repo := newFakeOrderRepo()
	svc := newTestService(t, repo, carts)

	order, err := svc.Checkout(context.Background(), userID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.RestaurantID != restaurantID || order.UserID != userID {
		t.Fatal("order must copy the cart's restaurant and user")
	}
	if order.TableID != nil {
		t.Fatal("checkout must not assign a table")
	}
	want, _ := decimal.NewFromString("67.50")
	if !order.TotalPrice.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, order.TotalPrice)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two order items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Quantity != 1 {
			t.Fatalf("expected quantity 1, got %d", item.Quantity)
		}
	}

	// The cart is consumed atomically.
	if len(carts.cart.Items) != 0 {
		t.Fatal("cart items must be cleared by checkout")
	}
	if !carts.cart.TotalPrice.IsZero() {
		t.Fatalf("cart total must reset to zero, got %s", carts.cart.TotalPrice)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	userID := uuid.New()
	carts := &fakeCartStore{cart: cartWithItems(userID, uuid.New())}
	svc := newTestService(t, newFakeOrderRepo(), carts)

	_, err := svc.Checkout(context.Background(), userID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "cart is empty" {
		t.Fatalf("expected 'cart is empty', got %q", typed.Message())
	}
}

func TestCheckoutMissingCart(t *testing.T) {
	svc := newTestService(t, newFakeOrderRepo(), &fakeCartStore{})

	_, err := svc.Checkout(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation || typed.Message() != "cart is empty" {
		t.Fatalf("expected empty-cart error, got %v", err)
	}
}

func TestCheckoutSecondAttemptFindsEmptyCart(t *testing.T) {
	userID := uuid.New()
	carts := &fakeCartStore{cart: cartWithItems(userID, uuid.New(), "10.00")}
	repo := newFakeOrderRepo()
	svc := newTestService(t, repo, carts)
	ctx := context.Background()

	if _, err := svc.Checkout(ctx, userID); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	_, err := svc.Checkout(ctx, userID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "cart is empty" {
		t.Fatalf("second checkout must fail with empty cart, got %v", err)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(repo.orders))
	}
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	repo := newFakeOrderRepo()
	restaurantID := uuid.New()
	order := &models.Order{RestaurantID: restaurantID, UserID: uuid.New(), Status: enums.OrderStatusPending}
	repo.Create(context.Background(), order)
	svc := newTestService(t, repo, &fakeCartStore{})
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, order.ID, restaurantID, enums.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("pending->processing: %v", err)
	}
	if updated.Status != enums.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, restaurantID, enums.OrderStatusCompleted); err != nil {
		t.Fatalf("processing->completed: %v", err)
	}

	// completed is terminal
	_, err = svc.UpdateStatus(ctx, order.ID, restaurantID, enums.OrderStatusCancelled)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateStatusRejectsSkippedState(t *testing.T) {
	repo := newFakeOrderRepo()
	restaurantID := uuid.New()
	order := &models.Order{RestaurantID: restaurantID, UserID: uuid.New(), Status: enums.OrderStatusPending}
	repo.Create(context.Background(), order)
	svc := newTestService(t, repo, &fakeCartStore{})

	_, err := svc.UpdateStatus(context.Background(), order.ID, restaurantID, enums.OrderStatusCompleted)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for pending->completed, got %v", err)
	}
}

func TestUpdateStatusScopedToRestaurant(t *testing.T) {
	repo := newFakeOrderRepo()
	order := &models.Order{RestaurantID: uuid.New(), UserID: uuid.New(), Status: enums.OrderStatusPending}
	repo.Create(context.Background(), order)
	svc := newTestService(t, repo, &fakeCartStore{})

	_, err := svc.UpdateStatus(context.Background(), order.ID, uuid.New(), enums.OrderStatusProcessing)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign restaurant, got %v", err)
	}
}

func TestGetForUserHidesForeignOrders(t *testing.T) {
	repo := newFakeOrderRepo()
	owner := uuid.New()
	order := &models.Order{RestaurantID: uuid.New(), UserID: owner, Status: enums.OrderStatusPending}
	repo.Create(context.Background(), order)
	svc := newTestService(t, repo, &fakeCartStore{})
	ctx := context.Background()

	got, err := svc.GetForUser(ctx, order.ID, owner)
	if err != nil {
		t.Fatalf("get own order: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %s, got %s", order.ID, got.ID)
	}

	_, err = svc.GetForUser(ctx, order.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign caller, got %v", err)
	}
}

func TestListForRestaurantFiltersByStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	restaurantID := uuid.New()
	ctx := context.Background()
	repo.Create(ctx, &models.Order{RestaurantID: restaurantID, UserID: uuid.New(), Status: enums.OrderStatusPending})
	repo.Create(ctx, &models.Order{RestaurantID: restaurantID, UserID: uuid.New(), Status: enums.OrderStatusCompleted})
	svc := newTestService(t, repo, &fakeCartStore{})

	pending := enums.OrderStatusPending
	rows, err := svc.ListForRestaurant(ctx, restaurantID, &pending, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Status != enums.OrderStatusPending {
		t.Fatalf("expected one pending order, got %+v", rows)
	}

	bad := enums.OrderStatus("shipped")
	if _, err := svc.ListForRestaurant(ctx, restaurantID, &bad, pagination.Params{}); err == nil {
		t.Fatal("expected error for invalid status filter")
	}
}
