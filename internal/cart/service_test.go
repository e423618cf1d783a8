package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
)

type fakeCartRepo struct {
	carts       map[uuid.UUID]*models.Cart // keyed by cart id
	createCalls int
	createErr   error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[uuid.UUID]*models.Cart{}}
}

func (f *fakeCartRepo) WithTx(*gorm.DB) CartRepository { return f }

func (f *fakeCartRepo) Create(_ context.Context, cart *models.Cart) (*models.Cart, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.carts {
		if existing.UserID == cart.UserID && existing.RestaurantID == cart.RestaurantID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	cart.ID = uuid.New()
	f.carts[cart.ID] = cart
	return cart, nil
}

func (f *fakeCartRepo) FindByUser(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID {
			return cart, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) FindByUserAndRestaurant(_ context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID && cart.RestaurantID == restaurantID {
			return cart, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) FindByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return f.FindByUser(ctx, userID)
}

func (f *fakeCartRepo) ReplaceItems(_ context.Context, cartID uuid.UUID, items []models.CartItem) error {
	cart, ok := f.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].CartID = cartID
	}
	cart.Items = items
	return nil
}

func (f *fakeCartRepo) UpdateTotal(_ context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	cart, ok := f.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cart.TotalPrice = total
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeMenuLoader struct {
	items map[uuid.UUID]models.MenuItem
}

func (f *fakeMenuLoader) FindMenuItemsByIDs(_ context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func menuLoaderWith(items ...models.MenuItem) *fakeMenuLoader {
	loader := &fakeMenuLoader{items: map[uuid.UUID]models.MenuItem{}}
	for _, item := range items {
		loader.items[item.ID] = item
	}
	return loader
}

func menuItem(restaurantID uuid.UUID, price string) models.MenuItem {
	amount, _ := decimal.NewFromString(price)
	return models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		CategoryID:   uuid.New(),
		Name:         "item",
		Price:        amount,
		Availability: true,
	}
}

func newTestService(t *testing.T, repo CartRepository, menu menuLoader) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{}, menu)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, fakeTxRunner{}, &fakeMenuLoader{}); err == nil {
		t.Fatal("expected error without repo")
	}
	if _, err := NewService(newFakeCartRepo(), nil, &fakeMenuLoader{}); err == nil {
		t.Fatal("expected error without tx runner")
	}
	if _, err := NewService(newFakeCartRepo(), fakeTxRunner{}, nil); err == nil {
		t.Fatal("expected error without menu loader")
	}
}

func TestGetOrCreateIsLazyAndIdempotent(t *testing.T) {
	repo := newFakeCartRepo()
	svc := newTestService(t, repo, &fakeMenuLoader{})
	ctx := context.Background()
	userID, restaurantID := uuid.New(), uuid.New()

	first, err := svc.GetOrCreate(ctx, userID, restaurantID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if !first.TotalPrice.IsZero() {
		t.Fatal("new cart must start with zero total")
	}

	second, err := svc.GetOrCreate(ctx, userID, restaurantID)
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("expected the same cart on repeat calls")
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", repo.createCalls)
	}
}

func TestSetItemsReplacesWholesaleAndRecomputesTotal(t *testing.T) {
	restaurantID := uuid.New()
	itemA := menuItem(restaurantID, "45.00")
	itemB := menuItem(restaurantID, "22.50")
	repo := newFakeCartRepo()
	svc := newTestService(t, repo, menuLoaderWith(itemA, itemB))
	ctx := context.Background()
	userID := uuid.New()

	cart, err := svc.SetItems(ctx, userID, restaurantID, []uuid.UUID{itemA.ID, itemB.ID})
	if err != nil {
		t.Fatalf("set items: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(cart.Items))
	}
	want, _ := decimal.NewFromString("67.50")
	if !cart.TotalPrice.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, cart.TotalPrice)
	}

	// Wholesale replacement: a second call with one id drops the other row.
	cart, err = svc.SetItems(ctx, userID, restaurantID, []uuid.UUID{itemB.ID})
	if err != nil {
		t.Fatalf("set items again: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ItemID != itemB.ID {
		t.Fatalf("expected only item B, got %+v", cart.Items)
	}
	if !cart.TotalPrice.Equal(itemB.Price) {
		t.Fatalf("expected total %s, got %s", itemB.Price, cart.TotalPrice)
	}
}

func TestSetItemsCollapsesDuplicates(t *testing.T) {
	restaurantID := uuid.New()
	item := menuItem(restaurantID, "10.00")
	svc := newTestService(t, newFakeCartRepo(), menuLoaderWith(item))

	cart, err := svc.SetItems(context.Background(), uuid.New(), restaurantID, []uuid.UUID{item.ID, item.ID, item.ID})
	if err != nil {
		t.Fatalf("set items: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("duplicates must collapse to one row, got %d", len(cart.Items))
	}
	if !cart.TotalPrice.Equal(item.Price) {
		t.Fatalf("expected total %s, got %s", item.Price, cart.TotalPrice)
	}
}

func TestSetItemsUnknownItem(t *testing.T) {
	restaurantID := uuid.New()
	svc := newTestService(t, newFakeCartRepo(), &fakeMenuLoader{items: map[uuid.UUID]models.MenuItem{}})

	_, err := svc.SetItems(context.Background(), uuid.New(), restaurantID, []uuid.UUID{uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetItemsCrossRestaurantItem(t *testing.T) {
	restaurantID := uuid.New()
	foreign := menuItem(uuid.New(), "10.00")
	svc := newTestService(t, newFakeCartRepo(), menuLoaderWith(foreign))

	_, err := svc.SetItems(context.Background(), uuid.New(), restaurantID, []uuid.UUID{foreign.ID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetItemsUnavailableItem(t *testing.T) {
	restaurantID := uuid.New()
	item := menuItem(restaurantID, "10.00")
	item.Availability = false
	svc := newTestService(t, newFakeCartRepo(), menuLoaderWith(item))

	_, err := svc.SetItems(context.Background(), uuid.New(), restaurantID, []uuid.UUID{item.ID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetItemsEmptyListEmptiesCart(t *testing.T) {
	restaurantID := uuid.New()
	item := menuItem(restaurantID, "10.00")
	repo := newFakeCartRepo()
	svc := newTestService(t, repo, menuLoaderWith(item))
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.SetItems(ctx, userID, restaurantID, []uuid.UUID{item.ID}); err != nil {
		t.Fatalf("set items: %v", err)
	}
	cart, err := svc.SetItems(ctx, userID, restaurantID, nil)
	if err != nil {
		t.Fatalf("set empty: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if !cart.TotalPrice.IsZero() {
		t.Fatalf("expected zero total, got %s", cart.TotalPrice)
	}
}

func TestClearMissingCartIsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeCartRepo(), &fakeMenuLoader{})

	err := svc.Clear(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestClearIsIdempotentOnEmptyCart(t *testing.T) {
	restaurantID := uuid.New()
	item := menuItem(restaurantID, "10.00")
	repo := newFakeCartRepo()
	svc := newTestService(t, repo, menuLoaderWith(item))
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.SetItems(ctx, userID, restaurantID, []uuid.UUID{item.ID}); err != nil {
		t.Fatalf("set items: %v", err)
	}
	if err := svc.Clear(ctx, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := svc.Clear(ctx, userID); err != nil {
		t.Fatalf("second clear should succeed: %v", err)
	}

	cart, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Items) != 0 || !cart.TotalPrice.IsZero() {
		t.Fatalf("expected empty cart with zero total, got %+v", cart)
	}
}
