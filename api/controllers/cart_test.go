package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PollinateIQ/dineup-backend/api/middleware"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
)

type stubCartService struct {
	cart     *models.Cart
	err      error
	setItems []uuid.UUID
}

func (s *stubCartService) GetOrCreate(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) SetItems(ctx context.Context, userID, restaurantID uuid.UUID, itemIDs []uuid.UUID) (*models.Cart, error) {
	s.setItems = itemIDs
	return s.cart, s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func authedRequest(method, target, body string, userID, restaurantID uuid.UUID) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := middleware.WithUserID(req.Context(), userID)
	if restaurantID != uuid.Nil {
		ctx = middleware.WithRestaurantID(ctx, restaurantID)
	}
	return req.WithContext(ctx)
}

func TestCartGetSuccess(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	cart := &models.Cart{ID: uuid.New(), UserID: userID, RestaurantID: restaurantID, TotalPrice: decimal.Zero}
	handler := CartGet(&stubCartService{cart: cart}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/cart/", "", userID, restaurantID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data models.Cart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != cart.ID {
		t.Fatalf("unexpected cart id %s", envelope.Data.ID)
	}
}

func TestCartGetMissingRestaurantContext(t *testing.T) {
	handler := CartGet(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/cart/", "", uuid.New(), uuid.Nil))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCartSetItemsForwardsIDs(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	itemID := uuid.New()
	svc := &stubCartService{cart: &models.Cart{ID: uuid.New()}}
	handler := CartSetItems(svc, nil)

	body := `{"items":["` + itemID.String() + `"]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/cart/", body, userID, restaurantID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.setItems) != 1 || svc.setItems[0] != itemID {
		t.Fatalf("expected item forwarded, got %v", svc.setItems)
	}
}

func TestCartSetItemsValidationPassthrough(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "unknown menu item")}
	handler := CartSetItems(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/cart/", `{"items":[]}`, uuid.New(), uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClearSuccess(t *testing.T) {
	handler := CartClear(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/cart/clear/", "", uuid.New(), uuid.Nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
