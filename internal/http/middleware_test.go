package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vadhh/menuweb/internal/auth"
	"github.com/vadhh/menuweb/internal/cart"
	"github.com/vadhh/menuweb/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSigningSecret = "test-secret"

func newTestRouter(t *testing.T) (*chi.Mux, *auth.TokenManager, *fakeOrderRepository) {
	t.Helper()

	tokens := auth.NewTokenManager(testSigningSecret, time.Hour)
	store := cart.NewStore()
	t.Cleanup(store.Close)
	repo := newFakeOrderRepository()

	router := NewRouter(RouterConfig{
		Tokens:         tokens,
		Auth:           NewAuthHandler(nil),
		Catalog:        NewCatalogHandler(nil),
		Cart:           NewCartHandler(store),
		Orders:         NewOrderHandler(service.NewOrderService(repo, nil)),
		RequestTimeout: time.Second,
	})
	return router, tokens, repo
}

func checkoutBody() string {
	return `{"items":[{"productId":"` + primitive.NewObjectID().Hex() + `","name":"Spring Rolls","quantity":2,"price":8.99}]}`
}

func TestProtectedRoutes_NoToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, path := range []string{"/api/orders", "/api/admin/products", "/api/admin/categories"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", path, nil))

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected %d, got %d", path, http.StatusUnauthorized, recorder.Code)
		}
	}
}

func TestProtectedRoutes_MalformedHeader(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/orders", nil)
	request.Header.Set("Authorization", "Basic not-a-bearer-token")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestProtectedRoutes_GarbageToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/orders", nil)
	request.Header.Set("Authorization", "Bearer not.a.jwt")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestProtectedRoutes_ExpiredToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	expired := auth.NewTokenManager(testSigningSecret, -time.Minute)
	token, err := expired.Issue(primitive.NewObjectID().Hex(), "staff@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/orders", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestProtectedRoutes_ValidToken(t *testing.T) {
	router, tokens, _ := newTestRouter(t)

	token, err := tokens.Issue(primitive.NewObjectID().Hex(), "staff@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/orders", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
}

func TestCheckout_OpenToGuests(t *testing.T) {
	router, _, repo := newTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/orders", strings.NewReader(checkoutBody()))
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}
	for _, order := range repo.orders {
		if order.UserID != nil {
			t.Errorf("guest order should have no user, got %v", order.UserID)
		}
	}
}

func TestCheckout_LinksAuthenticatedUser(t *testing.T) {
	router, tokens, repo := newTestRouter(t)

	userID := primitive.NewObjectID()
	token, err := tokens.Issue(userID.Hex(), "staff@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/orders", strings.NewReader(checkoutBody()))
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	if len(repo.orders) != 1 {
		t.Fatalf("expected 1 stored order, got %d", len(repo.orders))
	}
	for _, order := range repo.orders {
		if order.UserID == nil || *order.UserID != userID {
			t.Errorf("expected order linked to %s, got %v", userID.Hex(), order.UserID)
		}
	}
}
