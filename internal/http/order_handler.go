package http

import (
	"encoding/json"
	"net/http"

	"github.com/vadhh/menuweb/internal/domain"
	"github.com/vadhh/menuweb/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type UpdateOrderStatusDTO struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// CreateOrder is the checkout endpoint. Authenticated callers get the
// order linked to their account; everyone else is a guest.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.UserID = getUserID(r.Context())

	order, err := h.orders.CreateOrder(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// ListOrders returns all orders newest-first, or the per-status counts
// aggregate when called with ?type=counts.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("type") == "counts" {
		counts, err := h.orders.OrderCounts(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, counts)
		return
	}

	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OrderID == "" || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Order ID and status are required.")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), req.OrderID, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Order ID is required.")
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), orderID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
