package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vadhh/menuweb/internal/cart"
)

type CartHandler struct {
	store *cart.Store
}

func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{store: store}
}

type AddCartItemDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	ImageURL  string  `json:"imageUrl"`
}

// PatchCartItemDTO changes one entry: a quantity sets it outright, no
// quantity means decrement-by-one.
type PatchCartItemDTO struct {
	Quantity *int `json:"quantity"`
}

type CartResponseDTO struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.store.Get(cartSession(w, r))
	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "productId and name are required")
		return
	}
	if req.UnitPrice < 0 {
		respondError(w, http.StatusBadRequest, "unitPrice cannot be negative")
		return
	}

	c := h.store.Update(cartSession(w, r), func(c *cart.Cart) {
		c.AddOrIncrement(cart.Item{
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			ImageURL:  req.ImageURL,
		})
	})

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

func (h *CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "product id is required")
		return
	}

	var req PatchCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c := h.store.Update(cartSession(w, r), func(c *cart.Cart) {
		if req.Quantity == nil {
			c.Decrement(productID)
			return
		}
		c.SetQuantity(productID, *req.Quantity)
	})

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "product id is required")
		return
	}

	c := h.store.Update(cartSession(w, r), func(c *cart.Cart) {
		c.Remove(productID)
	})

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.store.Update(cartSession(w, r), func(c *cart.Cart) {
		c.Clear()
	})

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func cartResponse(c cart.Cart) CartResponseDTO {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponseDTO{
		Items: items,
		Total: c.Total(),
	}
}
