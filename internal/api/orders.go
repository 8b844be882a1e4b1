package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/timberpunk/timberpunk/internal/model"
	"github.com/timberpunk/timberpunk/internal/store"
)

// OrdersHandler handles checkout and order management endpoints.
type OrdersHandler struct {
	DB *sql.DB
}

type createOrderRequest struct {
	FirstName       string                   `json:"first_name"`
	LastName        string                   `json:"last_name"`
	Email           string                   `json:"email"`
	Phone           string                   `json:"phone"`
	ShippingAddress string                   `json:"shipping_address"`
	Note            string                   `json:"note"`
	Items           []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	ProductID       int64  `json:"product_id"`
	Quantity        int    `json:"quantity"`
	SelectedOptions string `json:"selected_options"`
	CustomEngraving string `json:"custom_engraving"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /orders, the public checkout endpoint.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.ShippingAddress == "" {
		jsonError(w, http.StatusUnprocessableEntity, "first_name, last_name and shipping_address required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "valid email required")
		return
	}
	if len(req.Items) == 0 {
		jsonError(w, http.StatusUnprocessableEntity, "at least one item required")
		return
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			jsonError(w, http.StatusUnprocessableEntity, "item quantity must be at least 1")
			return
		}
	}

	params := store.OrderParams{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
		Note:            req.Note,
	}
	for _, item := range req.Items {
		params.Items = append(params.Items, store.OrderItemParams{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
			CustomEngraving: item.CustomEngraving,
		})
	}

	order, err := store.CreateOrder(r.Context(), h.DB, params)
	if err != nil {
		var notFound *store.ProductNotFoundError
		if errors.As(err, &notFound) {
			jsonError(w, http.StatusNotFound, notFound.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	slog.Info("order placed", "order_id", order.ID, "total", order.Total, "items", len(order.Items))
	jsonResponse(w, http.StatusCreated, order)
}

// List handles GET /orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidOrderStatus(status) {
		jsonError(w, http.StatusUnprocessableEntity, "invalid status filter")
		return
	}

	orders, err := store.ListOrders(r.Context(), h.DB, status)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	jsonResponse(w, http.StatusOK, orders)
}

// Get handles GET /orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid order id")
		return
	}

	order, err := store.GetOrder(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if order == nil {
		jsonError(w, http.StatusNotFound, "order not found")
		return
	}
	jsonResponse(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/{id}. The status is overwritten
// unconditionally; any valid status may replace any other.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid order id")
		return
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if !model.ValidOrderStatus(req.Status) {
		jsonError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	}

	order, err := store.GetOrder(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if order == nil {
		jsonError(w, http.StatusNotFound, "order not found")
		return
	}

	if err := store.UpdateOrderStatus(r.Context(), h.DB, id, req.Status); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	order, err = store.GetOrder(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	slog.Info("order status updated", "order_id", id, "status", req.Status)
	jsonResponse(w, http.StatusOK, order)
}

// Delete handles DELETE /orders/{id}, removing the order and its items in one
// transaction.
func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid order id")
		return
	}

	order, err := store.GetOrder(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if order == nil {
		jsonError(w, http.StatusNotFound, "order not found")
		return
	}

	if err := store.DeleteOrder(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
