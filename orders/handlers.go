package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"greennest/catalog"
	"greennest/live"
	"greennest/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler owns the order workflow HTTP surface.
type Handler struct {
	Store   *Store
	Builder *Builder
	Hub     *live.Hub
}

func NewHandler(store *Store, builder *Builder, hub *live.Hub) *Handler {
	return &Handler{Store: store, Builder: builder, Hub: hub}
}

// POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	order, err := h.Builder.Build(ctx, req, userID)
	if err != nil {
		respondBuildError(w, err)
		return
	}

	if err := h.Store.Create(ctx, order); err != nil {
		log.Println("CreateOrder persist error:", err)
		// The stock is already reserved; give it back before failing.
		h.Builder.ReleaseItems(ctx, order.Items)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	h.Hub.Broadcast(live.Event{
		Type:        "order_created",
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	})

	utils.RespondWithData(w, http.StatusCreated, order)
}

func respondBuildError(w http.ResponseWriter, err error) {
	var notFound *PlantNotFoundError
	var stock *catalog.InsufficientStockError

	switch {
	case errors.Is(err, ErrEmptyOrder):
		utils.RespondWithError(w, http.StatusBadRequest, "No order items")
	case errors.Is(err, ErrInvalidQuantity):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item quantity")
	case errors.As(err, &notFound):
		utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Plant not found: %s", notFound.Ref))
	case errors.Is(err, catalog.ErrNotFound):
		// Plant deleted between validation and reservation.
		utils.RespondWithError(w, http.StatusNotFound, "Plant not found")
	case errors.As(err, &stock):
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Insufficient stock for %s. Available: %d", stock.Plant, stock.Available))
	default:
		log.Println("CreateOrder build error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
	}
}

// GET /api/orders/my-orders
func (h *Handler) GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := h.Store.ListByUser(ctx, userID)
	if err != nil {
		log.Println("GetMyOrders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(list), "data": list})
}

// GET /api/orders (admin)
func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Store.ListAll(ctx)
	if err != nil {
		log.Println("GetAllOrders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(list), "data": list})
}

// GetOrderByID serves GET /api/orders/:id. httprouter cannot register a
// static /my-orders next to the :id segment, so that reserved name is
// dispatched here.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "my-orders" {
		h.GetMyOrders(w, r, ps)
		return
	}
	h.GetOrder(w, r, ps)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Store.GetByID(ctx, ps.ByName("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("GetOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	if !CanView(order, utils.GetUserIDFromRequest(r), utils.IsAdminRequest(r)) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized")
		return
	}

	utils.RespondWithData(w, http.StatusOK, order)
}

// PUT /api/orders/:id/status (admin)
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	updated, err := h.Store.UpdateStatus(ctx, ps.ByName("id"), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, ErrInvalidStatus):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusBadRequest, "Illegal status transition")
		default:
			log.Println("UpdateOrderStatus error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	h.Hub.Broadcast(live.Event{
		Type:    "order_status",
		OrderID: updated.OrderID,
		Status:  updated.Status,
	})

	utils.RespondWithData(w, http.StatusOK, updated)
}

// PUT /api/orders/:id/payment (admin)
func (h *Handler) UpdateOrderPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PaymentStatus == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment status")
		return
	}

	updated, err := h.Store.UpdatePayment(ctx, ps.ByName("id"), body.PaymentStatus)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Println("UpdateOrderPayment error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	h.Hub.Broadcast(live.Event{
		Type:    "order_payment",
		OrderID: updated.OrderID,
		Status:  updated.PaymentStatus,
	})

	utils.RespondWithData(w, http.StatusOK, updated)
}
