package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safar/pos-backend/internal/models"
	"github.com/safar/pos-backend/internal/pricing"
	"github.com/safar/pos-backend/internal/store"
)

const maxPageSize = 100

type orderLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=10000"`
}

type paymentRequest struct {
	Method        string          `json:"method" validate:"omitempty,oneof=cash card qr other"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID *string         `json:"transaction_id" validate:"omitempty,max=255"`
}

type orderCreateRequest struct {
	UserID   *int64             `json:"user_id" validate:"omitempty,gt=0"`
	Items    []orderLineRequest `json:"items" validate:"dive"`
	Payments []paymentRequest   `json:"payments" validate:"dive"`
	Memo     *string            `json:"memo"`
}

func (req orderCreateRequest) toStore() store.CreateOrderRequest {
	out := store.CreateOrderRequest{
		UserID: req.UserID,
		Memo:   req.Memo,
		Items:  make([]store.OrderLineRequest, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		out.Items = append(out.Items, store.OrderLineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	for _, p := range req.Payments {
		out.Payments = append(out.Payments, pricing.Tender{
			Method:        models.PaymentMethod(p.Method),
			Amount:        p.Amount,
			TransactionID: p.TransactionID,
		})
	}
	return out
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req orderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handleError(w, r, err)
		return
	}

	order, err := h.store.CreateOrder(r.Context(), req.toStore(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	zctx.From(r.Context()).Info("Order created",
		zap.String("order_no", order.OrderNo),
		zap.String("total", formatMoney(order.Total)),
		zap.String("status", string(order.Status)),
	)
	respondJSON(w, http.StatusCreated, newOrderResponse(order))
}

type orderPageResponse struct {
	Items      []orderResponse `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
	HasMore    bool            `json:"has_more"`
}

// listOrders returns every order unless a limit is given, in which case the
// result is paged with an opaque cursor.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		orders, err := h.store.ListOrders(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, newOrderResponses(orders))
		return
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit < 1 || limit > maxPageSize {
		respondError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	page, err := h.store.ListOrdersPage(r.Context(), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderPageResponse{
		Items:      newOrderResponses(page.Orders),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		handleError(w, r, errors.Wrapf(err, "order %d", id))
		return
	}

	respondJSON(w, http.StatusOK, newOrderResponse(order))
}
