package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sembrador-pos/internal/pos/app/services"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/xpkg/logger"
)

type OrderHandler struct {
	orderService *services.OrderService
	mylog        logger.Logger
}

func NewOrderHandler(orderService *services.OrderService, mylog logger.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, mylog: mylog}
}

func (h *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.mylog.Action("parse_failed").Error("Failed to parse create-order request", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := requestCtx(r)
		defer cancel()

		order, err := h.orderService.Create(ctx, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{"order": order})
	}
}

func (h *OrderHandler) ReplaceItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ReplaceItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := requestCtx(r)
		defer cancel()

		total, err := h.orderService.ReplaceItems(ctx, r.PathValue("id"), req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, dto.ReplaceItemsResponse{OK: true, TotalCents: total})
	}
}

func (h *OrderHandler) Pay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PayOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := requestCtx(r)
		defer cancel()

		order, err := h.orderService.Pay(ctx, r.PathValue("id"), req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, dto.PayOrderResponse{OK: true, ChangeCents: order.ChangeCents})
	}
}

func (h *OrderHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		if _, err := h.orderService.Cancel(ctx, r.PathValue("id")); err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *OrderHandler) Recent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				jsonError(w, http.StatusBadRequest, errors.New("limit must be an integer"))
				return
			}
			limit = n
		}

		ctx, cancel := requestCtx(r)
		defer cancel()

		orders, err := h.orderService.Recent(ctx, r.URL.Query().Get("register_id"), limit)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, orders)
	}
}
