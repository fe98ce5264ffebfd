package handle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/app/services"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/xpkg/logger"
)

type ShiftHandler struct {
	shiftService *services.ShiftService
	mylog        logger.Logger
}

func NewShiftHandler(shiftService *services.ShiftService, mylog logger.Logger) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService, mylog: mylog}
}

func (h *ShiftHandler) Open() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.OpenShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.mylog.Action("parse_failed").Error("Failed to parse open-shift request", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := requestCtx(r)
		defer cancel()

		if _, err := h.shiftService.Open(ctx, req); err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *ShiftHandler) Current() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		shift, err := h.shiftService.Current(ctx, r.URL.Query().Get("register_id"))
		if err != nil {
			businessError(w, err)
			return
		}
		// null when no shift is open, mirroring the storefront contract
		jsonResponse(w, http.StatusOK, shift)
	}
}

func (h *ShiftHandler) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CloseShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := requestCtx(r)
		defer cancel()

		if _, err := h.shiftService.Close(ctx, r.PathValue("id"), req); err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *ShiftHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		summary, err := h.shiftService.Summary(ctx, r.PathValue("id"))
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, summary)
	}
}

func requestCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), core.WaitTime*time.Second)
}
