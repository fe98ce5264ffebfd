package handle

import (
	"net/http"

	"sembrador-pos/internal/pos/app/services"
	"sembrador-pos/internal/xpkg/logger"
)

// ReportHandler serves the catalog listings and the admin dashboard reads.
type ReportHandler struct {
	reportService *services.ReportService
	mylog         logger.Logger
}

func NewReportHandler(reportService *services.ReportService, mylog logger.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, mylog: mylog}
}

func (h *ReportHandler) Registers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		registers, err := h.reportService.Registers(ctx)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, registers)
	}
}

func (h *ReportHandler) Products() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		products, err := h.reportService.Products(ctx)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, products)
	}
}

func (h *ReportHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		stats, err := h.reportService.Stats(ctx)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, stats)
	}
}

func (h *ReportHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestCtx(r)
		defer cancel()

		history, err := h.reportService.History(ctx)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, history)
	}
}
