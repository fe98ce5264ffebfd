package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/pkg/money"
)

func jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, status int, err error) {
	jsonResponse(w, status, map[string]string{"error": err.Error()})
}

// businessError maps a service error onto an HTTP status. Every business
// failure is a structured kind; anything unrecognized is a server fault.
func businessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnknownEntity):
		jsonError(w, http.StatusNotFound, err)
	case errors.Is(err, core.ErrNoOpenShift), errors.Is(err, core.ErrOrderNotOpen):
		jsonError(w, http.StatusConflict, err)
	case errors.Is(err, core.ErrInsufficientCash):
		jsonError(w, http.StatusBadRequest, err)
	case errors.Is(err, core.ErrFieldIsEmpty),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrNegativeAmount):
		jsonError(w, http.StatusBadRequest, err)
	default:
		jsonError(w, http.StatusInternalServerError, err)
	}
}
