package handle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/app/services"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"
	"sembrador-pos/internal/xpkg/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	mylog, err := logger.New("ERROR")
	require.NoError(t, err)
	return mylog
}

type stubShiftRepo struct {
	shift models.Shift
	err   error
}

func (s *stubShiftRepo) Open(_ context.Context, _ string, _ int64) (models.Shift, error) {
	return s.shift, s.err
}

func (s *stubShiftRepo) Current(_ context.Context, _ string) (*models.Shift, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.shift.ID == "" {
		return nil, nil
	}
	return &s.shift, nil
}

func (s *stubShiftRepo) Close(_ context.Context, _ string, _ *int64, _ string) (models.Shift, error) {
	return s.shift, s.err
}

func (s *stubShiftRepo) Summary(_ context.Context, _ string) (dto.ShiftSummary, error) {
	return dto.ShiftSummary{Shift: s.shift}, s.err
}

type stubOrderRepo struct {
	order  models.Order
	recent []dto.RecentOrder
	err    error
}

func (s *stubOrderRepo) Create(_ context.Context, _ string) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) ReplaceItems(_ context.Context, _ string, _ []dto.ItemRequest) (int64, error) {
	return s.order.TotalCents, s.err
}

func (s *stubOrderRepo) Pay(_ context.Context, _ string, _ int64) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) Cancel(_ context.Context, _ string) (models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) RecentPaid(_ context.Context, _ string, _ int) ([]dto.RecentOrder, error) {
	return s.recent, s.err
}

type noBroker struct{}

func (noBroker) Enabled() bool { return false }

func (noBroker) Publish(context.Context, string, any) error { return nil }

func (noBroker) Close() error { return nil }

func newTestMux(t *testing.T, shiftRepo core.IShiftRepo, orderRepo core.IOrderRepo) *http.ServeMux {
	t.Helper()
	mylog := testLogger(t)

	shiftHandler := NewShiftHandler(services.NewShiftService(shiftRepo, noBroker{}, mylog), mylog)
	orderHandler := NewOrderHandler(services.NewOrderService(orderRepo, noBroker{}, mylog), mylog)

	mux := http.NewServeMux()
	mux.Handle("POST /api/shifts/open", shiftHandler.Open())
	mux.Handle("GET /api/shifts/current", shiftHandler.Current())
	mux.Handle("POST /api/shifts/{id}/close", shiftHandler.Close())
	mux.Handle("GET /api/shifts/{id}/summary", shiftHandler.Summary())
	mux.Handle("POST /api/orders", orderHandler.Create())
	mux.Handle("PUT /api/orders/{id}/items", orderHandler.ReplaceItems())
	mux.Handle("POST /api/orders/{id}/pay", orderHandler.Pay())
	mux.Handle("POST /api/orders/{id}/cancel", orderHandler.Cancel())
	mux.Handle("GET /api/orders/recent", orderHandler.Recent())
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestShiftEndpoints(t *testing.T) {
	t.Run("open shift ok", func(t *testing.T) {
		repo := &stubShiftRepo{shift: models.Shift{ID: "shift-1", RegisterID: "CAJA-1", Status: models.ShiftOpen}}
		mux := newTestMux(t, repo, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodPost, "/api/shifts/open",
			`{"register_id":"CAJA-1","opening_cash":"500"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("open shift accepts numeric opening cash", func(t *testing.T) {
		repo := &stubShiftRepo{shift: models.Shift{ID: "shift-1"}}
		mux := newTestMux(t, repo, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodPost, "/api/shifts/open",
			`{"register_id":"CAJA-1","opening_cash":500}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("open shift on unknown register is 404", func(t *testing.T) {
		repo := &stubShiftRepo{err: core.ErrUnknownEntity}
		mux := newTestMux(t, repo, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodPost, "/api/shifts/open",
			`{"register_id":"CAJA-9","opening_cash":"0"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("open shift with negative cash is 400", func(t *testing.T) {
		mux := newTestMux(t, &stubShiftRepo{}, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodPost, "/api/shifts/open",
			`{"register_id":"CAJA-1","opening_cash":"-10"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("open shift with bad JSON is 400", func(t *testing.T) {
		mux := newTestMux(t, &stubShiftRepo{}, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodPost, "/api/shifts/open", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("current shift returns null when none open", func(t *testing.T) {
		mux := newTestMux(t, &stubShiftRepo{}, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodGet, "/api/shifts/current?register_id=CAJA-1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("close shift tolerates empty body", func(t *testing.T) {
		repo := &stubShiftRepo{shift: models.Shift{ID: "shift-1", Status: models.ShiftClosed}}
		mux := newTestMux(t, repo, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodPost, "/api/shifts/shift-1/close", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("summary of unknown shift is 404", func(t *testing.T) {
		repo := &stubShiftRepo{err: core.ErrUnknownEntity}
		mux := newTestMux(t, repo, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodGet, "/api/shifts/nope/summary", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderEndpoints(t *testing.T) {
	t.Run("create order ok", func(t *testing.T) {
		repo := &stubOrderRepo{order: models.Order{ID: "order-1", Folio: 42, Status: models.OrderOpen}}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPost, "/api/orders", `{"register_id":"CAJA-1"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"folio":42`)
	})

	t.Run("create order with no open shift is 409", func(t *testing.T) {
		repo := &stubOrderRepo{err: core.ErrNoOpenShift}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPost, "/api/orders", `{"register_id":"CAJA-1"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("replace items returns new total", func(t *testing.T) {
		repo := &stubOrderRepo{order: models.Order{TotalCents: 5000}}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPut, "/api/orders/order-1/items",
			`{"items":[{"product_id":"tamal","qty":2}]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"total_cents":5000}`, rec.Body.String())
	})

	t.Run("replace items on closed order is 409", func(t *testing.T) {
		repo := &stubOrderRepo{err: core.ErrOrderNotOpen}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPut, "/api/orders/order-1/items",
			`{"items":[{"product_id":"tamal","qty":1}]}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("pay returns change", func(t *testing.T) {
		repo := &stubOrderRepo{order: models.Order{Status: models.OrderPaid, ChangeCents: 1000}}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPost, "/api/orders/order-1/pay",
			`{"cash_received":"600"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"change_cents":1000}`, rec.Body.String())
	})

	t.Run("pay with insufficient cash is 400", func(t *testing.T) {
		repo := &stubOrderRepo{err: core.ErrInsufficientCash}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPost, "/api/orders/order-1/pay",
			`{"cash_received":"1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("pay on already paid order is 409", func(t *testing.T) {
		repo := &stubOrderRepo{err: core.ErrOrderNotOpen}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPost, "/api/orders/order-1/pay",
			`{"cash_received":"600"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("cancel ok", func(t *testing.T) {
		repo := &stubOrderRepo{order: models.Order{Status: models.OrderCanceled}}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodPost, "/api/orders/order-1/cancel", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("recent rejects non-integer limit", func(t *testing.T) {
		mux := newTestMux(t, &stubShiftRepo{}, &stubOrderRepo{})

		rec := doJSON(t, mux, http.MethodGet, "/api/orders/recent?register_id=CAJA-1&limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("recent returns paid orders", func(t *testing.T) {
		repo := &stubOrderRepo{recent: []dto.RecentOrder{{Folio: 7, TotalCents: 2500}}}
		mux := newTestMux(t, &stubShiftRepo{}, repo)

		rec := doJSON(t, mux, http.MethodGet, "/api/orders/recent?register_id=CAJA-1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"folio":7`)
	})
}

func TestBusinessErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown entity", core.ErrUnknownEntity, http.StatusNotFound},
		{"no open shift", core.ErrNoOpenShift, http.StatusConflict},
		{"order not open", core.ErrOrderNotOpen, http.StatusConflict},
		{"insufficient cash", core.ErrInsufficientCash, http.StatusBadRequest},
		{"empty field", core.ErrFieldIsEmpty, http.StatusBadRequest},
		{"unexpected", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			businessError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
