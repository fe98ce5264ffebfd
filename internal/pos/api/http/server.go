package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	brokermessage "sembrador-pos/internal/pos/adapter/broker_message"
	database "sembrador-pos/internal/pos/adapter/db"
	"sembrador-pos/internal/pos/api/http/handle"
	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/app/services"
	"sembrador-pos/internal/xpkg/config"
	"sembrador-pos/internal/xpkg/logger"
	"sembrador-pos/pkg/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrServerClosed = errors.New("server closed")

type Server struct {
	mux     *http.ServeMux
	cfg     *config.Config
	srv     *http.Server
	params  *core.ServerParams
	mylog   logger.Logger
	pool    *pgxpool.Pool
	mb      core.IBroker
	metrics *metrics.ServerMetrics
	ctx     context.Context
	appCtx  context.Context
	mu      sync.Mutex
}

func NewServer(ctx, appCtx context.Context, cfg *config.Config, params *core.ServerParams, mylog logger.Logger) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		params: params,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

// Run connects the dependencies, applies migrations, wires the routes and
// serves until the context is canceled or the listener fails.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	pool, err := database.Connect(s.appCtx, s.cfg.DB)
	if err != nil {
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		return fmt.Errorf("%w: %v", core.ErrDBConn, err)
	}
	s.pool = pool
	mylog.Action("db_connected").Info("Successful database connection")

	if err := database.RunMigrations(database.DSN(s.cfg.DB)); err != nil {
		mylog.Action("db_migration_failed").Error("Failed to run migrations", err)
		return err
	}
	mylog.Action("db_migrated").Info("Schema up to date")

	mb, err := brokermessage.New(s.cfg.RMQ, s.mylog)
	if err != nil {
		mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
		return fmt.Errorf("%w: %v", core.ErrMBConn, err)
	}
	s.mb = mb
	if mb.Enabled() {
		mylog.Action("mb_connected").Info("Successful message broker connection")
	} else {
		mylog.Action("mb_disabled").Info("Message broker not configured, events disabled")
	}

	s.metrics = metrics.NewServerMetrics("pos_server")

	if err := s.Configure(); err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.params.Port),
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Unlock()

	mylog.WithGroup("details").With("port", s.params.Port).Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.pool != nil {
		s.pool.Close()
		s.mylog.Action("db_closed").Info("Database closed")
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Action("mb_close_failed").Error("Failed to close message broker", err)
			return fmt.Errorf("mb close: %w", err)
		}
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure builds the repositories, services and handlers and registers
// the routes.
func (s *Server) Configure() error {
	shiftRepo := database.NewShiftRepo(s.pool)
	orderRepo := database.NewOrderRepo(s.pool)
	catalogRepo := database.NewCatalogRepo(s.pool)
	reportRepo := database.NewReportRepo(s.pool)

	shiftService := services.NewShiftService(shiftRepo, s.mb, s.mylog)
	orderService := services.NewOrderService(orderRepo, s.mb, s.mylog)
	reportService, err := services.NewReportService(catalogRepo, reportRepo, s.cfg.Reporting.Timezone, s.mylog)
	if err != nil {
		return err
	}

	shiftHandler := handle.NewShiftHandler(shiftService, s.mylog)
	orderHandler := handle.NewOrderHandler(orderService, s.mylog)
	reportHandler := handle.NewReportHandler(reportService, s.mylog)

	s.handle("GET /api/registers", "registers", reportHandler.Registers())
	s.handle("GET /api/products", "products", reportHandler.Products())

	s.handle("POST /api/shifts/open", "open_shift", shiftHandler.Open())
	s.handle("GET /api/shifts/current", "current_shift", shiftHandler.Current())
	s.handle("POST /api/shifts/{id}/close", "close_shift", shiftHandler.Close())
	s.handle("GET /api/shifts/{id}/summary", "shift_summary", shiftHandler.Summary())

	s.handle("POST /api/orders", "create_order", orderHandler.Create())
	s.handle("PUT /api/orders/{id}/items", "replace_items", orderHandler.ReplaceItems())
	s.handle("POST /api/orders/{id}/pay", "pay_order", orderHandler.Pay())
	s.handle("POST /api/orders/{id}/cancel", "cancel_order", orderHandler.Cancel())
	s.handle("GET /api/orders/recent", "recent_orders", orderHandler.Recent())

	s.handle("GET /api/admin/stats", "admin_stats", reportHandler.Stats())
	s.handle("GET /api/admin/history", "admin_history", reportHandler.History())

	s.mux.HandleFunc("GET /health", s.health)
	s.mux.Handle("GET /metrics", metrics.Handler())
	return nil
}

// handle registers a route wrapped with per-handler request metrics.
func (s *Server) handle(pattern, name string, next http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.Requests.WithLabelValues(name, strconv.Itoa(rec.status)).Inc()
		s.metrics.LatencyMS.WithLabelValues(name).Observe(float64(time.Since(start).Milliseconds()))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"db_error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
