package pos

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os/signal"
	"syscall"

	"sembrador-pos/internal/pos/api/http"
	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/xpkg/config"
	"sembrador-pos/internal/xpkg/logger"

	"golang.org/x/sync/errgroup"
)

type params struct {
	serverParams *core.ServerParams
	configPath   string
	cfg          *config.Config
}

// Execute starts the POS server and blocks until shutdown.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := parseParams(args)
	if err != nil {
		mylog.Action("command_parse_failed").Error("Invalid command received", err)
		return err
	}
	if err = validateParams(params); err != nil {
		mylog.Action("command_validation_failed").Error("Invalid command received", err)
		return err
	}
	mylog.Action("command_validation_completed").Info("Successfully validated params")

	server := http.NewServer(newCtx, context.Background(), params.cfg, params.serverParams, mylog)

	g, gctx := errgroup.WithContext(newCtx)
	g.Go(func() error {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mylog.Action("pos_server_failed").Error("Server failed unexpectedly", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		mylog.Action("shutdown_signal_received").Info("Shutdown requested")
		return server.Stop(context.Background())
	})

	return g.Wait()
}

func parseParams(args []string) (*params, error) {
	fs := flag.NewFlagSet("pos-server", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")
	port := fs.Int("port", 3000, "Port to run the POS server")

	if err := fs.Parse(args); err != nil {
		return nil, core.ErrParseCmd
	}

	if *showHelp {
		fs.Usage()
		return nil, core.ErrHelp
	}

	return &params{
		serverParams: &core.ServerParams{Port: *port},
		configPath:   *configPath,
	}, nil
}

func validateParams(params *params) error {
	cfg, err := config.LoadConfig(params.configPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		// Fall back to environment configuration when no YAML is shipped.
		cfg = config.LoadEnv()
	default:
		return fmt.Errorf("load config %q: %w", params.configPath, err)
	}
	params.cfg = cfg

	if params.serverParams.Port <= 0 || params.serverParams.Port >= 65536 {
		return fmt.Errorf("port must be in [1: 65,535]: %d", params.serverParams.Port)
	}
	if cfg.DB == nil {
		return fmt.Errorf("database configuration: %w", core.ErrFieldIsEmpty)
	}
	return nil
}
