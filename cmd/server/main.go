package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"syscall"

	route "github.com/bassista/go_observe/internal/api/route"
	appctx "github.com/bassista/go_observe/internal/app"
	"github.com/bassista/go_observe/internal/cache"
	"github.com/bassista/go_observe/internal/config"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/bassista/go_observe/internal/repository"
	"github.com/enrichman/httpgrace"
	"github.com/gin-gonic/gin"
)

func main() {
	mainLog := logger.WithComponent("main")

	cfg, err := config.LoadConfig()
	if err != nil {
		mainLog.Fatalf("configuration error: %v", err)
	}

	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		mainLog.Warnf("invalid log level '%s', keeping '%s': %v", cfg.Misc.LogLevel, logger.Logger.GetLevel(), err)
	}
	mainLog.Infof("API will run on port: %d", cfg.Server.Port)

	repo, err := repository.NewJSONRepository(cfg.Data.FilePath)
	if err != nil {
		mainLog.Fatalf("cannot init repository: %v", err)
	}

	doc, err := loadOrCreate(context.Background(), repo, cfg.Data.FilePath)
	if err != nil {
		mainLog.Fatalf("cannot load data file: %v", err)
	}

	app, err := appctx.New(cfg, repo, cache.NewStore(*doc))
	if err != nil {
		mainLog.Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		mainLog.Fatalf("%v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := route.SetupRoutes(app)
	srv := createGraceHttpServer(app.BaseCtx, "api-server", cfg.Server, r)

	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.Error(err)
	}
}

// loadOrCreate loads the data file, writing an empty document first if it does not exist yet.
func loadOrCreate(ctx context.Context, repo interface {
	repository.Loader
	repository.Saver
}, path string) (*repository.DataDocument, error) {
	doc, err := repo.Load(ctx)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	logger.WithComponent("main").Infof("data file %s not found, starting with an empty document", path)
	empty := &repository.DataDocument{}
	empty.ApplyDefaults()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := repo.Save(ctx, empty); err != nil {
		return nil, err
	}
	return empty, nil
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	return httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
}
