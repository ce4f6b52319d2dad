package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/agri-supply-ledger/internal/auth"
	"github.com/iliyamo/agri-supply-ledger/internal/config"
	"github.com/iliyamo/agri-supply-ledger/internal/database"
	"github.com/iliyamo/agri-supply-ledger/internal/handler"
	"github.com/iliyamo/agri-supply-ledger/internal/logging"
	"github.com/iliyamo/agri-supply-ledger/internal/middleware"
	"github.com/iliyamo/agri-supply-ledger/internal/repository"
	"github.com/iliyamo/agri-supply-ledger/internal/router"
	"github.com/iliyamo/agri-supply-ledger/internal/service"
	"github.com/iliyamo/agri-supply-ledger/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Env)
	ctx := context.Background()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	hasher, err := utils.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	issuer, err := utils.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		return err
	}

	var denylist auth.Denylist
	if cfg.Redis.Enabled() {
		if rdb := config.NewRedisClient(cfg.Redis); rdb != nil {
			defer rdb.Close()
			denylist = auth.NewRedisDenylist(rdb, cfg.Redis.Prefix)
		} else {
			logger.Warn(ctx, "redis unreachable; token revocation disabled", "addr", cfg.Redis.Addr)
		}
	}

	users := repository.NewUserRepo(db)
	supplies := repository.NewSupplyRepo(db)

	authenticator, err := auth.NewAuthenticator(users, hasher, issuer, cfg.AccessTTL)
	if err != nil {
		return err
	}
	guard := auth.NewGuard(issuer, users, denylist)
	events := service.NewPublisher(cfg.RabbitMQURL, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "user", middleware.Username(c)}
			if v.Error != nil {
				logger.Warn(c.Request().Context(), "request", append(args, "err", v.Error)...)
				return nil
			}
			logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))

	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(authenticator, denylist, logger),
		Supplies:    handler.NewSupplyHandler(supplies, events, logger),
		Productions: handler.NewProductionHandler(repository.NewProductionRepo(db, supplies), logger),
		Sales:       handler.NewSaleHandler(repository.NewSaleRepo(db), logger),
		Buyers:      handler.NewBuyerHandler(repository.NewBuyerRepo(db), logger),
		Users:       handler.NewUserHandler(users, hasher, logger),
		DB:          db,
		Guard:       guard,
		Policy:      auth.PolicyFromAdminRoles(cfg.UserAdminRoles),
		Log:         logger,
		Revocation:  denylist != nil,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	logger.Info(ctx, "listening", "addr", ":"+cfg.Port, "env", cfg.Env)
	return serve(ctx, e, ":"+cfg.Port, stop, logger)
}

// httpServer is the part of *echo.Echo that serve drives.
type httpServer interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

// serve runs srv until a signal arrives on stop or the listener fails,
// then shuts it down.  A listener failure is returned so the caller can
// unwind its deferred cleanup before exiting.
func serve(ctx context.Context, srv httpServer, addr string, stop <-chan os.Signal, logger logging.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-stop:
	case runErr = <-serveErr:
		logger.Error(ctx, "server stopped", "err", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown", "err", err)
	}
	return runErr
}
