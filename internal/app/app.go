package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/middleware"
	"github.com/vancomm/maze-server/internal/session"
)

type App struct {
	log        *logrus.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	store      *session.Store
	jwt        *config.JWT
	ws         *config.WebSocket
	limits     *config.Limits
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		log:        log,
		router:     router,
		store:      session.NewStore(),
		migrations: migrations,
	}

	return app
}

// connect opens the run record database. Running without one is fine, the
// server then keeps no records.
func (a *App) connect(ctx context.Context) error {
	db, version, err := database.ConnectAndMigrate(ctx, a.migrations)
	if errors.Is(err, config.ErrNoDatabase) {
		a.log.Warn("no database configured, runs will not be recorded")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.log.WithField("version", version).Info("database schema is up to date")
	a.db = db
	return nil
}

func (a *App) setup(ctx context.Context) error {
	limits, err := config.NewLimits()
	if err != nil {
		return err
	}
	a.limits = limits

	j, err := config.NewJWT(limits.SessionTTL)
	if err != nil {
		return err
	}
	a.jwt = j

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	return a.connect(ctx)
}

func (a *App) handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Auth(a.log, a.jwt),
		middleware.Cors(),
	)
}

// sweep drops idle sessions until ctx is done.
func (a *App) sweep(ctx context.Context) error {
	ticker := time.NewTicker(a.limits.SessionTTL / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			a.store.Sweep(now, a.limits.SessionTTL)
		}
	}
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	a.loadRoutes()

	addr := config.Addr()
	server := &http.Server{
		Addr:    addr,
		Handler: a.handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.WithField("addr", addr).Info("server listening")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.sweep(gCtx)
	})

	return g.Wait()
}
