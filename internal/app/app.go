package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/msweeper/internal/config"
	"github.com/vancomm/msweeper/internal/database"
	"github.com/vancomm/msweeper/internal/game"
	"github.com/vancomm/msweeper/internal/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   repository.Store
	manager *game.Manager
	cookies *config.Cookies
	jwt     *config.JWT
	ws      *config.WebSocket
	closers []func()
}

// New wires an application around an already opened store.
func New(cfg *config.Config, log *logrus.Logger, store repository.Store, jwt *config.JWT) *App {
	return &App{
		cfg:   cfg,
		log:   log,
		store: store,
		manager: game.NewManager(
			log.WithField("component", "game"), store, cfg.Game.Defaults(),
			game.WithMaxCells(cfg.Game.MaxCells),
		),
		cookies: config.NewCookies(cfg.Cookies, jwt),
		jwt:     jwt,
		ws:      config.NewWebSocket(cfg.Development),
	}
}

// Open migrates and connects the configured store, loads the JWT keys and
// wires the application.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	jwt, err := config.NewJWT(cfg.JWT)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}
	a := New(cfg, log, store, jwt)
	a.closers = append(a.closers, closeStore)
	return a, nil
}

func openStore(
	ctx context.Context, cfg config.Store, log logrus.FieldLogger,
) (repository.Store, func(), error) {
	switch cfg.Driver {
	case "postgres":
		url, err := cfg.PostgresURL()
		if err != nil {
			return nil, nil, err
		}
		version, err := database.MigratePostgres(url)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("version", version).Info("postgres schema up to date")
		pool, err := database.ConnectPostgres(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		return repository.New(pool), pool.Close, nil
	case "sqlite":
		version, err := database.MigrateSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(logrus.Fields{
			"version": version,
			"path":    cfg.SQLitePath,
		}).Info("sqlite schema up to date")
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLite(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

// Run serves HTTP and sweeps idle sessions until ctx is done or either
// fails.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.cfg.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.manager.RunSweeper(gCtx, a.cfg.Game.SweepInterval, a.cfg.Game.SessionTTL)
	})

	return g.Wait()
}
