package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abubakar20-02/Flight-Management-System/internal/config"
	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/identity"
	"github.com/abubakar20-02/Flight-Management-System/internal/session"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// App wires the client together: one identity store, one API and the
// session router that guards them.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Store  *identity.Store
	API    gateway.API
	Router *session.Router
	Now    func() time.Time

	closer io.Closer
}

// Open builds the client from cfg, keeping the identity in the configured
// session file.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging.Level)

	var (
		storage identity.Storage
		closer  io.Closer
	)
	if cfg.Session.Path == identity.MemoryPath {
		storage = identity.NewMemoryStorage()
	} else {
		db, err := identity.OpenSQLite(cfg.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		storage, closer = db, db
	}

	app, err := NewApp(ctx, cfg, log, storage)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	app.closer = closer
	return app, nil
}

// NewApp builds the client over an existing identity storage.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger, storage identity.Storage) (*App, error) {
	store, err := identity.NewStore(ctx, storage,
		identity.WithTTL(cfg.Session.TTL),
		identity.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	client := gateway.NewClient(cfg.API.BaseURL,
		gateway.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		gateway.WithLogger(log),
	)
	api := gateway.NewAPI(client)

	return &App{
		Config: cfg,
		Logger: log,
		Store:  store,
		API:    api,
		Router: session.NewRouter(store, api, log),
		Now:    time.Now,
	}, nil
}

// Close releases the session file.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
