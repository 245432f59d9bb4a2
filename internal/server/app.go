package server

import (
	"log"
	"net/http"

	"github.com/MarceloDChagas/Respira/internal/calc"
	"github.com/MarceloDChagas/Respira/internal/catalog"
	"github.com/MarceloDChagas/Respira/internal/config"
	"github.com/MarceloDChagas/Respira/internal/httpmw"
	"github.com/MarceloDChagas/Respira/internal/profile"
	"github.com/MarceloDChagas/Respira/internal/telemetry"
)

// App holds the server's state and collaborators. This makes it obvious
// what the handlers depend on.
type App struct {
	Config *config.Config
	Store  *profile.Store
	Calc   *calc.Client // nil when no calculation service is configured
	Events *telemetry.MemoryRepository
	Hub    *Hub
	Logger *log.Logger
}

// Options configures NewApp.
type Options struct {
	Config *config.Config
	Logger *log.Logger
}

// NewApp wires the profile store, telemetry, websocket hub and the optional
// calculation client from config. When a data dir is configured, a saved
// snapshot is restored; otherwise the store starts from the seed.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	events := telemetry.NewMemoryRepository()
	hub := NewHub(logger)

	seed := profile.Seed{
		Name:           cfg.Player.Name,
		StartingPoints: cfg.StartingPoints(),
		Levels:         cfg.Levels,
		Missions:       catalog.SeedMissions(),
		Targets:        cfg.Missions.Targets,
		CO2Reduction:   cfg.Missions.CO2Reduction,
		OwnedItems:     []string{catalog.DefaultItemID},
		Equipped:       profile.DefaultSeed().Equipped,
	}

	storeOpts := []profile.Option{
		profile.WithTelemetry(events),
		profile.WithOnChange(hub.Broadcast),
	}

	var store *profile.Store
	if cfg.Server.DataDir != "" {
		restored, loaded, err := profile.LoadFile(cfg.Server.DataDir, seed, storeOpts...)
		if err != nil {
			return nil, err
		}
		if loaded {
			logger.Printf("restored profile snapshot from %s", cfg.Server.DataDir)
		}
		store = restored
	} else {
		store = profile.NewStore(seed, storeOpts...)
	}

	hub.Prime(store.Snapshot())

	app := &App{
		Config: cfg,
		Store:  store,
		Events: events,
		Hub:    hub,
		Logger: logger,
	}
	if cfg.Server.CalcBaseURL != "" {
		app.Calc = calc.NewClient(cfg.Server.CalcBaseURL, calc.WithLogger(logger))
	}
	return app, nil
}

// Handler builds the full HTTP handler: API routes behind the middleware
// chain.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, a)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(a.Logger),
		httpmw.WithAccessLog(a.Logger),
	)
}

// SaveSnapshot persists the current profile when a data dir is configured.
func (a *App) SaveSnapshot() error {
	if a.Config.Server.DataDir == "" {
		return nil
	}
	return a.Store.SaveFile(a.Config.Server.DataDir)
}
