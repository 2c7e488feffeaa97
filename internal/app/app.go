package app

import (
	"context"
	"log/slog"

	gm "timeos/internal/adapter/gemini"
	ml "timeos/internal/adapter/mailer"
	msql "timeos/internal/adapter/mysql"
	"timeos/internal/config"
	"timeos/internal/migrate"
	"timeos/internal/ports"
	"timeos/internal/statefile"
	"timeos/internal/timer"
	"timeos/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log   *slog.Logger
	store *msql.Store

	Auth       *usecase.AuthUseCase
	Tracking   *usecase.TrackingUseCase
	Admin      *usecase.AdminUseCase
	Timer      *timer.Engine
	Summarizer ports.Summarizer
	Mailer     ports.Mailer
	Store      ports.Store
}

func New(log *slog.Logger, cfg config.Config) (*App, error) {
	// Run migrations before opening the store for use
	if err := migrate.Run(context.Background(), cfg.MySQL.DSN, log); err != nil {
		return nil, err
	}
	store, err := msql.NewStore(context.Background(), cfg.MySQL.DSN, log)
	if err != nil {
		return nil, err
	}

	state, err := statefile.New(cfg.State.Dir, cfg.State.DeviceKey, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	summarizer := gm.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	mailer := ml.NewClient(cfg.Mailer.BaseURL, cfg.Mailer.APIKey, cfg.Mailer.From, log)

	return &App{
		log:   log,
		store: store,
		Auth: &usecase.AuthUseCase{
			Log:             log,
			Directory:       store,
			Sessions:        state,
			Snapshots:       state,
			AdminAccessCode: cfg.Admin.AccessCode,
		},
		Tracking:   &usecase.TrackingUseCase{Log: log, Store: store},
		Admin:      &usecase.AdminUseCase{Log: log, Store: store},
		Timer:      timer.New(state, log),
		Summarizer: summarizer,
		Mailer:     mailer,
		Store:      store,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}
