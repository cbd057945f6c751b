package cli

import (
	"playground-client/internal/collection"
	"playground-client/internal/config"
	"playground-client/internal/identity"
	"playground-client/internal/logger"
	"playground-client/internal/playground"
	"playground-client/internal/service/generation"
	"playground-client/internal/service/hydrate"
	"playground-client/internal/session"
	"playground-client/internal/storage"
)

// App holds the wired subsystem shared by every command.
type App struct {
	Config    *config.AppConfig
	Session   *session.State
	API       playground.API
	Generator *generation.Service
	Hydrator  *hydrate.Service

	kv storage.KV
}

// newApp builds the full client: config, durable storage, identity,
// session, API client, orchestrator and hydrator.
func newApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	var kv storage.KV
	kv, err = storage.NewSQLite(cfg.Storage.DataDir)
	if err != nil {
		// Degraded but usable: identity and favorites live only for
		// this session
		logger.Log.WithError(err).Warn("Durable storage unavailable, running with in-memory state")
		kv = storage.NewMemory()
	}

	userID := identity.NewStore(kv).GetOrCreateUserID()

	favorites := collection.NewBounded[session.FavoriteEntry](kv, session.FavoritesCapacity)
	sess := session.NewState(userID, favorites, session.GenerationParameters{
		Temperature: 1.3,
		TopP:        0.9,
		Model:       cfg.Catalog.GetDefaultModel(),
	})

	api := playground.NewClient(cfg.Server.BaseURL, cfg.Server.RequestTimeout)
	hydrator := hydrate.NewService(api, sess)
	generator := generation.NewService(api, sess, hydrator, cfg.Server.GenerateTimeout, cfg.Voice.Lang)
	generator.SetVoiceEnabled(cfg.Voice.Enabled)

	return &App{
		Config:    cfg,
		Session:   sess,
		API:       api,
		Generator: generator,
		Hydrator:  hydrator,
		kv:        kv,
	}, nil
}

// Close releases the app's storage backend.
func (a *App) Close() {
	if err := a.kv.Close(); err != nil {
		logger.Log.WithError(err).Warn("Failed to close storage")
	}
}

// applyParams merges command-line parameter flags into the session.
func applyParams(app *App, temp, topP float64, tempSet, topPSet bool, model, persona string) {
	update := session.ParamsUpdate{}
	if tempSet {
		update.Temperature = &temp
	}
	if topPSet {
		update.TopP = &topP
	}
	if model != "" {
		if !app.Config.Catalog.IsValidModel(model) {
			logger.Log.WithField("model", model).Warn("Model not in catalog, sending anyway")
		}
		update.Model = &model
	}
	if persona != "" {
		if !app.Config.Catalog.IsValidPersona(persona) {
			logger.Log.WithField("persona", persona).Warn("Persona not in catalog, sending anyway")
		}
		update.Persona = &persona
	}
	app.Session.SetParameters(update)
}
