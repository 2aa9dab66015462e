package app

import (
	"fmt"
	"net/http"

	"infrawatch/internal/config"
	"infrawatch/internal/detector"
	"infrawatch/internal/handlers"
	"infrawatch/internal/logger"
	"infrawatch/internal/metrics"
	"infrawatch/internal/notify"
	"infrawatch/internal/routes"
	"infrawatch/internal/session"
	"infrawatch/internal/storage"
	"infrawatch/internal/ws"
)

// App wires the server together.
type App struct {
	config *config.Config
	logger *logger.Logger
	hub    *ws.Hub
	deps   *handlers.Deps
}

// New builds the application from environment configuration. The model
// artifact is not loaded here; the detector initializes lazily on the first
// scan so a missing artifact degrades per-request instead of at boot.
func New() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	vocab, err := detector.LoadVocabulary(cfg.ClassesPath)
	if err != nil {
		log.Warning("Could not load class vocabulary: %v", err)
		vocab = detector.Vocabulary{}
	}

	uploads, err := storage.NewTempStore(cfg.UploadDirectory, log)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload storage: %w", err)
	}

	m := metrics.New()
	hub := ws.NewHub(log, m)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warning("Telegram alerts disabled: %v", err)
		} else {
			notifier = tg
			log.Info("Telegram alerts enabled for chat %d", cfg.TelegramChatID)
		}
	}

	deps := &handlers.Deps{
		Config:   cfg,
		Logger:   log,
		Detector: detector.NewDNNDetector(cfg.ModelPath, cfg.ModelConfigPath, vocab, log),
		Vocab:    vocab,
		Sessions: session.NewManager(),
		Uploads:  uploads,
		Hub:      hub,
		Metrics:  m,
		Notifier: notifier,
	}

	return &App{
		config: cfg,
		logger: log,
		hub:    hub,
		deps:   deps,
	}, nil
}

// Run starts the hub and serves HTTP until the listener fails.
func (a *App) Run() error {
	go a.hub.Run()

	router := routes.Setup(a.deps)

	a.logger.Info("Infrastructure monitoring server listening on :%d", a.config.Port)
	a.logger.Info("Model artifact: %s", a.config.ModelPath)
	a.logger.Info("Class vocabulary: %d classes", len(a.deps.Vocab))

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
