// Package web assembles the fiber application: access logging, liveness,
// metrics, and the document, upload, settings and notification handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/document"
	fiberlogger "github.com/GoEvent-Admin/GoEvent-Admin/internal/logger/adapter/fiber"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/mail"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/storage"
	documenthandler "github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler/document"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler/notify"
	settingshandler "github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler/settings"
	uploadhandler "github.com/GoEvent-Admin/GoEvent-Admin/internal/web/handler/upload"
)

const (
	// CheckAlivePath is the liveness probe path.
	CheckAlivePath = "/checkalive"

	// MetricsPath is the prometheus scrape path.
	MetricsPath = "/metrics"

	// bodyLimit caps request bodies above the largest upload class ceiling.
	bodyLimit = 25 * 1024 * 1024
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and wired
// subsystems.
func New(cfg *config.Config, db *gorm.DB, resolver *storage.Resolver, docs *document.Service, dispatcher *mail.Dispatcher) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      bodyLimit,
		},
	)

	// access logging, liveness probe excluded
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes)
	if err := documenthandler.Handler.Init(app, cfg, docs); err != nil {
		log.Fatal().Err(err).Msg("failed to init document handler")
	}

	if err := uploadhandler.Handler.Init(app, cfg, resolver); err != nil {
		log.Fatal().Err(err).Msg("failed to init upload handler")
	}

	if err := settingshandler.Handler.Init(app, cfg, db); err != nil {
		log.Fatal().Err(err).Msg("failed to init settings handler")
	}

	if err := notify.Handler.Init(app, cfg, dispatcher); err != nil {
		log.Fatal().Err(err).Msg("failed to init notification handler")
	}

	return service
}
