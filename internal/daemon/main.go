// Package daemon wires configuration, database, storage, documents and mail
// into the running web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/dsn"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/models"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/document"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/logger"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/mail"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/storage"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logging")
	}

	db := openDB(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Setting{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	seed(cfg, db)

	resolver, err := storage.NewResolver(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage backend")
	}

	docs := document.NewService(db, document.RulebookSpec(cfg.Documents, cfg.Storage.LocalRoot))

	dispatcher := mail.New(cfg.Mail)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, resolver, docs, dispatcher),
	}
}

// openDB opens the configured database. Dev mode and an explicit sqlite
// engine both use the cgo-free sqlite driver; everything else is MySQL.
func openDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	if cfg.DevMode || cfg.DB.GormEngine == "sqlite" {
		name := cfg.DB.Name
		if name == "" {
			name = "go-event-admin.db"
		}

		dialector = sqlite.Open(name)
	} else {
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	return db
}
