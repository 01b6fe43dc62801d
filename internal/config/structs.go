package config

import (
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Mail      Mail
	Storage   Storage
	Documents Documents
}

// Webserver implement webserver settings.
type Webserver struct {
	CacheEnabled   bool   // true = enable cache, false = disable cache
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
