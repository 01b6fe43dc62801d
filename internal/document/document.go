// Package document resolves named documents to their source of truth: a
// Settings Store override URL first, the configured local file second. Each
// request ends in exactly one of redirect, stream or not-found.
package document

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/db/controller/setting"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/storage"
)

const (
	// SettingKeyRulebookURL is the settings key that, when set, supersedes
	// local-file resolution for the rulebook.
	SettingKeyRulebookURL = "rulebook_url"

	// RulebookName is the registry name of the event rulebook.
	RulebookName = "rulebook"

	rulebookFilename = "Event_Rulebook.pdf"
	pdfContentType   = "application/pdf"
)

// Spec describes one named document: where an override may live and where
// the local artifact is expected.
type Spec struct {
	Name        string
	SettingKey  string
	LocalPath   string
	Filename    string
	ContentType string
}

// RulebookSpec builds the rulebook document spec from configuration,
// deriving the local path from the storage root when not set explicitly.
func RulebookSpec(docs config.Documents, localRoot string) Spec {
	path := docs.RulebookFile
	if path == "" {
		path = filepath.Join(localRoot, "rulebook.pdf")
	}

	return Spec{
		Name:        RulebookName,
		SettingKey:  SettingKeyRulebookURL,
		LocalPath:   path,
		Filename:    rulebookFilename,
		ContentType: pdfContentType,
	}
}

// Outcome is the terminal state of a resolution.
type Outcome string

const (
	// OutcomeRedirect means an override URL exists and the caller should
	// be redirected to it.
	OutcomeRedirect Outcome = "redirect"
	// OutcomeStream means the local artifact exists and should be streamed.
	OutcomeStream Outcome = "stream"
	// OutcomeNotFound means the document is absent in all known locations.
	OutcomeNotFound Outcome = "not-found"
)

// Resolution is the outcome of resolving a document request.
type Resolution struct {
	Outcome     Outcome
	URL         string // redirect target, set for OutcomeRedirect
	Path        string // local artifact path, set for OutcomeStream
	Filename    string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Info is the metadata-only view of a document.
type Info struct {
	Available    bool         `json:"available"`
	Storage      storage.Kind `json:"storage"`
	URL          string       `json:"url,omitempty"`
	Filename     string       `json:"filename,omitempty"`
	Size         int64        `json:"size,omitempty"`
	LastModified *time.Time   `json:"lastModified,omitempty"`
}

// Service resolves documents from its registry.
type Service struct {
	db    *gorm.DB
	specs map[string]Spec
}

// NewService creates a document service over the given registry.
func NewService(db *gorm.DB, specs ...Spec) *Service {
	registry := make(map[string]Spec, len(specs))
	for _, s := range specs {
		registry[s.Name] = s
	}

	return &Service{db: db, specs: registry}
}

// Resolve determines the single outcome for a named document: override
// redirect, local stream, or not found. An override URL always wins; local
// disk is not consulted when one is present.
func (s *Service) Resolve(name string) (*Resolution, error) {
	spec, ok := s.specs[name]
	if !ok {
		return nil, ErrUnknownDocument
	}

	if override := setting.Get(s.db, spec.SettingKey, ""); override != "" {
		log.Debug().Str("document", name).Str("url", override).Msg("document resolved to override url")

		return &Resolution{
			Outcome:     OutcomeRedirect,
			URL:         override,
			Filename:    spec.Filename,
			ContentType: spec.ContentType,
		}, nil
	}

	stat, err := os.Stat(spec.LocalPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("document", name).Str("path", spec.LocalPath).Msg("failed to stat document")
		}

		return &Resolution{Outcome: OutcomeNotFound}, nil
	}

	return &Resolution{
		Outcome:     OutcomeStream,
		Path:        spec.LocalPath,
		Filename:    spec.Filename,
		ContentType: spec.ContentType,
		Size:        stat.Size(),
		ModTime:     stat.ModTime(),
	}, nil
}

// Info returns document metadata without transferring the artifact. It runs
// the same override-then-local check but never opens the file.
func (s *Service) Info(name string) (*Info, error) {
	resolution, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	switch resolution.Outcome {
	case OutcomeRedirect:
		return &Info{
			Available: true,
			Storage:   storage.KindCloud,
			URL:       resolution.URL,
			Filename:  resolution.Filename,
		}, nil
	case OutcomeStream:
		modTime := resolution.ModTime

		return &Info{
			Available:    true,
			Storage:      storage.KindLocal,
			Filename:     resolution.Filename,
			Size:         resolution.Size,
			LastModified: &modTime,
		}, nil
	default:
		return &Info{Available: false, Storage: storage.KindLocal}, nil
	}
}
