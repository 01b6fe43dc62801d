// Package storage decides which backend serves each asset class and
// validates candidate uploads before any bytes are accepted. The backend
// decision is computed once per process and never changes, so an asset's
// pieces cannot end up split across backends.
package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
)

// Kind identifies a storage backend variant.
type Kind string

const (
	// KindCloud is cloud object storage.
	KindCloud Kind = "cloud"
	// KindLocal is the local filesystem.
	KindLocal Kind = "local"
)

// randomSuffixBound matches the classic 0..1e9 upload suffix range.
const randomSuffixBound = 1_000_000_000

// Destination is a backend-independent target for a stored asset.
type Destination struct {
	Folder string
	Name   string
}

// Location describes where an asset ended up after a Put.
type Location struct {
	Kind   Kind   `json:"kind"`
	Folder string `json:"folder"`
	Name   string `json:"name"`
	// Path is the filesystem path for the local backend.
	Path string `json:"path,omitempty"`
	// URL is the public object URL for the cloud backend.
	URL string `json:"url,omitempty"`
	// Size is the stored byte count.
	Size int64 `json:"size"`
}

// Backend is the capability interface shared by the closed set of storage
// variants. Selecting a variant once at configuration time keeps
// backend-conditional branches out of request code.
type Backend interface {
	Kind() Kind
	Put(ctx context.Context, class AssetClass, dest Destination, r io.Reader, size int64, contentType string) (*Location, error)
	BuildPath(dest Destination) string
	Exists(ctx context.Context, dest Destination) (bool, error)
	OpenRead(ctx context.Context, dest Destination) (io.ReadCloser, error)
}

// UseCloud reports whether the cloud backend is selected: it requires the
// explicit enable flag AND all three credential fields.
func UseCloud(cfg config.Storage) bool {
	return cfg.UseCloud && cfg.CloudCredentialsComplete()
}

// Resolver owns the per-process backend decision and upload validation.
type Resolver struct {
	cfg     config.Storage
	backend Backend
}

// NewResolver computes the backend decision and prepares the chosen
// backend. For the local backend the destination directories are created
// recursively and idempotently so the first write cannot fail on a missing
// directory.
func NewResolver(cfg config.Storage) (*Resolver, error) {
	var (
		backend Backend
		err     error
	)

	if UseCloud(cfg) {
		backend, err = newCloudBackend(cfg)
	} else {
		if cfg.UseCloud {
			log.Warn().Msg("cloud storage enabled but credentials incomplete, falling back to local disk")
		}

		backend, err = newLocalBackend(cfg.LocalRoot)
	}

	if err != nil {
		return nil, err
	}

	log.Info().Str("backend", string(backend.Kind())).Msg("storage backend selected")

	return &Resolver{cfg: cfg, backend: backend}, nil
}

// Backend returns the backend chosen at startup. The decision is stable
// for the process lifetime.
func (r *Resolver) Backend() Backend {
	return r.backend
}

// Kind returns the kind of the chosen backend.
func (r *Resolver) Kind() Kind {
	return r.backend.Kind()
}

// Validate checks a candidate upload against its class policy. The file
// extension and the declared content type are inspected independently;
// both must match the allow-list.
func (r *Resolver) Validate(class AssetClass, originalName, contentType string, size int64) error {
	policy, err := PolicyFor(class)
	if err != nil {
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if !contains(policy.Extensions, ext) {
		return ErrUnsupportedType
	}

	// declared media type, parameters stripped
	declared := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !contains(policy.MIMETypes, declared) {
		return ErrUnsupportedType
	}

	if size > policy.MaxBytes {
		return ErrTooLarge
	}

	return nil
}

// BuildDestination generates a practically unique destination for an
// upload: <prefix>-<unix millis>-<random 0..1e9><ext>. Collisions are
// theoretically possible but negligible at expected request rates.
func (r *Resolver) BuildDestination(class AssetClass, originalName string) (Destination, error) {
	policy, err := PolicyFor(class)
	if err != nil {
		return Destination{}, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s-%d-%d%s", policy.Prefix, time.Now().UnixMilli(), rand.Int64N(randomSuffixBound), ext)

	return Destination{Folder: policy.Folder, Name: name}, nil
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}

	return false
}
