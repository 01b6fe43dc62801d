package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	localDirMode  = 0o750
	localFileMode = 0o640
)

// localBackend stores assets below a root directory on local disk.
type localBackend struct {
	root string
}

// newLocalBackend creates the destination directory of every asset class
// so the first write never races directory creation.
func newLocalBackend(root string) (*localBackend, error) {
	for _, class := range Classes() {
		policy := policies[class]

		if err := os.MkdirAll(filepath.Join(root, policy.Folder), localDirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create upload directory for %s", class)
		}
	}

	return &localBackend{root: root}, nil
}

// Kind implements Backend.
func (b *localBackend) Kind() Kind {
	return KindLocal
}

// BuildPath implements Backend.
func (b *localBackend) BuildPath(dest Destination) string {
	return filepath.Join(b.root, dest.Folder, dest.Name)
}

// Put implements Backend.
func (b *localBackend) Put(_ context.Context, _ AssetClass, dest Destination, r io.Reader, _ int64, _ string) (*Location, error) {
	path := b.BuildPath(dest)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, localFileMode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create upload file")
	}

	written, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path) // drop the partial file

		return nil, errors.Wrap(err, "failed to write upload file")
	}

	if err := f.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close upload file")
	}

	return &Location{
		Kind:   KindLocal,
		Folder: dest.Folder,
		Name:   dest.Name,
		Path:   path,
		Size:   written,
	}, nil
}

// Exists implements Backend.
func (b *localBackend) Exists(_ context.Context, dest Destination) (bool, error) {
	_, err := os.Stat(b.BuildPath(dest))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to stat upload file")
	}

	return true, nil
}

// OpenRead implements Backend.
func (b *localBackend) OpenRead(_ context.Context, dest Destination) (io.ReadCloser, error) {
	f, err := os.Open(b.BuildPath(dest))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload file")
	}

	return f, nil
}
