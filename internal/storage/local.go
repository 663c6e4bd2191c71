package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

// LocalStore keeps uploaded files under a single root directory. Stored names
// are opaque and never contain path separators.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, errors.New("upload root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

// Save writes the content under a uuid-prefixed name derived from the
// original filename and returns the stored name.
func (s *LocalStore) Save(originalName string, content io.Reader) (string, error) {
	base := filepath.Base(strings.TrimSpace(originalName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", errors.New("invalid file name")
	}
	stored := common.NewUUID().String() + "_" + sanitize(base)
	file, err := os.Create(filepath.Join(s.root, stored))
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := io.Copy(file, content); err != nil {
		_ = os.Remove(file.Name())
		return "", err
	}
	return stored, nil
}

// Path resolves a stored name back to an absolute-ish path inside the root.
// Names with separators or traversal segments are rejected.
func (s *LocalStore) Path(stored string) (string, error) {
	if stored == "" {
		return "", errors.New("empty file name")
	}
	if strings.ContainsAny(stored, "/\\") || strings.Contains(stored, "..") {
		return "", errors.New("invalid file name")
	}
	return filepath.Join(s.root, stored), nil
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
