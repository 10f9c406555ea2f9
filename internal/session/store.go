package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/phenixmation/payables/internal/config"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
)

// EnvToken overrides the persisted token when set
const EnvToken = "PAYABLES_SESSION_TOKEN"

// TokenStore persists the session token between runs
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file readable by the owner only
type FileTokenStore struct {
	path   string
	logger *logger.Logger
}

// NewFileTokenStore creates the store at the configured session.token_file
func NewFileTokenStore(cfg *config.Configuration, logger *logger.Logger) *FileTokenStore {
	return &FileTokenStore{
		path:   cfg.Session.TokenFile,
		logger: logger,
	}
}

// Load returns the stored token, or an empty string when none was stored
func (s *FileTokenStore) Load() (string, error) {
	s.checkPermissions()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", ierr.WithError(err).
			WithHint("Could not read the saved session").
			Mark(ierr.ErrSystem)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with mode 0600, creating the parent directory if needed
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return ierr.WithError(err).
			WithHint("Could not save the session").
			Mark(ierr.ErrSystem)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return ierr.WithError(err).
			WithHint("Could not save the session").
			Mark(ierr.ErrSystem)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(s.path, 0o600); err != nil {
		return ierr.WithError(err).
			WithHint("Could not save the session").
			Mark(ierr.ErrSystem)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ierr.WithError(err).
			WithHint("Could not remove the saved session").
			Mark(ierr.ErrSystem)
	}
	return nil
}

// checkPermissions warns when group or others can access the token file.
// Windows has no such permission bits and is skipped.
func (s *FileTokenStore) checkPermissions() {
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return
	}
	if mode := info.Mode().Perm(); mode&0o077 != 0 {
		s.logger.Warnw("session token file has insecure permissions",
			"path", s.path,
			"mode", fmt.Sprintf("%04o", mode),
		)
	}
}
