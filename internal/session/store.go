package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// TokensFile is the token pair's durable storage inside the data dir.
const TokensFile = "tokens.yaml"

// ErrSessionExpired means the session cannot be refreshed and the user has
// to log in again.
var ErrSessionExpired = errors.New("session expired")

// TokenExchanger is the slice of the API gateway the store needs: the two
// token endpoints. Refresh policy stays here; the gateway never refreshes
// on its own.
type TokenExchanger interface {
	ObtainToken(ctx context.Context, username, password string) (access, refresh string, err error)
	RefreshToken(ctx context.Context, refresh string) (access string, err error)
}

// Store is the single owner of token state. It persists the pair under
// keys accessToken/refreshToken and is the one source of truth for whether
// a user is authenticated.
type Store struct {
	path    string
	log     *logrus.Logger
	session model.Session
}

type tokenFile struct {
	AccessToken  string `yaml:"accessToken"`
	RefreshToken string `yaml:"refreshToken"`
}

// NewStore loads any persisted token pair from dataDir. A missing or
// unreadable token file simply starts the store unauthenticated.
func NewStore(dataDir string, logger *logrus.Logger) *Store {
	s := &Store{path: filepath.Join(dataDir, TokensFile), log: logger}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WithError(err).Warn("could not read token file; starting unauthenticated")
		}
		return s
	}
	var tf tokenFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		logger.WithError(err).Warn("could not parse token file; starting unauthenticated")
		return s
	}
	s.session = model.Session{AccessToken: tf.AccessToken, RefreshToken: tf.RefreshToken}
	return s
}

// Login exchanges credentials for a token pair and persists it. On failure
// nothing is persisted and the gateway's error propagates unchanged.
func (s *Store) Login(ctx context.Context, ex TokenExchanger, identifier, secret string) (model.Session, error) {
	access, refresh, err := ex.ObtainToken(ctx, identifier, secret)
	if err != nil {
		return model.Session{}, err
	}
	next := model.Session{AccessToken: access, RefreshToken: refresh}
	if err := s.persist(next); err != nil {
		return model.Session{}, err
	}
	s.log.WithField("user", identifier).Info("logged in")
	return next, nil
}

// Logout clears both tokens unconditionally. It is idempotent and never
// fails: a missing token file is already the desired end state, and an
// unremovable one is logged and the in-memory session cleared anyway.
func (s *Store) Logout() {
	s.session = model.Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.WithError(err).Warn("could not remove token file")
	}
}

// Refresh exchanges the refresh token for a new access token, persisting
// only the access token and leaving the refresh token unchanged. Without a
// refresh token, or when the backend rejects it, the session is expired.
func (s *Store) Refresh(ctx context.Context, ex TokenExchanger) (model.Session, error) {
	if s.session.RefreshToken == "" {
		return model.Session{}, fmt.Errorf("%w: no refresh token stored", ErrSessionExpired)
	}
	access, err := ex.RefreshToken(ctx, s.session.RefreshToken)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	next := model.Session{AccessToken: access, RefreshToken: s.session.RefreshToken}
	if err := s.persist(next); err != nil {
		return model.Session{}, err
	}
	s.log.Debug("access token refreshed")
	return next, nil
}

// IsAuthenticated is a pure read of whether an access token is present.
func (s *Store) IsAuthenticated() bool {
	return s.session.Authenticated()
}

// AccessToken returns the current access token, empty when unauthenticated.
// This satisfies the gateway's TokenSource.
func (s *Store) AccessToken() string {
	return s.session.AccessToken
}

// Session returns a copy of the current token pair.
func (s *Store) Session() model.Session {
	return s.session
}

// persist writes the pair via a temp file and rename so a concurrent read
// observes either the old pair or the new one, never a torn write. The
// in-memory session is only replaced once the file is durable.
func (s *Store) persist(next model.Session) error {
	data, err := yaml.Marshal(tokenFile{
		AccessToken:  next.AccessToken,
		RefreshToken: next.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("marshaling tokens: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("creating token temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing tokens: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("restricting token file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing token temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing token file: %w", err)
	}

	s.session = next
	return nil
}
