// Package boltdb implements the session store on a bbolt file. The client
// holds an opaque random token; the bolt key is an HMAC of that token under
// the configured secret, so a copied database file yields no usable cookies.
package boltdb

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"todoweb/internal/models"
	"todoweb/internal/storage"
)

var sessionsBucket = []byte("sessions")

var _ storage.SessionStore = (*Store)(nil)

// Store keeps session records in a bbolt database.
type Store struct {
	db     *bbolt.DB
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// Open initializes the session store. The secret is required; startup must
// not proceed without one.
func Open(path string, secret []byte, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty session database path")
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty session secret")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}

	return &Store{
		db:     db,
		secret: secret,
		ttl:    storage.SessionTTL,
		logger: logger,
	}, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create issues a fresh random token mapping to the given identity.
func (s *Store) Create(userID, username string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	sess := models.Session{
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	value, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put(s.key(token), value)
	})
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its session. Expired records are removed on read
// and reported as not found.
func (s *Store) Get(token string) (models.Session, error) {
	var sess models.Session
	key := s.key(token)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		value := bucket.Get(key)
		if value == nil {
			return storage.ErrSessionNotFound
		}
		if err := json.Unmarshal(value, &sess); err != nil {
			// Unreadable record: drop it rather than lock the user out forever.
			s.logger.Warn("dropping undecodable session record")
			_ = bucket.Delete(key)
			return storage.ErrSessionNotFound
		}
		if sess.Expired(time.Now().UTC()) {
			_ = bucket.Delete(key)
			return storage.ErrSessionNotFound
		}
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Delete removes the session record. Unknown tokens are a no-op.
func (s *Store) Delete(token string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete(s.key(token))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) key(token string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return mac.Sum(nil)
}
