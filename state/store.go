// Package state persists the launcher's host-local records: settings, the
// apps index and the extensions index.
//
// Records live in a bbolt database that is opened for the duration of one
// operation. bbolt holds an exclusive file lock while the database is open
// for writing, so the store has a single writer at a time and every write
// commits atomically.
package state

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/whiskers-launcher/companion/codec"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/schema"
)

// Buckets and keys of the state database.
const (
	BucketSettings = "settings"
	BucketIndex    = "index"

	KeySettings   = "current"
	KeyApps       = "apps"
	KeyExtensions = "extensions"
)

// DefaultLockTimeout bounds how long an operation waits for another writer.
const DefaultLockTimeout = 5 * time.Second

// Store is a handle on the state database. It holds no open resources
// between calls and is safe to share.
type Store struct {
	path    string
	timeout time.Duration
	logger  *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout changes how long operations wait for the database lock.
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.timeout = timeout
	}
}

// NewStore returns a store backed by the database at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		timeout: DefaultLockTimeout,
		logger:  logging.NewLogger("state"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Default returns the store at the standard state location.
func Default() *Store {
	return NewStore(paths.StateDBPath())
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open(readOnly bool) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, errors.StoreWrite("state directory", err).WithDetail("path", s.path)
	}

	db, err := bolt.Open(s.path, 0600, &bolt.Options{
		Timeout:  s.timeout,
		ReadOnly: readOnly,
	})
	if err != nil {
		if stderrors.Is(err, bolt.ErrTimeout) {
			return nil, errors.StoreLocked(s.path, err)
		}
		return nil, errors.StoreRead("state database", err).WithDetail("path", s.path)
	}
	return db, nil
}

// view runs fn in a read transaction. A missing database is reported as
// a nil bucket lookup rather than an error.
func (s *Store) view(fn func(tx *bolt.Tx) error) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fn(nil)
	}

	db, err := s.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.View(fn)
}

// update runs fn in a read-write transaction committed atomically.
func (s *Store) update(fn func(tx *bolt.Tx) error) error {
	db, err := s.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(fn)
}

func getRaw(tx *bolt.Tx, bucket, key string) []byte {
	if tx == nil {
		return nil
	}
	b := tx.Bucket([]byte(bucket))
	if b == nil {
		return nil
	}
	v := b.Get([]byte(key))
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func putRaw(tx *bolt.Tx, bucket, key string, v interface{}) error {
	b, err := tx.CreateBucketIfNotExists([]byte(bucket))
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	data, err := codec.EncodeBinary(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}

// Get decodes the record at bucket/key into v. It reports false when the
// record does not exist.
func (s *Store) Get(bucket, key string, v interface{}) (bool, error) {
	var data []byte
	if err := s.view(func(tx *bolt.Tx) error {
		data = getRaw(tx, bucket, key)
		return nil
	}); err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := codec.DecodeBinary(data, v); err != nil {
		return true, errors.StoreRead(bucket+"/"+key, err)
	}
	return true, nil
}

// Put encodes v and stores it at bucket/key, replacing any previous record.
func (s *Store) Put(bucket, key string, v interface{}) error {
	if err := s.update(func(tx *bolt.Tx) error {
		return putRaw(tx, bucket, key, v)
	}); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.StoreWrite(bucket+"/"+key, err)
	}
	return nil
}

// Settings reads the stored settings. The boolean is false when no usable
// record exists (missing or undecodable); callers fall back to defaults.
func (s *Store) Settings() (schema.Settings, bool) {
	var settings schema.Settings
	found, err := s.Get(BucketSettings, KeySettings, &settings)
	if err != nil {
		s.logger.WithError(err).Warn("Stored settings are unreadable, using defaults")
		return schema.Settings{}, false
	}
	return settings, found
}

// SaveSettings replaces the stored settings.
func (s *Store) SaveSettings(settings schema.Settings) error {
	return s.Put(BucketSettings, KeySettings, settings)
}

// UpdateSettings performs a read-modify-write of the settings inside one
// write transaction, so no other writer can interleave. fn receives the
// current settings and whether a usable record existed; returning an error
// aborts without writing.
func (s *Store) UpdateSettings(fn func(current *schema.Settings, found bool) error) error {
	err := s.update(func(tx *bolt.Tx) error {
		current, found := s.settingsIn(tx)

		if err := fn(&current, found); err != nil {
			return err
		}
		return putRaw(tx, BucketSettings, KeySettings, current)
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.StoreWrite("settings", err)
	}
	return nil
}

// Apps returns the apps index, or an empty collection when it is missing
// or undecodable.
func (s *Store) Apps() []schema.App {
	var apps []schema.App
	if _, err := s.Get(BucketIndex, KeyApps, &apps); err != nil {
		s.logger.WithError(err).Warn("Apps index is unreadable, returning an empty index")
		return []schema.App{}
	}
	if apps == nil {
		return []schema.App{}
	}
	return apps
}

// SaveApps replaces the apps index with a new snapshot.
func (s *Store) SaveApps(apps []schema.App) error {
	if apps == nil {
		apps = []schema.App{}
	}
	return s.Put(BucketIndex, KeyApps, apps)
}

// Extensions returns the extensions index, or an empty collection when it
// is missing or undecodable.
func (s *Store) Extensions() []schema.ExtensionManifest {
	var extensions []schema.ExtensionManifest
	if _, err := s.Get(BucketIndex, KeyExtensions, &extensions); err != nil {
		s.logger.WithError(err).Warn("Extensions index is unreadable, returning an empty index")
		return []schema.ExtensionManifest{}
	}
	if extensions == nil {
		return []schema.ExtensionManifest{}
	}
	return extensions
}

// SaveExtensions replaces the extensions index with a new snapshot.
func (s *Store) SaveExtensions(extensions []schema.ExtensionManifest) error {
	if extensions == nil {
		extensions = []schema.ExtensionManifest{}
	}
	return s.Put(BucketIndex, KeyExtensions, extensions)
}

// SaveIndex replaces the extensions snapshot and updates the settings in a
// single transaction, so a scan never leaves one written without the other.
// update receives the current settings and whether a usable record existed.
func (s *Store) SaveIndex(extensions []schema.ExtensionManifest, update func(current *schema.Settings, found bool) error) error {
	if extensions == nil {
		extensions = []schema.ExtensionManifest{}
	}
	err := s.update(func(tx *bolt.Tx) error {
		current, found := s.settingsIn(tx)

		if err := update(&current, found); err != nil {
			return err
		}
		if err := putRaw(tx, BucketSettings, KeySettings, current); err != nil {
			return err
		}
		return putRaw(tx, BucketIndex, KeyExtensions, extensions)
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.StoreWrite("extensions index", err)
	}
	return nil
}

func (s *Store) settingsIn(tx *bolt.Tx) (schema.Settings, bool) {
	data := getRaw(tx, BucketSettings, KeySettings)
	if data == nil {
		return schema.Settings{}, false
	}
	var current schema.Settings
	if err := codec.DecodeBinary(data, &current); err != nil {
		s.logger.WithError(err).Warn("Stored settings are unreadable, using defaults")
		return schema.Settings{}, false
	}
	return current, true
}
