// Package store persists the slideshow's resume state in a small
// BoltDB database, so a restarted slideshow picks up at the artwork it
// was showing. Every failure here degrades to "no resume"; the
// slideshow never depends on the store working.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName  = "artslide_state.db"
	stateBucket = "State" // bucket holding resume state
	lastPathKey = "last_path"
)

// StateDB manages the resume-state database.
type StateDB struct {
	db *bolt.DB
}

// NewStateDB creates or opens the state database file. dbDir specifies
// the directory for the db file; empty means the user config dir
// (falling back to the current directory).
func NewStateDB(dbDir string) (*StateDB, error) {
	if dbDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Warnf("could not get user config dir: %v, using current dir", err)
			dbDir = "."
		} else {
			dbDir = filepath.Join(configDir, "artslide")
			if err := os.MkdirAll(dbDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create config directory %s: %w", dbDir, err)
			}
		}
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", stateBucket, err)
	}

	log.Debugf("using state database at %s", dbPath)
	return &StateDB{db: db}, nil
}

// SetLastPath records the path of the artwork currently on display.
func (s *StateDB) SetLastPath(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(lastPathKey), []byte(path))
	})
}

// LastPath returns the recorded artwork path, or "" when none is set.
func (s *StateDB) LastPath() (string, error) {
	var path string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(stateBucket)).Get([]byte(lastPathKey))
		path = string(v)
		return nil
	})
	return path, err
}

// Close closes the database connection.
func (s *StateDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
