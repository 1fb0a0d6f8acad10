package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/octave-ivi/octave/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSettings  = "settings"
	BucketThemes    = "themes"
	BucketEqualizer = "equalizerPresets"
	BucketMediaMeta = "mediaMeta"

	KeySettingsDocument = "document"
)

type Persistence interface {
	Init() error

	LoadSettings() ([]byte, error)
	SaveSettings(data []byte) error
	DeleteSettings() error

	LoadTheme(name string) ([]byte, error)
	SaveTheme(name string, data []byte) error
	DeleteTheme(name string) error
	ListThemes() ([]string, error)

	LoadEqualizerPreset(name string) ([]byte, error)
	SaveEqualizerPreset(name string, data []byte) error
	DeleteEqualizerPreset(name string) error
	ListEqualizerPresets() ([]string, error)

	LoadMediaMetadata(file string) ([]byte, error)
	SaveMediaMetadata(file string, data []byte) error
	ClearMediaMetadata() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p persistence) saveValue(bucket string, key string, data []byte) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		err = b.Put([]byte(key), data)
		return err
	})
}

func (p persistence) loadValue(bucket string, key string) ([]byte, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var data []byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}
		data = append([]byte{}, v...)
		return nil
	})

	return data, err
}

func (p persistence) deleteValue(bucket string, key string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(key))
	})
}

func (p persistence) LoadSettings() ([]byte, error) {
	return p.loadValue(BucketSettings, KeySettingsDocument)
}

func (p persistence) SaveSettings(data []byte) error {
	return p.saveValue(BucketSettings, KeySettingsDocument, data)
}

func (p persistence) DeleteSettings() error {
	return p.deleteValue(BucketSettings, KeySettingsDocument)
}

func (p persistence) LoadTheme(name string) ([]byte, error) {
	return p.loadValue(BucketThemes, name)
}

func (p persistence) SaveTheme(name string, data []byte) error {
	return p.saveValue(BucketThemes, name, data)
}

func (p persistence) DeleteTheme(name string) error {
	return p.deleteValue(BucketThemes, name)
}

func (p persistence) ListThemes() ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var names []string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketThemes))
		if b == nil {
			// no themes saved yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})

	return names, err
}

func (p persistence) LoadEqualizerPreset(name string) ([]byte, error) {
	return p.loadValue(BucketEqualizer, name)
}

func (p persistence) SaveEqualizerPreset(name string, data []byte) error {
	return p.saveValue(BucketEqualizer, name, data)
}

func (p persistence) DeleteEqualizerPreset(name string) error {
	return p.deleteValue(BucketEqualizer, name)
}

func (p persistence) ListEqualizerPresets() ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var names []string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketEqualizer))
		if b == nil {
			// no presets saved yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})

	return names, err
}

func (p persistence) LoadMediaMetadata(file string) ([]byte, error) {
	return p.loadValue(BucketMediaMeta, file)
}

func (p persistence) SaveMediaMetadata(file string, data []byte) error {
	return p.saveValue(BucketMediaMeta, file, data)
}

func (p persistence) ClearMediaMetadata() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketMediaMeta)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(BucketMediaMeta))
	})
}
