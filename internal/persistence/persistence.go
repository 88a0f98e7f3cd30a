package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/markusressel/dim2go/internal/ui"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is the recorded outcome of a single operation on a light
type Event struct {
	Time      time.Time `json:"time"`
	Operation string    `json:"operation"`
	Accepted  bool      `json:"accepted"`
	Error     string    `json:"error,omitempty"`
	// load level and target after the operation
	Level  int `json:"level"`
	Target int `json:"target"`
}

type Persistence interface {
	Init() error

	// AppendEvent adds an event to the journal of the given light, pruning the oldest
	// entries beyond the configured journal size
	AppendEvent(lightId string, event Event) (err error)
	// LoadEvents returns up to limit of the most recent events, oldest first.
	// A limit <= 0 returns all of them.
	LoadEvents(lightId string, limit int) ([]Event, error)
	DeleteEvents(lightId string) (err error)
}

type persistence struct {
	dbPath      string
	journalSize int

	mu sync.Mutex
}

func NewPersistence(dbPath string, journalSize int) Persistence {
	p := &persistence{
		dbPath:      dbPath,
		journalSize: journalSize,
	}
	return p
}

func (p *persistence) Init() (err error) {
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

func (p *persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p *persistence) AppendEvent(lightId string, event Event) (err error) {
	if p.journalSize <= 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(lightId))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		err = b.Put(sequenceKey(seq), data)
		if err != nil {
			return err
		}
		return prune(b, p.journalSize)
	})
}

// prune deletes the oldest entries of b until at most size remain
func prune(b *bolt.Bucket, size int) error {
	count := 0
	_ = b.ForEach(func(k, v []byte) error {
		count++
		return nil
	})
	if count <= size {
		return nil
	}

	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil && len(keys) < count-size; k, _ = c.Next() {
		keys = append(keys, append([]byte{}, k...))
	}
	for _, k := range keys {
		err := b.Delete(k)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *persistence) LoadEvents(lightId string, limit int) ([]Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var events []Event
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(lightId))
		if b == nil {
			return os.ErrNotExist
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(events) < limit); k, v = c.Prev() {
			var event Event
			err := json.Unmarshal(v, &event)
			if err != nil {
				// skip entries we cannot read
				ui.Warning("Unable to unmarshal journal entry %d of %s: %v", binary.BigEndian.Uint64(k), lightId, err)
				continue
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// cursor walked newest first
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

func (p *persistence) DeleteEvents(lightId string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(lightId)) == nil {
			// no journal yet
			return nil
		}
		return tx.DeleteBucket([]byte(lightId))
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
