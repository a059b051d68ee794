// ABOUTME: Badger key-value snapshot storage.
// ABOUTME: One key per learning record plus state keys; saves only write records not yet stored.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/freely/internal/models"
)

const (
	recordPrefix = "record:"
	progressKey  = "state:progress"
	metricsKey   = "state:metrics"
	cursorKey    = "state:cursor"
	countKey     = "state:records"
)

// BadgerStore keeps snapshots in an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return openBadger(badger.DefaultOptions(dir))
}

// OpenBadgerInMemory opens a Badger database that never touches disk.
func OpenBadgerInMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func recordKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%010d", recordPrefix, i))
}

// Save replaces the stored snapshot. Records already stored are left in
// place when the new log extends them (same first and last stored record);
// otherwise every record is rewritten. Record keys are written in a
// WriteBatch; state:records moves only after the records it counts exist.
func (b *BadgerStore) Save(s *models.Snapshot) error {
	stored, err := b.storedRecords()
	if err != nil {
		return err
	}
	start := 0
	if stored > 0 && stored <= len(s.Records) {
		first, err := b.recordMatches(0, s.Records[0])
		if err != nil {
			return err
		}
		last, err := b.recordMatches(stored-1, s.Records[stored-1])
		if err != nil {
			return err
		}
		if first && last {
			start = stored
		}
	}

	if start < len(s.Records) {
		wb := b.db.NewWriteBatch()
		defer wb.Cancel()
		for i := start; i < len(s.Records); i++ {
			data, err := json.Marshal(s.Records[i])
			if err != nil {
				return fmt.Errorf("marshal record %d: %w", i, err)
			}
			if err := wb.Set(recordKey(i), data); err != nil {
				return fmt.Errorf("set %s: %w", recordKey(i), err)
			}
		}
		if err := wb.Flush(); err != nil {
			return fmt.Errorf("write records: %w", err)
		}
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, []byte(progressKey), s.Progress); err != nil {
			return err
		}
		if err := setJSON(txn, []byte(metricsKey), s.Metrics); err != nil {
			return err
		}
		if err := setJSON(txn, []byte(countKey), len(s.Records)); err != nil {
			return err
		}
		return setJSON(txn, []byte(cursorKey), s.Cursor)
	})
	if err != nil {
		return err
	}

	if stored > len(s.Records) {
		wb := b.db.NewWriteBatch()
		defer wb.Cancel()
		for i := len(s.Records); i < stored; i++ {
			if err := wb.Delete(recordKey(i)); err != nil {
				return fmt.Errorf("delete %s: %w", recordKey(i), err)
			}
		}
		if err := wb.Flush(); err != nil {
			return fmt.Errorf("delete stale records: %w", err)
		}
	}
	return nil
}

// storedRecords returns the record count of the saved snapshot, 0 if none.
func (b *BadgerStore) storedRecords() (int, error) {
	var n int
	err := b.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(countKey), &n)
	})
	if errors.Is(err, ErrNoSnapshot) || errors.Is(err, ErrMalformedSnapshot) {
		return 0, nil
	}
	return n, err
}

// recordMatches reports whether the stored record at i encodes to the same
// bytes as r.
func (b *BadgerStore) recordMatches(i int, r models.LearningRecord) (bool, error) {
	want, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("marshal record %d: %w", i, err)
	}
	var same bool
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(i))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", recordKey(i), err)
		}
		return item.Value(func(val []byte) error {
			same = bytes.Equal(val, want)
			return nil
		})
	})
	return same, err
}

// Load reads the stored snapshot.
func (b *BadgerStore) Load() (*models.Snapshot, error) {
	var w wireSnapshot
	err := b.db.View(func(txn *badger.Txn) error {
		if err := getJSON(txn, []byte(cursorKey), &w.Cursor); err != nil {
			return err
		}
		if err := getJSON(txn, []byte(progressKey), &w.Progress); err != nil {
			return err
		}
		if err := getJSON(txn, []byte(metricsKey), &w.Metrics); err != nil {
			return err
		}
		var count int
		if err := getJSON(txn, []byte(countKey), &count); err != nil {
			return err
		}

		w.Records = make([]models.LearningRecord, 0, count)
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: []byte(recordPrefix)})
		defer it.Close()
		for it.Rewind(); it.Valid() && len(w.Records) < count; it.Next() {
			var r models.LearningRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("%w: record %s: %v", ErrMalformedSnapshot, it.Item().Key(), err)
			}
			w.Records = append(w.Records, r)
		}
		if len(w.Records) != count {
			return fmt.Errorf("%w: found %d of %d records", ErrMalformedSnapshot, len(w.Records), count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromWire(w)
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := txn.Set(key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// getJSON decodes key into v. A missing cursor means nothing was ever
// saved; any other missing key means the snapshot is incomplete.
func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		if string(key) == cursorKey {
			return ErrNoSnapshot
		}
		return fmt.Errorf("%w: missing %s", ErrMalformedSnapshot, key)
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, key, err)
		}
		return nil
	})
}
