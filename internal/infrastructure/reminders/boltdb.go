package reminders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store persists scheduled reminders in a local BoltDB file, keyed by fire
// time so due reminders can be cursor-scanned in order.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "reminders"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Schedule stores a reminder under a fire-time-ordered key. The reminder is
// normalized in place so the caller sees the generated id and timestamps.
func (s *Store) Schedule(reminder *Reminder) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if reminder == nil {
		return fmt.Errorf("nil reminder")
	}
	reminder.normalize()
	reminder.storeKey = []byte(buildKey(*reminder))

	payload, err := json.Marshal(reminder)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(reminder.storeKey, payload)
	})
}

// Due returns up to limit reminders whose fire time is at or before now,
// without removing them.
func (s *Store) Due(now time.Time, limit int) ([]Reminder, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var due []Reminder
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(due) < limit; k, v = c.Next() {
			var reminder Reminder
			if err := json.Unmarshal(v, &reminder); err != nil {
				continue
			}
			if reminder.FireAt.After(now) {
				// keys are fire-time ordered, nothing later is due
				break
			}
			reminder.storeKey = append([]byte(nil), k...)
			due = append(due, reminder)
		}
		return nil
	})
	return due, err
}

// Remove deletes a delivered or cancelled reminder.
func (s *Store) Remove(reminder Reminder) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(reminder.storeKey) == 0 {
		reminder.storeKey = []byte(buildKey(reminder))
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(reminder.storeKey)
	})
}

// CancelForActivity drops every pending reminder tied to an activity.
func (s *Store) CancelForActivity(activityID string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if activityID == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var reminder Reminder
			if err := json.Unmarshal(v, &reminder); err != nil {
				continue
			}
			if reminder.ActivityID == activityID {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Size returns the number of pending reminders.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildKey(reminder Reminder) string {
	return fmt.Sprintf("%020d_%s", reminder.FireAt.UnixNano(), reminder.ID)
}
