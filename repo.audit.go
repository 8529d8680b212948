package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// AuditRecord is the persisted form of a book mutation event.
type AuditRecord struct {
	Seq     uint64    `json:"seq"`
	Action  string    `json:"action"`
	BookID  int64     `json:"bookId"`
	Success bool      `json:"success"`
	At      time.Time `json:"at"`
}

// AuditStorage persists and lists book mutation audit records.
type AuditStorage interface {
	Save(ctx context.Context, event BookEvent) error
	List(ctx context.Context, limit int) ([]AuditRecord, error)
}

type boltAuditStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// NewBoltAuditStorage provides an instance of bolt-based audit storage.
func NewBoltAuditStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) AuditStorage {
	return &boltAuditStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Save appends the event to the audit bucket under the next sequence key.
func (as *boltAuditStorage) Save(_ context.Context, event BookEvent) error {
	return as.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(as.config.AuditBucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		record := AuditRecord{
			Seq:     seq,
			Action:  event.Action,
			BookID:  event.BookID,
			Success: event.Success,
			At:      event.At,
		}
		recordBytes, err := json.Marshal(record)
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, recordBytes)
	})
}

// List returns up to limit most recent audit records, newest first.
func (as *boltAuditStorage) List(_ context.Context, limit int) ([]AuditRecord, error) {
	tx, err := as.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(as.config.AuditBucketName)).Cursor()

	records := []AuditRecord{}
	for k, v := c.Last(); k != nil && len(records) < limit; k, v = c.Prev() {
		var record AuditRecord
		if err = json.Unmarshal(v, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
