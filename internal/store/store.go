// Package store persists the site document as one opaque blob. There is no
// versioning, locking or partial update: every write replaces the document and
// the last write wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wecreatehub/site_backend/internal/endpoint"
	"github.com/wecreatehub/site_backend/internal/models"
)

// EmptyDocument is what a store answers before its first write.
var EmptyDocument = []byte("{}")

// ConfigStore reads the raw document and replaces it wholesale.
type ConfigStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, doc models.Document) error
}

// BlobStore is a ConfigStore that also stores untyped document text as given.
type BlobStore interface {
	ConfigStore
	WriteRaw(ctx context.Context, raw json.RawMessage) error
}

// DB keeps the document in the AppConfig row named Key.
type DB struct {
	DB  *gorm.DB
	Key string
}

func NewDB(db *gorm.DB, key string) *DB {
	return &DB{DB: db, Key: key}
}

func (s *DB) Read(ctx context.Context) ([]byte, error) {
	var rec models.AppConfig
	err := s.DB.WithContext(ctx).Where(&models.AppConfig{Key: s.Key}).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EmptyDocument, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rec.Value) == 0 {
		return EmptyDocument, nil
	}
	return rec.Value, nil
}

func (s *DB) Write(ctx context.Context, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.WriteRaw(ctx, raw)
}

// WriteRaw upserts the row; the first write creates it.
func (s *DB) WriteRaw(ctx context.Context, raw json.RawMessage) error {
	rec := models.AppConfig{Key: s.Key, Value: datatypes.JSON(raw)}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

// Memory is an in-process store for tests and local runs.
type Memory struct {
	mu     sync.RWMutex
	raw    []byte
	writes int
}

func NewMemory(initial []byte) *Memory {
	return &Memory{raw: append([]byte(nil), initial...)}
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.raw) == 0 {
		return EmptyDocument, nil
	}
	return append([]byte(nil), m.raw...), nil
}

func (m *Memory) Write(ctx context.Context, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return m.WriteRaw(ctx, raw)
}

func (m *Memory) WriteRaw(ctx context.Context, raw json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = append([]byte(nil), raw...)
	m.writes++
	return nil
}

// Writes reports how many writes reached the store.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Remote goes through the HTTP endpoint.
type Remote struct {
	Client *endpoint.Client
}

func NewRemote(c *endpoint.Client) *Remote {
	return &Remote{Client: c}
}

func (r *Remote) Read(ctx context.Context) ([]byte, error) {
	return r.Client.GetConfig(ctx)
}

// SaveRequest is the body of a document write.
type SaveRequest struct {
	Action string          `json:"action"`
	Config models.Document `json:"config"`
}

func (r *Remote) Write(ctx context.Context, doc models.Document) error {
	_, err := r.Client.Post(ctx, SaveRequest{Action: "saveConfig", Config: doc})
	return err
}

// Configured is false when no endpoint url is set; writes would fail without
// touching the network.
func (r *Remote) Configured() bool {
	return r.Client.Configured()
}
