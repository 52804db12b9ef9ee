package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/internal/models"
)

// SettingsStore manages the singleton site configuration document.
type SettingsStore interface {
	// Get returns the settings, creating the default document on first read.
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, s *models.Settings) error
	// Reset restores the defaults and returns them.
	Reset(ctx context.Context) (*models.Settings, error)
}

// MongoSettingsStore implements SettingsStore on a Mongo collection.
type MongoSettingsStore struct {
	col *mongo.Collection
}

func NewMongoSettingsStore(db *mongo.Database) *MongoSettingsStore {
	return &MongoSettingsStore{col: db.Collection("settings")}
}

func (s *MongoSettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	defaults := models.DefaultSettings()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Settings
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": models.SettingsKey},
		bson.M{"$setOnInsert": defaults},
		opts,
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MongoSettingsStore) Update(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsKey
	settings.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": models.SettingsKey}, settings, opts)
	return err
}

func (s *MongoSettingsStore) Reset(ctx context.Context) (*models.Settings, error) {
	defaults := models.DefaultSettings()
	if err := s.Update(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// MemorySettingsStore is an in-memory SettingsStore.
type MemorySettingsStore struct {
	mu       sync.Mutex
	settings *models.Settings
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{}
}

func (s *MemorySettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		s.settings = models.DefaultSettings()
	}
	cp := *s.settings
	return &cp, nil
}

func (s *MemorySettingsStore) Update(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.ID = models.SettingsKey
	settings.UpdatedAt = time.Now().UTC()
	cp := *settings
	s.settings = &cp
	return nil
}

func (s *MemorySettingsStore) Reset(ctx context.Context) (*models.Settings, error) {
	defaults := models.DefaultSettings()
	if err := s.Update(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}
