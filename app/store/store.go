// Package store owns the database handle and is the only place that commits
// writes, so it can tell subscribers which tables changed.
package store

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-petshop/app/utils/pubsub"
	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	hub *pubsub.Hub
}

func New(db *gorm.DB, hub *pubsub.Hub) *Store {
	if hub == nil {
		hub = pubsub.NewHub()
	}
	return &Store{db: db, hub: hub}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Hub() *pubsub.Hub { return s.hub }

// Transaction runs fn in one transaction and, only after a successful commit,
// publishes the tables fn declared it touches. On error nothing is published.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error, tables ...string) error {
	if err := s.db.WithContext(ctx).Transaction(fn); err != nil {
		return err
	}
	s.hub.Publish(tables...)
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
