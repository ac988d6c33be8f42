package ports

import "go.trai.ch/flexgen/internal/core/domain"

// RecordStore defines the interface for storing and retrieving generation records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the record for a step key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.GenerationRecord, error)

	// Put stores the record.
	Put(record domain.GenerationRecord) error
}

// RecordStoreFactory opens the record store configured for a workspace.
type RecordStoreFactory interface {
	Open(path string) (RecordStore, error)
}
