package state

import "go.trai.ch/flexgen/internal/core/ports"

// Factory opens file backed record stores.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open implements ports.RecordStoreFactory.
func (f *Factory) Open(path string) (ports.RecordStore, error) {
	store, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
