package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibex-ai/pipeline/graph"
)

const slotPrefix = "slot:"

// Slots persists serialized graphs under named save slots on top of any
// BlobStore. Each slot holds exactly one graph; saving overwrites the
// previous value.
type Slots struct {
	store BlobStore
}

// NewSlots creates a slot adapter over the given blob store.
func NewSlots(store BlobStore) *Slots {
	return &Slots{store: store}
}

// Save serializes the graph and writes it to the named slot, overwriting
// any prior value.
func (s *Slots) Save(ctx context.Context, slot string, g *graph.Graph) error {
	if slot == "" {
		return ErrInvalidKey
	}

	blob, err := g.Serialize()
	if err != nil {
		return fmt.Errorf("slot %s: %w", slot, err)
	}
	return s.store.Set(ctx, slotPrefix+slot, blob)
}

// Load reads and deserializes the graph stored in the named slot.
//
// Returns ErrSlotNotFound if the slot has never been written, and
// graph.ErrBadSnapshot if the stored blob is corrupt. Callers that want the
// original dashboard's fallback behavior should treat ErrBadSnapshot as
// "start from an empty graph" rather than a fatal error.
func (s *Slots) Load(ctx context.Context, slot string) (*graph.Graph, error) {
	if slot == "" {
		return nil, ErrInvalidKey
	}

	blob, err := s.store.Get(ctx, slotPrefix+slot)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, err
	}
	return graph.Deserialize(blob)
}

// Delete removes the named slot.
// Returns ErrSlotNotFound if the slot has never been written.
func (s *Slots) Delete(ctx context.Context, slot string) error {
	if slot == "" {
		return ErrInvalidKey
	}

	err := s.store.Delete(ctx, slotPrefix+slot)
	if errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	return err
}

// List returns the names of all written slots.
func (s *Slots) List(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(k) > len(slotPrefix) && k[:len(slotPrefix)] == slotPrefix {
			slots = append(slots, k[len(slotPrefix):])
		}
	}
	return slots, nil
}
