// Package store provides durable persistence for serialized pipeline graphs.
//
// The package is split in two layers. BlobStore is the abstract key-value
// contract with three interchangeable implementations: MemoryStore for
// in-process use and tests, RedisStore backed by go-redis, and EtcdStore
// backed by the etcd v3 client. Slots sits on top of any BlobStore and
// implements named save slots: each slot holds exactly one serialized graph
// and saving overwrites the previous value.
//
//	blob := store.NewMemoryStore()
//	slots := store.NewSlots(blob)
//
//	if err := slots.Save(ctx, "sprint-12", g); err != nil {
//	    return err
//	}
//	g2, err := slots.Load(ctx, "sprint-12")
//
// Load distinguishes a slot that has never been written (ErrSlotNotFound)
// from a slot holding a corrupt blob (graph.ErrBadSnapshot), so callers can
// fall back to an empty graph without masking data loss.
package store
