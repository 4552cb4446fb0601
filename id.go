package vscroll

import "github.com/google/uuid"

// ItemID uniquely identifies an item for the lifetime of its presence in the
// list. It is assigned the first time the engine sees the item and is stable
// across list replacement, so hosts can use it as a render key.
type ItemID string

// newItemID generates a fresh identity.
func newItemID() ItemID {
	return ItemID("vs-" + uuid.NewString())
}

// itemKey identifies one occurrence of an item value in the list.
// Duplicate values (e.g. two equal strings) get distinct occurrence numbers,
// so each position still owns its own record.
type itemKey[T comparable] struct {
	item T
	nth  int
}
