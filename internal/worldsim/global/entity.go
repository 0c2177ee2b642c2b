package global

import (
	"encoding/binary"

	"github.com/udisondev/la2go/internal/protocol/wire"
)

// entityAllocator hands out unique, monotonically increasing entity ids.
// The global world is single-goroutine, so no synchronization is needed.
type entityAllocator struct {
	next uint64
}

func (a *entityAllocator) new() wire.EntityID {
	a.next++
	var id wire.EntityID
	binary.BigEndian.PutUint64(id[:], a.next)
	return id
}
