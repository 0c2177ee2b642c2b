package worldsim

import (
	"encoding/binary"

	"github.com/udisondev/la2go/internal/protocol/wire"
)

// localWorldAllocator hands out the entity ids the Global World uses to
// address each Local World it didn't create itself.
type localWorldAllocator struct {
	next uint64
}

func (a *localWorldAllocator) new() wire.EntityID {
	a.next++
	var id wire.EntityID
	binary.BigEndian.PutUint64(id[:], a.next)
	return id
}
