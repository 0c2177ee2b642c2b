package wire

// EntityID is the 8-byte opaque identifier exchanged in packet fields that
// reference an entity (a connection, a user, a local world). It carries no
// semantics of its own at the wire level — interpretation is left to the
// message bus and the worlds. Like any other fixed-size byte array type, it
// is written and read in place, with no offset indirection.
type EntityID [8]byte

// IsZero reports whether the id is the zero value (no entity referenced).
func (id EntityID) IsZero() bool {
	return id == EntityID{}
}
