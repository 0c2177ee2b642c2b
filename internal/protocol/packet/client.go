// Package packet defines the typed payload structs exchanged over the
// wire codec (internal/protocol/wire), one struct per opcode. Field names
// and layout for CCheckVersion and CLoginArbiter are ported from the
// original packet definitions; the remaining client structs have no
// surviving field-level source and are reconstructed to a reasonable shape
// consistent with the opcodes they answer.
package packet

import "github.com/udisondev/la2go/internal/model"

// VersionEntry is one client-reported DLL/module version.
type VersionEntry struct {
	Index int32
	Value int32
}

// CCheckVersion is the first packet sent after the handshake, carrying the
// client's reported module versions.
type CCheckVersion struct {
	Version []VersionEntry
}

// CLoginArbiter authenticates the connection against the ticket the web
// frontend issued.
type CLoginArbiter struct {
	MasterAccountName string
	Ticket             []byte
	Unk1               int32
	Unk2               int32
	Region             model.Region
	PatchVersion       int32
}

// CPong answers a server ping with no payload of its own beyond the opcode.
type CPong struct{}

// CSelectUser requests entry into the world as the given character.
type CSelectUser struct {
	DatabaseID int32
}

// CGetUserList requests the account's character list.
type CGetUserList struct{}

// CCreateUser requests creation of a new character.
type CCreateUser struct {
	Name          string
	TemplateID    model.TemplateID
	Appearance    model.Customization
	Details       []byte
	Shape         []byte
}

// CDeleteUser requests deletion of a character.
type CDeleteUser struct {
	DatabaseID int32
}

// CCheckUserName asks whether a proposed character name is available.
type CCheckUserName struct {
	Name string
}

// ChangeUserLobbySlotEntry pairs a character with its requested position
// on the selection screen.
type ChangeUserLobbySlotEntry struct {
	DatabaseID int32
	Slot       int32
}

// CChangeUserLobbySlotID reorders a batch of characters on the selection
// screen. Only the characters named in Entries are renumbered; characters
// absent from the batch keep their current slot.
type CChangeUserLobbySlotID struct {
	Entries []ChangeUserLobbySlotEntry
}

// CSetVisibleRange configures the client's requested view distance.
type CSetVisibleRange struct {
	Range int32
}

// CCanCreateUser asks whether the account is still allowed to create a new
// character (slot limit check).
type CCanCreateUser struct{}

// CLoadTopoFin signals that the client finished loading the zone and is
// ready to be spawned into the local world.
type CLoadTopoFin struct{}
