// Package opcode maps between the wire protocol's u16 opcode numbers and
// their symbolic names, loaded from a YAML table at boot and immutable
// afterwards.
package opcode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Opcode is a symbolic packet identifier. It is string-backed rather than
// an int enum so config and test fixtures can name packets directly.
type Opcode string

// Unknown is returned for wire opcodes absent from the loaded table.
const Unknown Opcode = "UNKNOWN"

// Client packet opcodes.
const (
	CCheckVersion          Opcode = "C_CHECK_VERSION"
	CLoginArbiter          Opcode = "C_LOGIN_ARBITER"
	CPong                  Opcode = "C_PONG"
	CSelectUser            Opcode = "C_SELECT_USER"
	CGetUserList           Opcode = "C_GET_USER_LIST"
	CCreateUser            Opcode = "C_CREATE_USER"
	CDeleteUser            Opcode = "C_DELETE_USER"
	CCheckUserName         Opcode = "C_CHECK_USER_NAME"
	CChangeUserLobbySlotID Opcode = "C_CHANGE_USER_LOBBY_SLOT_ID"
	CSetVisibleRange       Opcode = "C_SET_VISIBLE_RANGE"
	CCanCreateUser         Opcode = "C_CAN_CREATE_USER"
	CLoadTopoFin           Opcode = "C_LOAD_TOPO_FIN"
)

// Server packet opcodes.
const (
	SCheckVersion             Opcode = "S_CHECK_VERSION"
	SLoadingScreenControlInfo Opcode = "S_LOADING_SCREEN_CONTROL_INFO"
	SRemainPlayTime           Opcode = "S_REMAIN_PLAY_TIME"
	SLoginArbiter             Opcode = "S_LOGIN_ARBITER"
	SLoginAccountInfo         Opcode = "S_LOGIN_ACCOUNT_INFO"
	SGetUserList              Opcode = "S_GET_USER_LIST"
	SCanCreateUser            Opcode = "S_CAN_CREATE_USER"
	SCheckUserName            Opcode = "S_CHECK_USER_NAME"
	SCreateUser               Opcode = "S_CREATE_USER"
	SDeleteUser               Opcode = "S_DELETE_USER"
	SLogin                    Opcode = "S_LOGIN"
	SLoadTopo                 Opcode = "S_LOAD_TOPO"
	SLoadHint                 Opcode = "S_LOAD_HINT"
	SPing                     Opcode = "S_PING"
	SSpawnMe                  Opcode = "S_SPAWN_ME"
)

// Table is an immutable, bidirectional mapping between wire opcode numbers
// and symbolic Opcodes, safe for concurrent read access once loaded.
type Table struct {
	byWire   map[uint16]Opcode
	byOpcode map[Opcode]uint16
}

// Load reads a YAML opcode table (symbolic name -> wire number) from path
// and builds both directions of the mapping.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading opcode table %s: %w", path, err)
	}

	var raw map[Opcode]uint16
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing opcode table %s: %w", path, err)
	}

	return FromMap(raw), nil
}

// FromMap builds a Table directly from a symbolic-name -> wire-number map,
// useful for tests that don't want to touch the filesystem.
func FromMap(raw map[Opcode]uint16) *Table {
	t := &Table{
		byWire:   make(map[uint16]Opcode, len(raw)),
		byOpcode: make(map[Opcode]uint16, len(raw)),
	}
	for name, wire := range raw {
		t.byWire[wire] = name
		t.byOpcode[name] = wire
	}
	return t
}

// Name resolves a wire opcode number to its symbolic name. Unknown is
// returned, with ok false, if the table carries no entry for it.
func (t *Table) Name(wire uint16) (name Opcode, ok bool) {
	name, ok = t.byWire[wire]
	if !ok {
		return Unknown, false
	}
	return name, true
}

// Wire resolves a symbolic Opcode to its wire number.
func (t *Table) Wire(name Opcode) (wire uint16, ok bool) {
	wire, ok = t.byOpcode[name]
	return wire, ok
}
