package bus

import (
	"fmt"

	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/packet"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// NewFromPacket builds the Message for an incoming client packet, checking
// that the caller supplied the credentials the opcode's category requires:
// local packets need a local world id, global-user packets need both an
// account id and a user id, global-account packets need an account id, and
// plain global packets need none beyond the connection itself.
func NewFromPacket(
	connectionGlobalWorldID wire.EntityID,
	connectionLocalWorldID *wire.EntityID,
	accountID *int64,
	userID *int32,
	op opcode.Opcode,
	data []byte,
) (Message, error) {
	switch op {
	case opcode.CLoadTopoFin:
		if connectionLocalWorldID == nil {
			return nil, ErrUnauthorizedPacket
		}
		var p packet.CLoadTopoFin
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestLoadTopoFin{
			ConnectionGlobalWorldID: connectionGlobalWorldID,
			ConnectionLocalWorldID:  *connectionLocalWorldID,
			Packet:                  p,
		}, nil

	case opcode.CCanCreateUser, opcode.CChangeUserLobbySlotID, opcode.CCheckUserName,
		opcode.CCreateUser, opcode.CDeleteUser, opcode.CGetUserList,
		opcode.CSetVisibleRange, opcode.CSelectUser:
		if accountID == nil {
			return nil, ErrUnauthorizedPacket
		}
		return newGlobalAccountMessage(connectionGlobalWorldID, *accountID, op, data)

	case opcode.CLoginArbiter:
		var p packet.CLoginArbiter
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestLoginArbiter{ConnectionGlobalWorldID: connectionGlobalWorldID, Packet: p}, nil

	case opcode.CCheckVersion:
		var p packet.CCheckVersion
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestCheckVersion{ConnectionGlobalWorldID: connectionGlobalWorldID, Packet: p}, nil

	case opcode.CPong:
		var p packet.CPong
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestPong{ConnectionGlobalWorldID: connectionGlobalWorldID, Packet: p}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrNoMessageMapping, op)
	}
}

func newGlobalAccountMessage(connID wire.EntityID, accountID int64, op opcode.Opcode, data []byte) (Message, error) {
	switch op {
	case opcode.CCanCreateUser:
		var p packet.CCanCreateUser
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestCanCreateUser{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CChangeUserLobbySlotID:
		var p packet.CChangeUserLobbySlotID
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestChangeUserLobbySlotID{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CCheckUserName:
		var p packet.CCheckUserName
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestCheckUserName{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CCreateUser:
		var p packet.CCreateUser
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestCreateUser{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CDeleteUser:
		var p packet.CDeleteUser
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestDeleteUser{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CGetUserList:
		var p packet.CGetUserList
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestGetUserList{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CSetVisibleRange:
		var p packet.CSetVisibleRange
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestSetVisibleRange{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	case opcode.CSelectUser:
		var p packet.CSelectUser
		if err := wire.Decode(data, &p); err != nil {
			return nil, fmt.Errorf("bus: decoding %s: %w", op, err)
		}
		return RequestSelectUser{ConnectionGlobalWorldID: connID, AccountID: accountID, Packet: p}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrNoMessageMapping, op)
	}
}
