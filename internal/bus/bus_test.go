package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

var testConnID = wire.EntityID{1, 2, 3, 4, 5, 6, 7, 8}

func TestNewFromPacketCheckVersion(t *testing.T) {
	data := []byte{
		0x2, 0x0, 0x8, 0x0, 0x8, 0x0, 0x14, 0x0, 0x0, 0x0, 0x0, 0x0, 0x1d, 0x8a, 0x5, 0x0,
		0x14, 0x0, 0x0, 0x0, 0x1, 0x0, 0x0, 0x0, 0xce, 0x7b, 0x5, 0x0,
	}

	msg, err := NewFromPacket(testConnID, nil, nil, nil, opcode.CCheckVersion, data)
	require.NoError(t, err)

	req, ok := msg.(RequestCheckVersion)
	require.True(t, ok)
	assert.Equal(t, testConnID, req.ConnectionGlobalWorldID)
	require.Len(t, req.Packet.Version, 2)
	assert.Equal(t, int32(0), req.Packet.Version[0].Index)
	assert.Equal(t, int32(363037), req.Packet.Version[0].Value)
	assert.Equal(t, int32(1), req.Packet.Version[1].Index)
	assert.Equal(t, int32(359374), req.Packet.Version[1].Value)
}

func TestNewFromPacketUnauthorized(t *testing.T) {
	data := []byte{
		0x6, 0x0, 0x54, 0x0, 0x68, 0x0, 0x65, 0x0, 0x42, 0x0, 0x65, 0x0, 0x73, 0x0, 0x74, 0x0,
		0x4e, 0x0, 0x61, 0x0, 0x6d, 0x0, 0x65, 0x0, 0x0, 0x0,
	}

	_, err := NewFromPacket(testConnID, nil, nil, nil, opcode.CCheckUserName, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorizedPacket))
}

func TestNewFromPacketNoMapping(t *testing.T) {
	_, err := NewFromPacket(testConnID, nil, nil, nil, opcode.Opcode("C_UNMAPPED"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMessageMapping))
}

func TestTargetGlobal(t *testing.T) {
	msg := RequestLoginArbiter{ConnectionGlobalWorldID: testConnID}
	assert.Equal(t, TargetGlobal, msg.Target())
}

func TestTargetConnection(t *testing.T) {
	msg := ResponseCheckVersion{ConnectionGlobalWorldID: testConnID}
	assert.Equal(t, TargetConnection, msg.Target())
}

func TestMessageOpcodeForPacketMessage(t *testing.T) {
	msg := ResponseCheckVersion{ConnectionGlobalWorldID: testConnID}
	assert.Equal(t, opcode.SCheckVersion, msg.Opcode())
}

func TestMessageConnectionIDSome(t *testing.T) {
	msg := ResponseCheckVersion{ConnectionGlobalWorldID: testConnID}
	id, ok := msg.ConnectionID()
	assert.True(t, ok)
	assert.Equal(t, testConnID, id)
}

func TestSpecialMessageHasNoConnectionID(t *testing.T) {
	msg := RegisterConnection{}
	_, ok := msg.ConnectionID()
	assert.False(t, ok)
}
