package session

import "errors"

var (
	// ErrNoMagicWord would mark a missing/malformed magic word at the start
	// of the handshake stream. This server only ever writes the magic word
	// (the original client role parsed one); the error is kept for the
	// error-kind table's sake but currently has no producer here.
	ErrNoMagicWord = errors.New("session: magic word missing or malformed")

	// ErrIO wraps a handshake or frame read/write failure.
	ErrIO = errors.New("session: I/O error")

	// ErrCryptDesync marks a frame whose decrypted length prefix cannot be
	// a sane frame length, meaning the cipher stream has desynchronized.
	// The session cannot recover from this and must be terminated.
	ErrCryptDesync = errors.New("session: cipher desynchronized")

	// ErrConnectionClosed marks a clean end-of-stream on the socket.
	ErrConnectionClosed = errors.New("session: connection closed")

	// errDropConnection signals that handleOutbound already closed the
	// socket in response to a bus.DropConnection message.
	errDropConnection = errors.New("session: dropped by DropConnection message")
)
