package session

const (
	// defaultBufSize sizes the send/read pools' default slice capacity.
	defaultBufSize = 8192

	// maxFrameSize bounds the length a decrypted frame header may claim.
	// A client that reports a larger length has either desynchronized the
	// cipher or is misbehaving; either way the session cannot trust it.
	maxFrameSize = 8192

	// sessionChannelCapacity is the buffer size of a connection's inbound
	// channel from the worlds, matching the per-session TX capacity the
	// concurrency model calls for.
	sessionChannelCapacity = 1024
)
