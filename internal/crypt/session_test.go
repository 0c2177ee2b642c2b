package crypt

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func setupSessionPair() (client, server *CryptSession) {
	var c1, c2, s1, s2 [128]byte
	for i := range c1 {
		c1[i] = 0x12
		c2[i] = 0x34
		s1[i] = 0x56
		s2[i] = 0x78
	}
	client = NewCryptSession([2][128]byte{c1, c2}, [2][128]byte{s1, s2})
	server = NewCryptSession([2][128]byte{c1, c2}, [2][128]byte{s1, s2})
	return client, server
}

func TestCryptSessionClientDataSymmetry(t *testing.T) {
	server, client := setupSessionPair()

	original := repeat(0xfe, 32)
	data := append([]byte(nil), original...)

	server.CryptClientData(data)
	client.CryptClientData(data)

	if !bytes.Equal(data, original) {
		t.Fatalf("client cipher round trip mismatch: got %x want %x", data, original)
	}
}

func TestCryptSessionServerDataSymmetry(t *testing.T) {
	server, client := setupSessionPair()

	original := repeat(0xfe, 32)
	data := append([]byte(nil), original...)

	server.CryptServerData(data)
	client.CryptServerData(data)

	if !bytes.Equal(data, original) {
		t.Fatalf("server cipher round trip mismatch: got %x want %x", data, original)
	}
}

func TestCryptSessionClientDataAlgorithm(t *testing.T) {
	client, _ := setupSessionPair()

	data := repeat(0xfe, 32)
	client.CryptClientData(data)

	want := "4e089f08f20dbae0c5b3af03871f464f0af7477149de07d1e3b466ecba521e62"
	if got := hex.EncodeToString(data); got != want {
		t.Fatalf("= %s, want %s", got, want)
	}
}

func TestCryptSessionServerDataAlgorithm(t *testing.T) {
	server, _ := setupSessionPair()

	data := repeat(0xfe, 32)
	server.CryptServerData(data)

	want := "659f3e8745d2fcb73923bef592f99537acf4f96ac853fcbaa51bbbd4c62b9ded"
	if got := hex.EncodeToString(data); got != want {
		t.Fatalf("= %s, want %s", got, want)
	}
}
