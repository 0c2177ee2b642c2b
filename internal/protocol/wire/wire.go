// Package wire implements the typed packet codec for the network protocol:
// a little-endian encoding with a linked-offset scheme for variable-length
// fields (strings, byte blobs, arrays), all offsets measured from the start
// of the packet including its 4-byte length/opcode header.
package wire

import (
	"errors"
	"fmt"
	"reflect"
)

// HeaderSize is the size of the length+opcode header every offset is
// measured from, even though the header itself is never part of the
// payload passed to Encode/Decode.
const HeaderSize = 4

var (
	// ErrNotAPointer is returned by Decode when given a non-pointer destination.
	ErrNotAPointer = errors.New("wire: destination must be a non-nil pointer to struct")
	// ErrTruncated is returned when the payload ends before a field can be read.
	ErrTruncated = errors.New("wire: payload truncated")
	// ErrStringNotTerminated is returned when a String field's data runs off
	// the end of the payload without a null terminator.
	ErrStringNotTerminated = errors.New("wire: string not null-terminated")
	// ErrInvalidSeqEntry is returned when an array element's self-reported
	// offset does not match the offset the previous element (or the array
	// header) pointed to.
	ErrInvalidSeqEntry = errors.New("wire: array element offset mismatch")
)

// Encode serializes v, a pointer to or value of a struct type, into a wire
// payload (not including the 4-byte length/opcode header).
func Encode(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("wire: encode nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("wire: encode expects a struct, got %s", rv.Kind())
	}

	n := &node{}
	if err := encodeStruct(n, rv); err != nil {
		return nil, err
	}
	return assemble(n, HeaderSize), nil
}

// Decode parses a wire payload (not including the 4-byte header) into v, a
// pointer to a struct.
func Decode(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrNotAPointer
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("wire: decode expects a struct pointer, got pointer to %s", rv.Kind())
	}

	d := &decoder{data: data}
	return d.decodeStruct(rv)
}
