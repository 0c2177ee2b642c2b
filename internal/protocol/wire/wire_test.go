package wire

import (
	"bytes"
	"testing"
)

func TestEncodeDecodePrimitiveStruct(t *testing.T) {
	type packet struct {
		A uint8
		B int8
		C float32
		D float64
	}

	in := packet{A: 18, B: -13, C: 2.2, D: 1.0}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := []byte{
		0x12, 0xf3, 0xcd, 0xcc, 0x0c, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f,
	}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("Encode = %x, want %x", encoded, want)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeEntityID(t *testing.T) {
	type packet struct {
		PlayerID EntityID
		GuildID  uint32
	}

	in := packet{PlayerID: EntityID{1, 2, 3, 4, 5, 6, 7, 8}, GuildID: 3701}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeString(t *testing.T) {
	type packet struct {
		GameID uint64
		Name   string
	}

	in := packet{GameID: 144255925566078737, Name: "Pantsu"}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeEmptyString(t *testing.T) {
	type packet struct {
		Name string
		Tail uint32
	}

	in := packet{Name: "", Tail: 7}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeBytes(t *testing.T) {
	type packet struct {
		Header uint32
		Blob   []byte
	}

	in := packet{Header: 0xdeadbeef, Blob: []byte{0x01, 0x02, 0x03, 0x04, 0x05}}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Header != in.Header || !bytes.Equal(out.Blob, in.Blob) {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeArrayOfStructs(t *testing.T) {
	type benefit struct {
		PackageID      uint32
		ExpirationDate int64
	}
	type packet struct {
		Benefits []benefit
	}

	in := packet{Benefits: []benefit{
		{PackageID: 434, ExpirationDate: 2147483647},
		{PackageID: 900, ExpirationDate: 1},
	}}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Benefits) != len(in.Benefits) {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
	for i := range in.Benefits {
		if out.Benefits[i] != in.Benefits[i] {
			t.Fatalf("element %d = %+v, want %+v", i, out.Benefits[i], in.Benefits[i])
		}
	}
}

func TestEncodeDecodeEmptyArray(t *testing.T) {
	type benefit struct {
		PackageID uint32
	}
	type packet struct {
		Benefits []benefit
		GameID   uint64
	}

	in := packet{Benefits: nil, GameID: 144255925566078737}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Benefits) != 0 || out.GameID != in.GameID {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeArrayWithStringField(t *testing.T) {
	type customString struct {
		Str  string
		DBID uint64
	}
	type packet struct {
		CustomStrings []customString
		GameID        uint64
	}

	in := packet{
		CustomStrings: []customString{{Str: "Pantsu", DBID: 763477683208192}},
		GameID:        144255925566078737,
	}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.CustomStrings) != 1 || out.CustomStrings[0] != in.CustomStrings[0] || out.GameID != in.GameID {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestEncodeDecodeNestedStruct(t *testing.T) {
	type vec3 struct {
		X, Y, Z float32
	}
	type packet struct {
		Position vec3
		UserID   EntityID
	}

	in := packet{Position: vec3{X: 1.5, Y: -2.5, Z: 3.0}, UserID: EntityID{9, 9, 9, 9, 9, 9, 9, 9}}
	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out packet
	if err := Decode(encoded, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("Decode = %+v, want %+v", out, in)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	type packet struct {
		A uint32
	}
	var out packet
	if err := Decode([]byte{0x01, 0x02}, &out); err == nil {
		t.Fatal("expected error decoding truncated payload")
	}
}

func TestDecodeRequiresPointer(t *testing.T) {
	type packet struct{ A uint8 }
	var out packet
	if err := Decode([]byte{0x01}, out); err != ErrNotAPointer {
		t.Fatalf("err = %v, want ErrNotAPointer", err)
	}
}
