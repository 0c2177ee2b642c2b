package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf16"
)

func encodeStruct(n *node, rv reflect.Value) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if f.Tag.Get("wire") == "-" {
			continue
		}
		if err := encodeField(n, rv.Field(i)); err != nil {
			return fmt.Errorf("wire: field %s: %w", f.Name, err)
		}
	}
	return nil
}

func encodeField(n *node, fv reflect.Value) error {
	switch classify(fv.Type()) {
	case kindScalar:
		return encodeScalar(n, fv)
	case kindRawArray:
		raw := make([]byte, fv.Len())
		reflect.Copy(reflect.ValueOf(raw), fv)
		n.data = append(n.data, raw...)
		return nil
	case kindStruct:
		return encodeStruct(n, fv)
	case kindString:
		return encodeString(n, fv.String())
	case kindBytes:
		return encodeBytes(n, fv.Bytes())
	case kindArray:
		return encodeArray(n, fv)
	}
	return fmt.Errorf("wire: unsupported field type %s", fv.Type())
}

func encodeScalar(n *node, fv reflect.Value) error {
	switch fv.Kind() {
	case reflect.Bool:
		if fv.Bool() {
			n.data = append(n.data, 1)
		} else {
			n.data = append(n.data, 0)
		}
	case reflect.Uint8:
		n.data = append(n.data, byte(fv.Uint()))
	case reflect.Int8:
		n.data = append(n.data, byte(int8(fv.Int())))
	case reflect.Uint16, reflect.Int16:
		var buf [2]byte
		if fv.Kind() == reflect.Int16 {
			binary.LittleEndian.PutUint16(buf[:], uint16(int16(fv.Int())))
		} else {
			binary.LittleEndian.PutUint16(buf[:], uint16(fv.Uint()))
		}
		n.data = append(n.data, buf[:]...)
	case reflect.Uint32, reflect.Int32:
		var buf [4]byte
		if fv.Kind() == reflect.Int32 {
			binary.LittleEndian.PutUint32(buf[:], uint32(int32(fv.Int())))
		} else {
			binary.LittleEndian.PutUint32(buf[:], uint32(fv.Uint()))
		}
		n.data = append(n.data, buf[:]...)
	case reflect.Uint64, reflect.Int64:
		var buf [8]byte
		if fv.Kind() == reflect.Int64 {
			binary.LittleEndian.PutUint64(buf[:], uint64(fv.Int()))
		} else {
			binary.LittleEndian.PutUint64(buf[:], fv.Uint())
		}
		n.data = append(n.data, buf[:]...)
	case reflect.Float32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(fv.Float())))
		n.data = append(n.data, buf[:]...)
	case reflect.Float64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(fv.Float()))
		n.data = append(n.data, buf[:]...)
	default:
		return fmt.Errorf("wire: unsupported scalar kind %s", fv.Kind())
	}
	return nil
}

func encodeString(n *node, s string) error {
	fieldStart := len(n.data)
	n.data = append(n.data, 0, 0) // offset placeholder

	units := utf16.Encode([]rune(s))
	buf := make([]byte, len(units)*2+2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	// trailing two zero bytes already present as the null terminator

	n.children = append(n.children, child{
		kind:       childString,
		fieldStart: fieldStart,
		node:       &node{data: buf},
	})
	return nil
}

func encodeBytes(n *node, b []byte) error {
	fieldStart := len(n.data)
	n.data = append(n.data, 0, 0, 0, 0) // length + offset placeholders

	raw := append([]byte(nil), b...)
	n.children = append(n.children, child{
		kind:       childBytes,
		fieldStart: fieldStart,
		node:       &node{data: raw},
	})
	return nil
}

func encodeArray(n *node, fv reflect.Value) error {
	fieldStart := len(n.data)
	n.data = append(n.data, 0, 0, 0, 0) // count + first-element-offset placeholders

	elements := make([]*node, fv.Len())
	for i := 0; i < fv.Len(); i++ {
		elem := &node{data: make([]byte, 4)} // this_offset + next_offset placeholders
		if err := encodeField(elem, fv.Index(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = elem
	}

	n.children = append(n.children, child{
		kind:       childArray,
		fieldStart: fieldStart,
		elements:   elements,
	})
	return nil
}
