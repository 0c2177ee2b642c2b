package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf16"
)

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) need(n int) error {
	if d.pos+n > len(d.data) {
		return ErrTruncated
	}
	return nil
}

func (d *decoder) decodeStruct(rv reflect.Value) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if f.Tag.Get("wire") == "-" {
			continue
		}
		if err := d.decodeField(rv.Field(i)); err != nil {
			return fmt.Errorf("wire: field %s: %w", f.Name, err)
		}
	}
	return nil
}

func (d *decoder) decodeField(fv reflect.Value) error {
	switch classify(fv.Type()) {
	case kindScalar:
		return d.decodeScalar(fv)
	case kindRawArray:
		n := fv.Len()
		if err := d.need(n); err != nil {
			return err
		}
		reflect.Copy(fv, reflect.ValueOf(d.data[d.pos:d.pos+n]))
		d.pos += n
		return nil
	case kindStruct:
		return d.decodeStruct(fv)
	case kindString:
		return d.decodeStringField(fv)
	case kindBytes:
		return d.decodeBytesField(fv)
	case kindArray:
		return d.decodeArrayField(fv)
	}
	return fmt.Errorf("wire: unsupported field type %s", fv.Type())
}

func (d *decoder) decodeScalar(fv reflect.Value) error {
	switch fv.Kind() {
	case reflect.Bool:
		if err := d.need(1); err != nil {
			return err
		}
		fv.SetBool(d.data[d.pos] != 0)
		d.pos++
	case reflect.Uint8:
		if err := d.need(1); err != nil {
			return err
		}
		fv.SetUint(uint64(d.data[d.pos]))
		d.pos++
	case reflect.Int8:
		if err := d.need(1); err != nil {
			return err
		}
		fv.SetInt(int64(int8(d.data[d.pos])))
		d.pos++
	case reflect.Uint16:
		if err := d.need(2); err != nil {
			return err
		}
		fv.SetUint(uint64(binary.LittleEndian.Uint16(d.data[d.pos:])))
		d.pos += 2
	case reflect.Int16:
		if err := d.need(2); err != nil {
			return err
		}
		fv.SetInt(int64(int16(binary.LittleEndian.Uint16(d.data[d.pos:]))))
		d.pos += 2
	case reflect.Uint32:
		if err := d.need(4); err != nil {
			return err
		}
		fv.SetUint(uint64(binary.LittleEndian.Uint32(d.data[d.pos:])))
		d.pos += 4
	case reflect.Int32:
		if err := d.need(4); err != nil {
			return err
		}
		fv.SetInt(int64(int32(binary.LittleEndian.Uint32(d.data[d.pos:]))))
		d.pos += 4
	case reflect.Uint64:
		if err := d.need(8); err != nil {
			return err
		}
		fv.SetUint(binary.LittleEndian.Uint64(d.data[d.pos:]))
		d.pos += 8
	case reflect.Int64:
		if err := d.need(8); err != nil {
			return err
		}
		fv.SetInt(int64(binary.LittleEndian.Uint64(d.data[d.pos:])))
		d.pos += 8
	case reflect.Float32:
		if err := d.need(4); err != nil {
			return err
		}
		fv.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(d.data[d.pos:]))))
		d.pos += 4
	case reflect.Float64:
		if err := d.need(8); err != nil {
			return err
		}
		fv.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(d.data[d.pos:])))
		d.pos += 8
	default:
		return fmt.Errorf("wire: unsupported scalar kind %s", fv.Kind())
	}
	return nil
}

// decodeStringField reads the u16 absolute packet offset, then scans for a
// UCS-2LE null terminator starting at that offset. String data lives out of
// line; only the offset field advances the cursor.
func (d *decoder) decodeStringField(fv reflect.Value) error {
	if err := d.need(2); err != nil {
		return err
	}
	off := binary.LittleEndian.Uint16(d.data[d.pos:])
	d.pos += 2

	start := int(off) - HeaderSize
	if start < 0 || start > len(d.data) {
		return ErrStringNotTerminated
	}

	var units []uint16
	for i := start; ; i += 2 {
		if i+2 > len(d.data) {
			return ErrStringNotTerminated
		}
		u := binary.LittleEndian.Uint16(d.data[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}

	fv.SetString(string(utf16.Decode(units)))
	return nil
}

// decodeBytesField reads the u16 length then u16 absolute offset (in that
// order, matching how encodeBytes lays the field out), then copies length
// bytes starting at offset out of line.
func (d *decoder) decodeBytesField(fv reflect.Value) error {
	if err := d.need(4); err != nil {
		return err
	}
	length := binary.LittleEndian.Uint16(d.data[d.pos:])
	off := binary.LittleEndian.Uint16(d.data[d.pos+2:])
	d.pos += 4

	start := int(off) - HeaderSize
	end := start + int(length)
	if start < 0 || end > len(d.data) {
		return fmt.Errorf("wire: bytes field out of range (start=%d end=%d len=%d)", start, end, len(d.data))
	}

	out := make([]byte, length)
	copy(out, d.data[start:end])
	fv.SetBytes(out)
	return nil
}

// decodeArrayField reads the u16 count and u16 first-element absolute
// offset, then walks the linked list of elements, verifying that each
// element's self-reported this_offset matches the offset the previous
// element (or the array header) advertised. The cursor returns to just
// after the array header once all elements are read, so subsequent fixed
// fields in the struct continue reading in order.
func (d *decoder) decodeArrayField(fv reflect.Value) error {
	if err := d.need(4); err != nil {
		return err
	}
	count := binary.LittleEndian.Uint16(d.data[d.pos:])
	next := binary.LittleEndian.Uint16(d.data[d.pos+2:])
	afterHeader := d.pos + 4

	slice := reflect.MakeSlice(fv.Type(), int(count), int(count))
	for i := 0; i < int(count); i++ {
		elemStart := int(next) - HeaderSize
		if elemStart < 0 || elemStart+4 > len(d.data) {
			return ErrInvalidSeqEntry
		}
		d.pos = elemStart

		thisOffset := binary.LittleEndian.Uint16(d.data[d.pos:])
		if thisOffset != next {
			return ErrInvalidSeqEntry
		}
		d.pos += 2
		next = binary.LittleEndian.Uint16(d.data[d.pos:])
		d.pos += 2

		if err := d.decodeField(slice.Index(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	fv.Set(slice)
	d.pos = afterHeader
	return nil
}
