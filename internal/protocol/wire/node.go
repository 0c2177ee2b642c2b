package wire

import "encoding/binary"

type childKind int

const (
	childString childKind = iota
	childBytes
	childArray
)

// node holds one data section of the linked-offset packet graph: the root,
// a string's character data, a byte blob, or one array element. Variable
// sized fields in data are tracked as children and resolved to absolute
// packet offsets in a single assemble pass.
type node struct {
	data     []byte
	children []child
}

// child records where in the parent's data a variable-length field's
// placeholder bytes live, and the node holding its content.
type child struct {
	kind       childKind
	fieldStart int // offset, within the parent node's data, of this field's placeholder bytes
	node       *node
	elements   []*node // array elements, in order
}

func putU16(b []byte, pos int, v uint16) {
	binary.LittleEndian.PutUint16(b[pos:pos+2], v)
}

// assemble lays out n and its descendants into a single byte slice, with
// every variable-length field's placeholder patched to the absolute packet
// offset (counting the 4-byte header) of the data it points to.
func assemble(n *node, base int) []byte {
	data := append([]byte(nil), n.data...)

	for _, c := range n.children {
		switch c.kind {
		case childString:
			start := base + len(data)
			putU16(data, c.fieldStart, uint16(start))
			data = append(data, assemble(c.node, start)...)

		case childBytes:
			start := base + len(data)
			putU16(data, c.fieldStart, uint16(len(c.node.data)))
			putU16(data, c.fieldStart+2, uint16(start))
			data = append(data, c.node.data...)

		case childArray:
			putU16(data, c.fieldStart, uint16(len(c.elements)))
			if len(c.elements) == 0 {
				putU16(data, c.fieldStart+2, 0)
				continue
			}
			cursor := base + len(data)
			putU16(data, c.fieldStart+2, uint16(cursor))
			for i, elem := range c.elements {
				putU16(elem.data, 0, uint16(cursor))
				assembled := assemble(elem, cursor)
				var next int
				if i+1 < len(c.elements) {
					next = cursor + len(assembled)
				}
				putU16(assembled, 2, uint16(next))
				data = append(data, assembled...)
				cursor += len(assembled)
			}
		}
	}

	return data
}
