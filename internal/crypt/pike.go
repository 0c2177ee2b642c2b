package crypt

import "encoding/binary"

// Pike implements the Fibonacci-style stream cipher used to obfuscate the
// network protocol once the handshake completes. It is seeded from a 128-byte
// key and produces a keystream by clocking three Fibonacci generators whose
// carries are combined with a majority function.
type Pike struct {
	generators     [3]keyGenerator
	lastCryptor    uint32
	lastCryptorLen int
}

// keyGenerator is one Fibonacci-style generator feeding the Pike keystream.
type keyGenerator struct {
	size   int
	pos1   int
	pos2   int
	carry  bool
	buffer []uint32
	sum    uint32
}

func newKeyGenerator(size, coefficient int) keyGenerator {
	return keyGenerator{
		size:   size,
		pos1:   0,
		pos2:   coefficient,
		buffer: make([]uint32, size),
	}
}

// NewPike constructs a Pike cipher from a 128-byte key.
func NewPike(key []byte) *Pike {
	p := &Pike{
		generators: [3]keyGenerator{
			newKeyGenerator(55, 31),
			newKeyGenerator(57, 50),
			newKeyGenerator(58, 39),
		},
	}

	// Expand the key using the SHA-1 variant, one 20-byte block at a time.
	var expanded [680]byte
	expanded[0] = 128
	for i := 1; i < 680; i++ {
		expanded[i] = key[i%128]
	}
	for i := 0; i < 680; i += 20 {
		hash := Sha1Variant(expanded[:])
		for j := 0; j < 20; j += 4 {
			copy(expanded[i+j:i+j+4], hash[j:j+4])
		}
	}

	for i := 0; i < 55; i++ {
		p.generators[0].buffer[i] = binary.LittleEndian.Uint32(expanded[i*4:])
	}
	for i := 0; i < 57; i++ {
		p.generators[1].buffer[i] = binary.LittleEndian.Uint32(expanded[i*4+220:])
	}
	for i := 0; i < 58; i++ {
		p.generators[2].buffer[i] = binary.LittleEndian.Uint32(expanded[i*4+448:])
	}

	return p
}

// Apply XORs the Pike keystream into data in place, advancing cipher state.
// Applying the same keystream twice over the same byte sequence (from two
// independently-constructed Pike instances with the same key) is a no-op.
func (p *Pike) Apply(data []byte) {
	size := len(data)

	preludeSize := p.lastCryptorLen
	if size < preludeSize {
		preludeSize = size
	}

	if preludeSize != 0 {
		for i := 0; i < preludeSize; i++ {
			shift := uint(8 * (4 - p.lastCryptorLen + i))
			data[i] ^= byte(p.lastCryptor >> shift)
		}
		p.lastCryptorLen -= preludeSize
	}

	if size >= 4 {
		for i := preludeSize; i <= size-4; i += 4 {
			p.clockKeys()
			for g := 0; g < 3; g++ {
				s := p.generators[g].sum
				data[i] ^= byte(s)
				data[i+1] ^= byte(s >> 8)
				data[i+2] ^= byte(s >> 16)
				data[i+3] ^= byte(s >> 24)
			}
		}
	}

	postludeSize := (size - preludeSize) & 3
	if postludeSize != 0 {
		p.clockKeys()
		p.lastCryptor = 0
		for g := 0; g < 3; g++ {
			p.lastCryptor ^= p.generators[g].sum
		}
		for i := 0; i < postludeSize; i++ {
			data[size-postludeSize+i] ^= byte(p.lastCryptor >> uint(i*8))
		}
		p.lastCryptorLen = 4 - postludeSize
	}
}

func (p *Pike) clockKeys() {
	g0, g1, g2 := &p.generators[0], &p.generators[1], &p.generators[2]
	keyClock := (g0.carry && g1.carry) || (g2.carry && (g0.carry || g1.carry))

	for i := range p.generators {
		k := &p.generators[i]
		if keyClock != k.carry {
			continue
		}
		v1 := k.buffer[k.pos1]
		v2 := k.buffer[k.pos2]
		sum := v1 + v2
		k.carry = sum < v1
		k.sum = sum
		k.pos1 = (k.pos1 + 1) % k.size
		k.pos2 = (k.pos2 + 1) % k.size
	}
}
