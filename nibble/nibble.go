// Package nibble splits a byte sequence into its 4-bit halves.
//
// Each byte yields two values, the high nibble first:
//
//	Bytes:   0x12       0x34
//	Nibbles: 0x1 0x2    0x3 0x4
package nibble

// Nibbler produces the nibbles of a byte slice in order.
// It borrows the slice and never modifies it. A Nibbler cannot be rewound.
type Nibbler struct {
	src        []byte
	pos        int   // next byte to split
	pending    uint8 // low nibble of src[pos-1]
	hasPending bool
}

// New returns a Nibbler over src.
func New(src []byte) *Nibbler {
	return &Nibbler{src: src}
}

// Next returns the next nibble. ok is false once every byte has been consumed
// and no pending low nibble remains.
func (n *Nibbler) Next() (v uint8, ok bool) {
	if n.hasPending {
		n.hasPending = false
		return n.pending, true
	}
	if n.pos >= len(n.src) {
		return 0, false
	}
	b := n.src[n.pos]
	n.pos++
	n.pending = b & 0x0F
	n.hasPending = true
	return b >> 4, true
}

// Remaining reports how many nibbles Next can still return.
func (n *Nibbler) Remaining() int {
	r := (len(n.src) - n.pos) * 2
	if n.hasPending {
		r++
	}
	return r
}

// Len returns the number of nibbles in a byte slice of length n.
func Len(n int) int {
	return n * 2
}
