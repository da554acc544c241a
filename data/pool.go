// Package data owns the literal data pool: an immutable, post-parse
// mapping from DataIndex to an owned byte blob.
package data

import "github.com/pkg/errors"

// ErrUndefinedDataIndex is returned when an instruction references a
// data-pool index the program never declared.
var ErrUndefinedDataIndex = errors.New("undefined data index")

// DataIndex identifies a literal blob in the data pool.
type DataIndex uint64

// Pointer is an owning handle to a byte region. Its size is tracked
// externally by the register's declared type (§3); DataPointer itself
// carries no length beyond the slice header. Assignment into a register
// slot replaces the slot's previous Pointer outright — the Go garbage
// collector reclaims the displaced buffer once nothing references it
// (see DESIGN.md on the "owning vs aliasing" design note).
type Pointer []byte

// Pool is the literal data section: built by compiler.Compile from the
// parser's data declarations, handed to the Global Environment,
// read-only for the lifetime of the program.
type Pool struct {
	blobs map[DataIndex]Pointer
}

// NewPool returns an empty pool, ready to be populated with Declare.
func NewPool() *Pool {
	return &Pool{blobs: make(map[DataIndex]Pointer)}
}

// Declare installs a blob at the given index, zero-padded to capacity
// bytes if payload is shorter. A payload longer than capacity is the
// caller's obligation to reject (NumberTooLarge is a parse-time concern,
// see asm.Parser); Declare itself truncates defensively rather than
// panicking.
func (p *Pool) Declare(idx DataIndex, payload []byte, capacity uint64) {
	buf := make(Pointer, capacity)
	n := copy(buf, payload)
	_ = n
	p.blobs[idx] = buf
}

// Get returns the blob at idx, or ErrUndefinedDataIndex if no such blob
// was declared.
func (p *Pool) Get(idx DataIndex) (Pointer, error) {
	blob, ok := p.blobs[idx]
	if !ok {
		return nil, errors.Wrapf(ErrUndefinedDataIndex, "#%d", idx)
	}
	return blob, nil
}

// Len reports how many blobs are declared.
func (p *Pool) Len() int {
	return len(p.blobs)
}

// AllocClear returns a freshly zeroed buffer of n bytes. Go slice
// allocation already zero-initializes, so no separate clear pass is
// needed (unlike the C original's calloc).
func AllocClear(n uint64) Pointer {
	return make(Pointer, n)
}
