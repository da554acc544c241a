// Package types implements the type registry: the append-only mapping
// from type name to a dense TypeIndex and its declared byte size.
package types

import "github.com/pkg/errors"

// Pre-allocated sentinel errors to avoid string allocation on error paths.
var (
	ErrDuplicateType = errors.New("type name duplicate")
	ErrUndefinedType = errors.New("undefined type")
)

// TypeIndex identifies a type in the registry. TypeIndex(0) is the
// null/invalid type; real types start at index 1.
type TypeIndex uint32

// NullType is the reserved invalid index.
const NullType TypeIndex = 0

// PointerType is the reserved machine-word pointer type. It never
// collides with an append-ordered user type index.
const PointerType TypeIndex = TypeIndex(^uint32(0))

// PointerSize is the platform machine-word size used for DataPointer
// values stored by the pointer-typed load primitive.
const PointerSize = 8

// TypeInfo describes a registered type. Size zero is legal: it marks an
// opaque, zero-byte type.
type TypeInfo struct {
	Name string
	Size uint64
}

// Registry is an insertion-ordered bijection between type names and
// TypeIndex, frozen (by convention, not by an explicit Freeze call) once
// the parser has finished building the program.
type Registry struct {
	byName  map[string]TypeIndex
	byIndex []TypeInfo
}

// NewRegistry returns an empty registry. Index 0 is reserved so real
// types begin at index 1, matching the wire/source convention that
// TypeIndex(0) is "no type".
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]TypeIndex),
		byIndex: []TypeInfo{{}}, // index 0: reserved, undefined
	}
}

// Insert registers a new type name with the given byte size and returns
// its TypeIndex. Re-registering an existing name is a parse-time error,
// not a runtime condition.
func (r *Registry) Insert(name string, size uint64) (TypeIndex, error) {
	if _, ok := r.byName[name]; ok {
		return NullType, errors.Wrapf(ErrDuplicateType, "%q", name)
	}
	idx := TypeIndex(len(r.byIndex))
	r.byIndex = append(r.byIndex, TypeInfo{Name: name, Size: size})
	r.byName[name] = idx
	return idx, nil
}

// Find looks up a type by name. The second return value is false if no
// such type was ever inserted.
func (r *Registry) Find(name string) (TypeIndex, bool) {
	idx, ok := r.byName[name]
	return idx, ok
}

// MustFind is the resolver used by the compiler: it turns a missing type
// name directly into ErrUndefinedType.
func (r *Registry) MustFind(name string) (TypeIndex, error) {
	idx, ok := r.Find(name)
	if !ok {
		return NullType, errors.Wrapf(ErrUndefinedType, "%q", name)
	}
	return idx, nil
}

// At returns the TypeInfo for a given index. The size of a lookup at
// TypeIndex(0) is undefined by the spec; callers must not rely on it.
// PointerType always reports PointerSize regardless of what was
// registered at that numeric value.
func (r *Registry) At(idx TypeIndex) TypeInfo {
	if idx == PointerType {
		return TypeInfo{Name: "ptr", Size: PointerSize}
	}
	if int(idx) >= len(r.byIndex) {
		return TypeInfo{}
	}
	return r.byIndex[idx]
}

// Len returns the number of real (non-reserved) types registered.
func (r *Registry) Len() int {
	return len(r.byIndex) - 1
}
