package conf

import "bytes"

type origin uint8

const (
	unset origin = iota
	explicit
	inherited
	defaulted
)

// Value is a configuration field that tracks whether it was set. The zero
// Value is unset, which is distinct from holding T's zero value.
type Value[T any] struct {
	v T
	o origin
}

// Set stores v as an explicitly configured value.
func (f *Value[T]) Set(v T) {
	f.v = v
	f.o = explicit
}

// Get returns the value, or T's zero value while unset.
func (f Value[T]) Get() T {
	return f.v
}

// IsSet reports whether the field holds a value, configured or resolved.
func (f Value[T]) IsSet() bool {
	return f.o != unset
}

// IsExplicit reports whether the value came from a directive in this scope.
func (f Value[T]) IsExplicit() bool {
	return f.o == explicit
}

// Merge resolves an unset or previously inherited field: it takes parent's
// value if parent holds one, otherwise def. Explicit values are kept.
// parent is nil for the Main scope.
//
// Merge copies T by assignment; fields holding slices or maps should use
// Bytes or clone in their own Merge.
func (f *Value[T]) Merge(parent *Value[T], def T) {
	if f.o == explicit {
		return
	}
	if parent != nil && parent.o != unset {
		f.v = parent.v
		f.o = inherited
		return
	}
	f.v = def
	f.o = defaulted
}

// Bytes is a byte-string field. Inherited values are cloned so that no two
// nodes share storage.
type Bytes struct {
	v []byte
	o origin
}

// Set stores b as an explicitly configured value. b must already live in
// long-lived memory; see Cycle.Bytes.
func (f *Bytes) Set(b []byte) {
	f.v = b
	f.o = explicit
}

// Get returns the value, or nil while unset.
func (f Bytes) Get() []byte {
	return f.v
}

// IsSet reports whether the field holds a value, configured or resolved.
func (f Bytes) IsSet() bool {
	return f.o != unset
}

// IsExplicit reports whether the value came from a directive in this scope.
func (f Bytes) IsExplicit() bool {
	return f.o == explicit
}

// Merge is Value.Merge with the inherited or default bytes cloned.
func (f *Bytes) Merge(parent *Bytes, def []byte) {
	if f.o == explicit {
		return
	}
	if parent != nil && parent.o != unset {
		f.v = bytes.Clone(parent.v)
		f.o = inherited
		return
	}
	f.v = bytes.Clone(def)
	f.o = defaulted
}
