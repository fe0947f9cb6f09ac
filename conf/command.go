package conf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Args is the accepted argument count range of a directive.
// Max < 0 means unbounded.
type Args struct {
	Min, Max int
}

var (
	NoArgs    = Args{0, 0}
	Take1     = Args{1, 1}
	Take2     = Args{2, 2}
	Take12    = Args{1, 2}
	OneOrMore = Args{1, -1}
)

func (a Args) accepts(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

// SetFunc applies a directive's arguments to a node. args are transient
// tokens owned by the parse arena: anything retained must be copied with
// cy.String or cy.Bytes before returning.
type SetFunc[T any] func(cy *Cycle, conf *T, args [][]byte) error

// Command declares a directive of a module whose configuration type is T.
type Command[T any] struct {
	Name   string
	Scopes ScopeMask
	Args   Args
	Set    SetFunc[T]
}

// FlagSlot sets a boolean field from "on" or "off".
func FlagSlot[T any](field func(*T) *Value[bool]) SetFunc[T] {
	return func(cy *Cycle, conf *T, args [][]byte) error {
		f := field(conf)
		if f.IsExplicit() {
			return ErrDuplicate
		}
		switch strings.ToLower(string(args[0])) {
		case "on":
			f.Set(true)
		case "off":
			f.Set(false)
		default:
			return fmt.Errorf("%w: %q, it must be \"on\" or \"off\"", ErrInvalidValue, args[0])
		}
		return nil
	}
}

// StrSlot copies the argument into the cycle's long-lived arena.
func StrSlot[T any](field func(*T) *Value[string]) SetFunc[T] {
	return func(cy *Cycle, conf *T, args [][]byte) error {
		f := field(conf)
		if f.IsExplicit() {
			return ErrDuplicate
		}
		s, err := cy.String(args[0])
		if err != nil {
			return err
		}
		f.Set(s)
		return nil
	}
}

// BytesSlot is StrSlot for a Bytes field.
func BytesSlot[T any](field func(*T) *Bytes) SetFunc[T] {
	return func(cy *Cycle, conf *T, args [][]byte) error {
		f := field(conf)
		if f.IsExplicit() {
			return ErrDuplicate
		}
		b, err := cy.Bytes(args[0])
		if err != nil {
			return err
		}
		f.Set(b)
		return nil
	}
}

// NumSlot sets a non-negative decimal integer.
func NumSlot[T any](field func(*T) *Value[int64]) SetFunc[T] {
	return func(cy *Cycle, conf *T, args [][]byte) error {
		f := field(conf)
		if f.IsExplicit() {
			return ErrDuplicate
		}
		n, err := strconv.ParseInt(string(args[0]), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidValue, args[0])
		}
		f.Set(n)
		return nil
	}
}

// SizeSlot sets a byte size with an optional k, m or g suffix.
func SizeSlot[T any](field func(*T) *Value[int64]) SetFunc[T] {
	return func(cy *Cycle, conf *T, args [][]byte) error {
		f := field(conf)
		if f.IsExplicit() {
			return ErrDuplicate
		}
		n, err := ParseSize(string(args[0]))
		if err != nil {
			return err
		}
		f.Set(n)
		return nil
	}
}

// MsecSlot sets a duration. A bare number is milliseconds; otherwise the
// time.ParseDuration syntax applies ("30s", "1m30s", "250ms").
func MsecSlot[T any](field func(*T) *Value[time.Duration]) SetFunc[T] {
	return func(cy *Cycle, conf *T, args [][]byte) error {
		f := field(conf)
		if f.IsExplicit() {
			return ErrDuplicate
		}
		d, err := ParseMsec(string(args[0]))
		if err != nil {
			return err
		}
		f.Set(d)
		return nil
	}
}

// ParseSize parses "512", "8k", "1m" or "2g" (case-insensitive).
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty size", ErrInvalidValue)
	}
	scale := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		scale = 1 << 10
	case 'm', 'M':
		scale = 1 << 20
	case 'g', 'G':
		scale = 1 << 30
	}
	num := s
	if scale != 1 {
		num = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil || n < 0 || n > (1<<62)/scale {
		return 0, fmt.Errorf("%w: size %q", ErrInvalidValue, s)
	}
	return n * scale, nil
}

// ParseMsec parses a bare millisecond count or a Go duration string.
func ParseMsec(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidValue, s)
	}
	return d, nil
}
