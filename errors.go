// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jconf

import (
	"fmt"
	"strings"
)

// A SyntaxError reports a grammar violation found during parsing. It is the
// only kind of error the parser produces; a failed parse leaves the Document
// empty.
type SyntaxError struct {
	Line    int // 1-based line where the violation was detected
	Message string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// A ValueError is the common part of the errors reported by the accessor
// layer: which value failed and where it came from. It is embedded in the
// concrete error types below; dispatch on those with errors.As.
type ValueError struct {
	Line  int    // 1-based source line of the value
	Name  string // member name, or ""
	Index int    // position in the parent container, or -1
	Type  Type   // the value's actual type, or TypeInvalid

	message string
}

func newValueError(v *Value, msg string) ValueError {
	return ValueError{Line: v.line, Name: v.name, Index: v.idx, Type: v.kind, message: msg}
}

// Error satisfies the error interface.
func (e *ValueError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "line %d: %s", e.Line, e.message)

	var id string
	if e.Name != "" {
		id = fmt.Sprintf("member %q", e.Name)
	} else if e.Index >= 0 {
		id = fmt.Sprintf("index %d", e.Index)
	}
	if e.Type != TypeInvalid {
		if id != "" {
			id += ": "
		}
		id += e.Type.String()
	}
	if id != "" {
		fmt.Fprintf(&sb, " (%s)", id)
	}
	return sb.String()
}

// A TypeError reports a value whose type does not match the accessor.
type TypeError struct {
	ValueError
	Want Type // the type the accessor expected
}

func (e *TypeError) Error() string {
	return e.ValueError.Error() + ", want " + e.Want.String()
}

func badType(v *Value, want Type) error {
	return &TypeError{newValueError(v, "bad type"), want}
}

// An IntRangeError reports an integer outside the range an accessor allows.
type IntRangeError struct {
	ValueError
	Lo, Hi int64
}

func (e *IntRangeError) Error() string {
	return fmt.Sprintf("%s, want %d..%d", e.ValueError.Error(), e.Lo, e.Hi)
}

// A FloatRangeError reports a float outside the range an accessor allows.
type FloatRangeError struct {
	ValueError
	Lo, Hi float64
}

func (e *FloatRangeError) Error() string {
	return fmt.Sprintf("%s, want %g..%g", e.ValueError.Error(), e.Lo, e.Hi)
}

// A NotFoundError reports a required object member that is absent. Name is
// the requested member name; Line is the line of the enclosing object.
type NotFoundError struct {
	ValueError
}

// An UnknownMemberError reports an object member that was never accessed,
// found by RejectUnknown. The embedded fields identify the member.
type UnknownMemberError struct {
	ValueError
}

// An EnumError reports a string value that matches none of the candidates of
// an enumeration lookup.
type EnumError struct {
	ValueError
}

// An IndexError reports a positional access outside a container's bounds.
// The embedded fields identify the container.
type IndexError struct {
	ValueError
	N   int // the requested position
	Len int // the container's length
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s, index %d of %d", e.ValueError.Error(), e.N, e.Len)
}
