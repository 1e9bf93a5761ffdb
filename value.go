// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jconf

// Type identifies the variant of a Value.
type Type byte

// Constants defining the valid Type values.
const (
	TypeInvalid Type = iota // zero value; no parsed value has this type
	TypeNull                // the null constant
	TypeBool                // true or false
	TypeInt                 // number without fraction or exponent
	TypeFloat               // number with fraction and/or exponent
	TypeString              // quoted string
	TypeArray               // ordered sequence of values
	TypeObject              // ordered sequence of named values
)

var typeStr = [...]string{
	TypeInvalid: "invalid",
	TypeNull:    "null",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeArray:   "array",
	TypeObject:  "object",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return typeStr[TypeInvalid]
	}
	return typeStr[t]
}

// A Value is one node of a parsed document. Values are created only by the
// parser and are immutable afterward except for the accessed flag, which is
// set by accessors and read by RejectUnknown. The flag is not synchronized;
// concurrent readers of a shared Document must serialize.
type Value struct {
	kind     Type
	accessed bool
	line     int    // 1-based source line of the token that produced the value
	idx      int    // position within the parent container, or -1
	name     string // member name within the parent object, or ""

	b     bool
	n     int64
	f     float64
	s     []byte         // string contents; the buffer byte after it is 0
	items []*Value       // array or object children, in insertion order
	index map[string]int // object member name to position
}

// Type reports the variant of v.
func (v *Value) Type() Type { return v.kind }

// Line reports the 1-based source line of the token that produced v.
func (v *Value) Line() int { return v.line }

// Name reports the member name of v within its parent object, or "".
func (v *Value) Name() string { return v.name }

// Index reports the position of v within its parent container, or -1.
func (v *Value) Index() int { return v.idx }

// IsNum reports whether v is an integer or a float.
func (v *Value) IsNum() bool { return v.kind == TypeInt || v.kind == TypeFloat }

// mark flags v as accessed and returns it. Once set the flag is never
// cleared.
func (v *Value) mark() *Value { v.accessed = true; return v }

// RejectUnknown traverses the tree rooted at v and reports an
// *UnknownMemberError for the first object member that no accessor ever
// returned. Array elements carry no names and are not checked themselves,
// but their subtrees are descended into.
func (v *Value) RejectUnknown() error {
	if v.kind != TypeArray && v.kind != TypeObject {
		return nil
	}
	for _, c := range v.items {
		if v.kind == TypeObject && !c.accessed {
			return &UnknownMemberError{newValueError(c, "unknown member")}
		}
		if err := c.RejectUnknown(); err != nil {
			return err
		}
	}
	return nil
}

// IgnoreAll marks every descendant of v as accessed, exempting the subtree
// from RejectUnknown. Use it for subtrees whose schema is intentionally
// open.
func (v *Value) IgnoreAll() {
	for _, c := range v.items {
		c.accessed = true
		c.IgnoreAll()
	}
}
