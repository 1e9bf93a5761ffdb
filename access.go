// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jconf

import (
	"math"

	"go4.org/mem"
)

// Accessors narrow a Value with a runtime type check, an optional range or
// enumeration constraint, and mark the values they return as accessed.
// Range parameters follow one convention throughout: lo > hi disables the
// range check (for Int32 accessors, it means the full int32 range).

// Bool returns the payload of a TypeBool value.
func (v *Value) Bool() (bool, error) {
	if v.kind != TypeBool {
		return false, badType(v, TypeBool)
	}
	return v.b, nil
}

// Int64 returns the payload of a TypeInt value.
func (v *Value) Int64() (int64, error) {
	if v.kind != TypeInt {
		return 0, badType(v, TypeInt)
	}
	return v.n, nil
}

// Int64In returns the payload of a TypeInt value after checking that it
// lies in [lo, hi].
func (v *Value) Int64In(lo, hi int64) (int64, error) {
	n, err := v.Int64()
	if err != nil {
		return 0, err
	}
	if lo <= hi && (n < lo || n > hi) {
		return 0, &IntRangeError{newValueError(v, "bad integer range"), lo, hi}
	}
	return n, nil
}

// Int32 returns the payload of a TypeInt value after checking that it fits
// in an int32.
func (v *Value) Int32() (int32, error) {
	n, err := v.Int64In(math.MinInt32, math.MaxInt32)
	return int32(n), err
}

// Int32In is Int32 with a range check.
func (v *Value) Int32In(lo, hi int32) (int32, error) {
	if lo > hi {
		return v.Int32()
	}
	n, err := v.Int64In(int64(lo), int64(hi))
	return int32(n), err
}

// Float64 returns the numeric payload of v, widening a TypeInt value to
// float64.
func (v *Value) Float64() (float64, error) {
	switch v.kind {
	case TypeFloat:
		return v.f, nil
	case TypeInt:
		return float64(v.n), nil
	}
	return 0, badType(v, TypeFloat)
}

// Float64In is Float64 with a range check.
func (v *Value) Float64In(lo, hi float64) (float64, error) {
	f, err := v.Float64()
	if err != nil {
		return 0, err
	}
	if lo <= hi && (f < lo || f > hi) {
		return 0, &FloatRangeError{newValueError(v, "bad float range"), lo, hi}
	}
	return f, nil
}

// StringBytes returns the decoded contents of a TypeString value as a view
// into the document buffer. The buffer byte immediately after the slice is
// always 0.
func (v *Value) StringBytes() ([]byte, error) {
	if v.kind != TypeString {
		return nil, badType(v, TypeString)
	}
	return v.s, nil
}

// Str returns the decoded contents of a TypeString value as a string
// sharing the document buffer.
func (v *Value) Str() (string, error) {
	b, err := v.StringBytes()
	if err != nil {
		return "", err
	}
	return viewString(b), nil
}

// EnumIndex locates the payload of a TypeString value in set by byte-exact
// comparison and returns its position, or an *EnumError if it matches no
// candidate.
func (v *Value) EnumIndex(set []string) (int, error) {
	b, err := v.StringBytes()
	if err != nil {
		return 0, err
	}
	got := mem.B(b)
	for i, s := range set {
		if got.Equal(mem.S(s)) {
			return i, nil
		}
	}
	return 0, &EnumError{newValueError(v, "unsupported value")}
}

// Array narrows v to an array view, marking v accessed.
func (v *Value) Array() (*Array, error) {
	if v.kind != TypeArray {
		return nil, badType(v, TypeArray)
	}
	return &Array{v.mark()}, nil
}

// Object narrows v to an object view, marking v accessed.
func (v *Value) Object() (*Object, error) {
	if v.kind != TypeObject {
		return nil, badType(v, TypeObject)
	}
	return &Object{v.mark()}, nil
}

// at returns the i-th child of container v, marked as accessed.
func at(v *Value, i int) (*Value, error) {
	if i < 0 || i >= len(v.items) {
		return nil, &IndexError{newValueError(v, "index out of range"), i, len(v.items)}
	}
	return v.items[i].mark(), nil
}

// An Array is the narrowed view of a TypeArray value. Its typed getters
// delegate through At, so every element they return is marked accessed.
type Array struct{ val *Value }

// Len reports the number of elements.
func (a *Array) Len() int { return len(a.val.items) }

// At returns the element at position i, marking it accessed.
func (a *Array) At(i int) (*Value, error) { return at(a.val, i) }

// Bool returns the Boolean element at position i.
func (a *Array) Bool(i int) (bool, error) {
	v, err := a.At(i)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// Int32 returns the integer element at position i checked against [lo, hi].
func (a *Array) Int32(i int, lo, hi int32) (int32, error) {
	v, err := a.At(i)
	if err != nil {
		return 0, err
	}
	return v.Int32In(lo, hi)
}

// Int64 returns the integer element at position i checked against [lo, hi].
func (a *Array) Int64(i int, lo, hi int64) (int64, error) {
	v, err := a.At(i)
	if err != nil {
		return 0, err
	}
	return v.Int64In(lo, hi)
}

// Float64 returns the numeric element at position i checked against [lo, hi].
func (a *Array) Float64(i int, lo, hi float64) (float64, error) {
	v, err := a.At(i)
	if err != nil {
		return 0, err
	}
	return v.Float64In(lo, hi)
}

// Str returns the string element at position i.
func (a *Array) Str(i int) (string, error) {
	v, err := a.At(i)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// Array returns the array element at position i.
func (a *Array) Array(i int) (*Array, error) {
	v, err := a.At(i)
	if err != nil {
		return nil, err
	}
	return v.Array()
}

// Object returns the object element at position i.
func (a *Array) Object(i int) (*Object, error) {
	v, err := a.At(i)
	if err != nil {
		return nil, err
	}
	return v.Object()
}

// An Object is the narrowed view of a TypeObject value. Members are looked
// up by byte-exact name in constant time; insertion order is preserved for
// positional access.
type Object struct{ val *Value }

// Len reports the number of members.
func (o *Object) Len() int { return len(o.val.items) }

// At returns the member value at position i, marking it accessed. Combined
// with Value.Name it enumerates the member names.
func (o *Object) At(i int) (*Value, error) { return at(o.val, i) }

// Find reports the position of the named member, or -1. It does not mark
// the member accessed.
func (o *Object) Find(name string) int {
	if i, ok := o.val.index[name]; ok {
		return i
	}
	return -1
}

// Lookup returns the named member marked as accessed, or nil if there is no
// such member.
func (o *Object) Lookup(name string) *Value {
	if i, ok := o.val.index[name]; ok {
		return o.val.items[i].mark()
	}
	return nil
}

// Member returns the named member marked as accessed, or a *NotFoundError.
func (o *Object) Member(name string) (*Value, error) {
	if v := o.Lookup(name); v != nil {
		return v, nil
	}
	return nil, &NotFoundError{ValueError{
		Line: o.val.line, Name: name, Index: -1, message: "member not found",
	}}
}

// Bool returns the named Boolean member.
func (o *Object) Bool(name string) (bool, error) {
	v, err := o.Member(name)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

// BoolOr is Bool, returning def without error when the member is absent.
func (o *Object) BoolOr(name string, def bool) (bool, error) {
	v := o.Lookup(name)
	if v == nil {
		return def, nil
	}
	return v.Bool()
}

// Int64 returns the named integer member checked against [lo, hi].
func (o *Object) Int64(name string, lo, hi int64) (int64, error) {
	v, err := o.Member(name)
	if err != nil {
		return 0, err
	}
	return v.Int64In(lo, hi)
}

// Int64Or is Int64, returning def without error when the member is absent.
func (o *Object) Int64Or(name string, lo, hi, def int64) (int64, error) {
	v := o.Lookup(name)
	if v == nil {
		return def, nil
	}
	return v.Int64In(lo, hi)
}

// Int32 returns the named integer member checked against [lo, hi].
func (o *Object) Int32(name string, lo, hi int32) (int32, error) {
	v, err := o.Member(name)
	if err != nil {
		return 0, err
	}
	return v.Int32In(lo, hi)
}

// Int32Or is Int32, returning def without error when the member is absent.
func (o *Object) Int32Or(name string, lo, hi, def int32) (int32, error) {
	v := o.Lookup(name)
	if v == nil {
		return def, nil
	}
	return v.Int32In(lo, hi)
}

// Float64 returns the named numeric member checked against [lo, hi].
func (o *Object) Float64(name string, lo, hi float64) (float64, error) {
	v, err := o.Member(name)
	if err != nil {
		return 0, err
	}
	return v.Float64In(lo, hi)
}

// Float64Or is Float64, returning def without error when the member is
// absent.
func (o *Object) Float64Or(name string, lo, hi, def float64) (float64, error) {
	v := o.Lookup(name)
	if v == nil {
		return def, nil
	}
	return v.Float64In(lo, hi)
}

// Str returns the named string member.
func (o *Object) Str(name string) (string, error) {
	v, err := o.Member(name)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// StrOr is Str, returning def without error when the member is absent.
func (o *Object) StrOr(name, def string) (string, error) {
	v := o.Lookup(name)
	if v == nil {
		return def, nil
	}
	return v.Str()
}

// Array returns the named array member narrowed to a view.
func (o *Object) Array(name string) (*Array, error) {
	v, err := o.Member(name)
	if err != nil {
		return nil, err
	}
	return v.Array()
}

// Object returns the named object member narrowed to a view.
func (o *Object) Object(name string) (*Object, error) {
	v, err := o.Member(name)
	if err != nil {
		return nil, err
	}
	return v.Object()
}

// EnumIndex locates the named string member in set and returns its
// position.
func (o *Object) EnumIndex(name string, set []string) (int, error) {
	v, err := o.Member(name)
	if err != nil {
		return 0, err
	}
	return v.EnumIndex(set)
}

// Enum maps the named string member through the parallel names and values
// sets: a member equal to names[i] yields values[i]. It panics if the sets
// differ in length.
func Enum[T any](o *Object, name string, names []string, values []T) (T, error) {
	checkEnumSets(len(names), len(values))
	var zero T
	v, err := o.Member(name)
	if err != nil {
		return zero, err
	}
	i, err := v.EnumIndex(names)
	if err != nil {
		return zero, err
	}
	return values[i], nil
}

// EnumOr is Enum, returning def without error when the member is absent.
func EnumOr[T any](o *Object, name string, names []string, values []T, def T) (T, error) {
	checkEnumSets(len(names), len(values))
	v := o.Lookup(name)
	if v == nil {
		return def, nil
	}
	i, err := v.EnumIndex(names)
	if err != nil {
		var zero T
		return zero, err
	}
	return values[i], nil
}

func checkEnumSets(names, values int) {
	if names != values {
		panic("jconf: enum name and value sets differ in length")
	}
}
