// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jconf

// A Document owns a parsed value tree and, after Parse, the buffer the
// tree's strings point into. The zero value is ready for use. A Document is
// not safe for concurrent use without external synchronization.
type Document struct {
	root *Value
	buf  []byte // owned copy made by Parse; nil after ParseInPlace
}

// Parse copies src into a buffer owned by d and parses it, replacing any
// previously parsed tree. On success it returns the root value, whose
// lifetime is bound to d. On error, d is left empty.
func (d *Document) Parse(src []byte) (*Value, error) {
	d.Clear()
	buf := append([]byte(nil), src...)
	root, err := d.parse(buf)
	if err != nil {
		return nil, err
	}
	d.buf = buf
	return root, nil
}

// ParseInPlace parses directly inside buf, decoding string values into it,
// and replaces any previously parsed tree. The caller must keep buf alive
// and unmodified for as long as the parsed tree is in use, and must not
// assume buf is preserved: the parse rewrites it. On error, d is left
// empty.
func (d *Document) ParseInPlace(buf []byte) (*Value, error) {
	d.Clear()
	return d.parse(buf)
}

func (d *Document) parse(buf []byte) (*Value, error) {
	p := &parser{buf: buf, line: 1}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	d.root = root
	return root, nil
}

// Root returns the root value of the most recent successful parse, or nil.
func (d *Document) Root() *Value { return d.root }

// Clear releases the parsed tree and any owned buffer, leaving d empty.
func (d *Document) Clear() { d.root, d.buf = nil, nil }
