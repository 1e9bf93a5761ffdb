// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jconf

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/creachadair/jconf/internal/escape"

	"go4.org/mem"
)

// A parser decodes a single document from buf, mutating buf in place: string
// escape sequences are rewritten as UTF-8 and a NUL terminator is written
// right after each decoded string (over its closing quote, or earlier when
// escapes shortened it), so decoded strings are views into buf. Grammar
// violations are reported by panicking with *SyntaxError; parse converts the
// panic back into an error for the caller.
type parser struct {
	buf  []byte
	pos  int
	line int // 1-based
}

// parse consumes one value followed only by whitespace and comments.
func (p *parser) parse() (v *Value, err error) {
	defer func() {
		if serr := recover(); serr != nil {
			perr, ok := serr.(*SyntaxError)
			if !ok {
				panic(serr)
			}
			v, err = nil, perr
		}
	}()
	v = p.parseValue(nil)
	p.skipSpace()
	if p.pos < len(p.buf) {
		p.failf("invalid value syntax")
	}
	return v, nil
}

func (p *parser) failf(msg string, args ...any) {
	if len(args) != 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	panic(&SyntaxError{Line: p.line, Message: msg})
}

// newValue appends a fresh value to parent, or creates the root when parent
// is nil. The value records the current line.
func (p *parser) newValue(parent *Value) *Value {
	v := &Value{line: p.line, idx: -1}
	if parent != nil {
		v.idx = len(parent.items)
		parent.items = append(parent.items, v)
	}
	return v
}

func (p *parser) parseValue(parent *Value) *Value {
	p.skipSpace()
	if p.pos >= len(p.buf) {
		p.failf("invalid syntax")
	}
	switch p.buf[p.pos] {
	case '{':
		return p.parseObject(parent)
	case '[':
		return p.parseArray(parent)
	case '"':
		s, _ := p.parseString()
		v := p.newValue(parent)
		v.kind = TypeString
		v.s = s
		return v
	case 'n':
		if p.skipText("null") {
			v := p.newValue(parent)
			v.kind = TypeNull
			return v
		}
	case 't':
		if p.skipText("true") {
			v := p.newValue(parent)
			v.kind = TypeBool
			v.b = true
			return v
		}
	case 'f':
		if p.skipText("false") {
			v := p.newValue(parent)
			v.kind = TypeBool
			return v
		}
	default:
		if c := p.buf[p.pos]; c == '-' || isDigit(c) {
			return p.parseNumber(parent)
		}
	}
	p.failf("invalid syntax")
	return nil
}

func (p *parser) parseObject(parent *Value) *Value {
	p.pos++ // consume "{"
	obj := p.newValue(parent)
	obj.kind = TypeObject
	obj.index = make(map[string]int)
	p.skipSpace()
	if p.skipText("}") {
		return obj
	}
	for {
		p.skipSpace()
		name, ok := p.parseString()
		if !ok {
			p.failf("invalid object syntax: expected member name or '}'")
		}
		key := viewString(name)
		if _, dup := obj.index[key]; dup {
			p.failf("invalid object syntax: duplicate member name")
		}
		p.skipSpace()
		if !p.skipText(":") {
			p.failf("invalid object syntax: expected ':' after member name")
		}
		// Record the member's position and name before descending, so the
		// value is addressable while its subtree parses.
		obj.index[key] = len(obj.items)
		v := p.parseValue(obj)
		v.name = key
		p.skipSpace()
		if p.skipText("}") {
			return obj
		}
		if !p.skipText(",") {
			p.failf("invalid object syntax: expected ',' or '}'")
		}
		p.skipSpace()
		if p.pos < len(p.buf) && p.buf[p.pos] == '}' {
			p.failf("invalid object syntax: trailing ',' before '}'")
		}
	}
}

func (p *parser) parseArray(parent *Value) *Value {
	p.pos++ // consume "["
	arr := p.newValue(parent)
	arr.kind = TypeArray
	p.skipSpace()
	if p.skipText("]") {
		return arr
	}
	for {
		p.parseValue(arr)
		p.skipSpace()
		if p.skipText("]") {
			return arr
		}
		if !p.skipText(",") {
			p.failf("invalid array syntax: expected ',' or ']'")
		}
		p.skipSpace()
		if p.pos < len(p.buf) && p.buf[p.pos] == ']' {
			p.failf("invalid array syntax: trailing ',' before ']'")
		}
	}
}

// intCutoff is the most negative int64 prefix that can still take another
// digit. Integers accumulate in negative form so the minimum int64 is
// representable.
const intCutoff = -922337203685477580

func (p *parser) parseNumber(parent *Value) *Value {
	start := p.pos
	pos := p.pos
	neg := false
	if p.buf[pos] == '-' {
		neg = true
		pos++
	}
	numStart := pos
	for pos < len(p.buf) && isDigit(p.buf[pos]) {
		pos++
	}
	if pos == numStart {
		p.failf("invalid number syntax: no digits after '-'")
	}
	if p.buf[numStart] == '0' && pos-numStart > 1 {
		p.failf("invalid number syntax: can't start with '0' if followed by another digit")
	}
	isFloat := false
	if pos < len(p.buf) && p.buf[pos] == '.' {
		isFloat = true
		pos++
		for pos < len(p.buf) && isDigit(p.buf[pos]) {
			pos++
		}
	}
	if pos < len(p.buf) && (p.buf[pos] == 'e' || p.buf[pos] == 'E') {
		isFloat = true
		pos++
		if pos < len(p.buf) && (p.buf[pos] == '+' || p.buf[pos] == '-') {
			pos++
		}
		for pos < len(p.buf) && isDigit(p.buf[pos]) {
			pos++
		}
	}

	var v *Value
	if isFloat {
		f, err := strconv.ParseFloat(viewString(p.buf[start:pos]), 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				p.failf("invalid number syntax: float is too huge")
			}
			p.failf("invalid number syntax: bad float format")
		}
		v = p.newValue(parent)
		v.kind = TypeFloat
		v.f = f
	} else {
		limit := int64(7)
		if neg {
			limit = 8
		}
		var n int64
		for _, c := range p.buf[numStart:pos] {
			d := int64(c - '0')
			if n < intCutoff || (n == intCutoff && d > limit) {
				p.failf("invalid number syntax: integer doesn't fit in 64 bits")
			}
			n = n*10 - d
		}
		if !neg {
			n = -n
		}
		v = p.newValue(parent)
		v.kind = TypeInt
		v.n = n
	}
	p.pos = pos
	return v
}

// parseString consumes a quoted string, decoding its escapes in place, and
// returns the contents as a view into the buffer followed by a NUL byte. It
// reports false without consuming anything if the next byte is not a quote.
func (p *parser) parseString() ([]byte, bool) {
	if p.pos >= len(p.buf) || p.buf[p.pos] != '"' {
		return nil, false
	}
	p.pos++
	start := p.pos
	w := p.pos // write cursor; never overtakes the read cursor
	for {
		if p.pos >= len(p.buf) {
			p.failf("invalid string syntax: line ending before closing quotes")
		}
		c := p.buf[p.pos]
		p.pos++
		if c == '"' {
			p.buf[w] = 0 // terminate over the closing quote, or earlier
			return p.buf[start:w], true
		}
		if c == '\r' || c == '\n' {
			p.failf("invalid string syntax: line ending before closing quotes")
		}
		if c < 0x20 {
			p.failf("invalid string syntax: control characters not allowed")
		}
		if c == '\\' {
			if p.pos >= len(p.buf) {
				p.failf("invalid string syntax: bad escape character")
			}
			e := p.buf[p.pos]
			p.pos++
			switch e {
			case '\\':
				c = '\\'
			case '/':
				c = '/'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'u':
				w = p.parseEscapeRune(w)
				continue
			default:
				p.pos--
				p.failf("invalid string syntax: bad escape character")
			}
		}
		p.buf[w] = c
		w++
	}
}

// parseEscapeRune decodes a \u escape, combining a surrogate pair if one is
// present, writes the UTF-8 encoding at w, and returns the new write
// position. Every escape form consumes at least as many source bytes as it
// produces (a pair spans 12 source bytes for at most 4 output bytes), so the
// write cursor cannot overtake the read cursor.
func (p *parser) parseEscapeRune(w int) int {
	code := p.parseHex4()
	if escape.IsLowSurrogate(code) {
		p.failBadUTF() // orphan low surrogate
	}
	if escape.IsHighSurrogate(code) {
		if !p.skipText(`\u`) {
			p.failBadUTF() // low surrogate not specified
		}
		low := p.parseHex4()
		if !escape.IsLowSurrogate(low) {
			p.failBadUTF() // invalid low surrogate
		}
		code = escape.Combine(code, low)
	}
	return w + utf8.EncodeRune(p.buf[w:], rune(code))
}

func (p *parser) parseHex4() uint32 {
	if p.pos+4 > len(p.buf) {
		p.failBadUTF()
	}
	code, err := escape.Hex4(mem.B(p.buf[p.pos : p.pos+4]))
	if err != nil {
		p.failBadUTF()
	}
	p.pos += 4
	return code
}

func (p *parser) failBadUTF() {
	p.failf("invalid string syntax: bad utf-16 codepoint")
}

// skipText consumes text if it prefixes the remaining input.
func (p *parser) skipText(text string) bool {
	if !mem.HasPrefix(mem.B(p.buf[p.pos:]), mem.S(text)) {
		return false
	}
	p.pos += len(text)
	return true
}

// skipSpace consumes spaces, tabs, line endings, and "//" comments,
// advancing the line counter on every CR, LF, or CRLF pair.
func (p *parser) skipSpace() {
	for p.pos < len(p.buf) {
		switch c := p.buf[p.pos]; {
		case c == ' ' || c == '\t':
			p.pos++
		case c == '\r' || c == '\n':
			p.skipToEOL()
		case c == '/' && p.pos+1 < len(p.buf) && p.buf[p.pos+1] == '/':
			p.skipToEOL()
		default:
			return
		}
	}
}

// skipToEOL consumes input through the next line ending, counting a CRLF
// pair as a single new line.
func (p *parser) skipToEOL() {
	for p.pos < len(p.buf) {
		c := p.buf[p.pos]
		p.pos++
		if c == '\r' {
			p.line++
			if p.pos < len(p.buf) && p.buf[p.pos] == '\n' {
				p.pos++
			}
			return
		}
		if c == '\n' {
			p.line++
			return
		}
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// viewString returns b as a string sharing its backing bytes. Member names,
// map keys, and string payloads use it to stay bound to the document buffer
// without copying.
func viewString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
