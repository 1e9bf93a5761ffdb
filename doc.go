// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jconf implements a strict parser and a typed accessor layer for a
// JSON-based configuration dialect.
//
// The dialect is a proper subset of JSON extended with "//" line comments and
// tolerance of CR, LF, and CRLF line endings. All other JSON rules are
// enforced strictly: trailing commas, unquoted keys, single-quoted strings,
// and duplicate object members are rejected.
//
// # Parsing
//
// A Document owns a parsed tree and (for Parse) its backing buffer.  Parse
// copies its input; ParseInPlace decodes directly inside the caller's buffer,
// which must stay alive and unmodified until the Document is cleared:
//
//	var doc jconf.Document
//	root, err := doc.Parse(data)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parsing is single-pass and destructive: string escape sequences are decoded
// in place, so string values are zero-copy views into the buffer.  Every
// value records the 1-based line number of the token that produced it, and
// errors of type *SyntaxError carry that line for the operator.
//
// # Reading values
//
// Typed accessors narrow a Value with a runtime check and an optional range
// or enumeration constraint:
//
//	obj, err := root.Object()
//	port, err := obj.Int32("port", 1, 65535)
//	mode, err := jconf.Enum(obj, "mode",
//	   []string{"slow", "fast", "auto"},
//	   []Mode{Slow, Fast, Auto})
//
// Failed lookups report errors carrying the line, member name or index, and
// the actual and expected types; dispatch on them with errors.As.
//
// # Access tracking
//
// Every accessor that returns a value marks it as accessed.  After reading a
// configuration, call RejectUnknown on the root to fail on any object member
// the program never looked at; this turns the sequence of reads itself into
// the schema.  Use IgnoreAll to exempt a subtree that is intentionally open:
//
//	if err := root.RejectUnknown(); err != nil {
//	   log.Fatalf("Config: %v", err)
//	}
package jconf
