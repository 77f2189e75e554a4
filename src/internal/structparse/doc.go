// Package structparse splits struct-valued config entries into key/value pairs.
//
// Config values in coalesced bundles often carry a composite value written in
// a bracketed syntax:
//
//	(Key=Value, Key2=(Nested=1, Other=2))
//
// Parse scans one such string and returns its top-level entries. Keys are
// matched case-insensitively and may repeat; every occurrence is kept in
// encounter order. Nested values are returned verbatim, delimiters included.
// The parser never recurses on its own: whether a value is itself a struct
// is up to the caller, who can re-apply Parse (or use Struct.Nested).
//
// # Delimiters
//
// Callers choose the delimiter pair, usually '(' and ')' or '[' and ']'.
// Delimiters are counted, not interpreted: a value is split only where the
// nesting depth is zero. Text between double quotes is taken literally.
//
// # Errors
//
// A string with unbalanced delimiters, an entry without '=', or anything but
// a single ';' after the closing delimiter is rejected with an error that
// matches errors.ErrMalformedStruct and quotes the input.
//
// # Example Usage
//
//	s, err := structparse.ParseParens(`(Option=A, Option=B, Pos=(X=1,Y=2))`)
//	if err != nil {
//	    return err
//	}
//	s.Get("option")     // ["A", "B"]
//	pos, _ := s.Nested("Pos", '(', ')')
//	pos.First("X")      // "1", true
package structparse
