package structparse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m3tools/m3cd/src/internal/errors"
)

const (
	quoteChar     = '"'
	entrySep      = ','
	keyValueSep   = '='
	trailingToken = ";"
)

// ParseParens parses a struct delimited by '(' and ')'.
func ParseParens(input string) (*Struct, error) {
	return Parse(input, '(', ')')
}

// ParseBrackets parses a struct delimited by '[' and ']'.
func ParseBrackets(input string) (*Struct, error) {
	return Parse(input, '[', ']')
}

// Parse splits a struct string into its top-level entries.
//
// The first non-whitespace character must be open. Everything up to the
// matching close is the struct body; after it only whitespace and a single
// optional ';' may follow. Entries are split on ',' and then on the first '='
// at nesting depth zero. Keys and values are trimmed of surrounding whitespace.
func Parse(input string, open, close rune) (*Struct, error) {
	if err := checkDelimiters(open, close); err != nil {
		return nil, err
	}

	body, err := extractBody(input, open, close)
	if err != nil {
		return nil, err
	}

	s := newStruct()
	segments := splitTopLevel(body, entrySep, open, close)
	if len(segments) == 1 && strings.TrimSpace(segments[0]) == "" {
		return s, nil
	}

	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return nil, errors.NewMalformedStructError(input, "empty entry")
		}

		eq := indexTopLevel(segment, keyValueSep, open, close)
		if eq < 0 {
			return nil, errors.NewMalformedStructError(input, fmt.Sprintf("entry %q has no '='", strings.TrimSpace(segment)))
		}

		key := strings.TrimSpace(segment[:eq])
		if key == "" {
			return nil, errors.NewMalformedStructError(input, fmt.Sprintf("entry %q has an empty key", strings.TrimSpace(segment)))
		}

		s.add(key, strings.TrimSpace(segment[eq+1:]))
	}

	return s, nil
}

// SplitList splits a bracketed list value such as "(a, (b,c), d)" into its
// top-level elements. "()" yields an empty list.
func SplitList(input string, open, close rune) ([]string, error) {
	if err := checkDelimiters(open, close); err != nil {
		return nil, err
	}

	body, err := extractBody(input, open, close)
	if err != nil {
		return nil, err
	}

	segments := splitTopLevel(body, entrySep, open, close)
	if len(segments) == 1 && strings.TrimSpace(segments[0]) == "" {
		return []string{}, nil
	}

	items := make([]string, 0, len(segments))
	for _, segment := range segments {
		item := strings.TrimSpace(segment)
		if item == "" {
			return nil, errors.NewMalformedStructError(input, "empty list element")
		}
		items = append(items, item)
	}
	return items, nil
}

// IsStruct reports whether value has the outer shape of a struct: it starts
// with open and its delimiters balance with nothing but an optional ';' after
// the closing delimiter. It does not check the entries.
func IsStruct(value string, open, close rune) bool {
	if checkDelimiters(open, close) != nil {
		return false
	}
	_, err := extractBody(value, open, close)
	return err == nil
}

// Format builds a struct string from entries, in order. Keys and values are
// written verbatim, so Format(Parse(s).Entries()) reproduces s up to
// whitespace for well-formed input.
func Format(entries []KeyValue, open, close rune) string {
	var sb strings.Builder
	sb.WriteRune(open)
	for i, kv := range entries {
		if i > 0 {
			sb.WriteRune(entrySep)
		}
		sb.WriteString(kv.Key)
		sb.WriteRune(keyValueSep)
		sb.WriteString(kv.Value)
	}
	sb.WriteRune(close)
	return sb.String()
}

func checkDelimiters(open, close rune) error {
	if open == close {
		return errors.NewValidationError(fmt.Sprintf("open and close delimiters must differ, got %q", open), nil)
	}
	for _, r := range []rune{open, close} {
		if r == quoteChar || r == entrySep || r == keyValueSep || unicode.IsSpace(r) {
			return errors.NewValidationError(fmt.Sprintf("%q cannot be used as a struct delimiter", r), nil)
		}
	}
	return nil
}

// extractBody returns the text between the outermost open and its matching close.
func extractBody(input string, open, close rune) (string, error) {
	trimmed := strings.TrimLeftFunc(input, unicode.IsSpace)
	first, size := utf8.DecodeRuneInString(trimmed)
	if trimmed == "" || first != open {
		return "", errors.NewMalformedStructError(input, fmt.Sprintf("must start with %q", open))
	}

	depth := 0
	inQuote := false
	end := -1
scan:
	for i, r := range trimmed {
		if r == quoteChar {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		switch r {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}

	if inQuote {
		return "", errors.NewMalformedStructError(input, "unterminated quote")
	}
	if end < 0 {
		return "", errors.NewMalformedStructError(input, fmt.Sprintf("unbalanced delimiters, missing %q", close))
	}

	rest := strings.TrimSpace(trimmed[end+utf8.RuneLen(close):])
	if rest != "" && rest != trailingToken {
		return "", errors.NewMalformedStructError(input, fmt.Sprintf("unexpected content %q after closing delimiter", rest))
	}

	return trimmed[size:end], nil
}

// splitTopLevel splits s on sep wherever the nesting depth is zero and the
// position is outside quotes.
func splitTopLevel(s string, sep rune, open, close rune) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i, r := range s {
		switch {
		case r == quoteChar:
			inQuote = !inQuote
		case inQuote:
		case r == open:
			depth++
		case r == close:
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + utf8.RuneLen(sep)
		}
	}
	return append(parts, s[start:])
}

// indexTopLevel returns the byte index of the first sep at depth zero outside quotes, or -1.
func indexTopLevel(s string, sep rune, open, close rune) int {
	depth := 0
	inQuote := false
	for i, r := range s {
		switch {
		case r == quoteChar:
			inQuote = !inQuote
		case inQuote:
		case r == open:
			depth++
		case r == close:
			depth--
		case r == sep && depth == 0:
			return i
		}
	}
	return -1
}
