package iniformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/errors"
)

const maxLineLength = 1024 * 1024

// Decode reads one config asset named name from r.
//
// The input may be UTF-8, with or without a byte order mark, or UTF-16 with a
// byte order mark. Comment and blank lines are kept with the section header
// or property that follows them, so Encode writes them back.
func Decode(name string, r io.Reader) (*coalesced.ConfigAsset, error) {
	asset := coalesced.NewConfigAsset(name)

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var section *coalesced.ConfigSection
	var pending []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), " \t\r")
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == ';' || line[0] == '#' {
			pending = append(pending, raw)
			continue
		}

		if line[0] == '[' {
			if line[len(line)-1] != ']' {
				return nil, lineError(name, lineNo, "unterminated section header")
			}
			sectionName := strings.TrimSpace(line[1 : len(line)-1])
			if sectionName == "" {
				return nil, lineError(name, lineNo, "empty section name")
			}
			var created bool
			section, created = asset.GetOrAddSection(sectionName)
			if created {
				section.Comments, pending = pending, nil
			}
			// A repeated header keeps its comments for the next property.
			continue
		}

		if section == nil {
			return nil, lineError(name, lineNo, "value outside of any section")
		}

		rawKey, value, found := strings.Cut(line, "=")
		if !found {
			return nil, lineError(name, lineNo, fmt.Sprintf("expected key=value, got %q", line))
		}
		key, action := splitSigil(strings.TrimSpace(rawKey))
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, lineError(name, lineNo, "empty key")
		}

		property := section.GetOrAddProperty(key)
		if len(pending) > 0 {
			property.Comments, pending = append(property.Comments, pending...), nil
		}
		property.Add(coalesced.NewValue(strings.TrimSpace(value), action))
	}
	asset.Trailer = pending
	if err := scanner.Err(); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("failed to read %s", name), err)
	}

	return asset, nil
}

// DecodeDelta reads a delta asset. Every section of a delta must be named
// "<asset> <section>".
func DecodeDelta(name string, r io.Reader) (*coalesced.ConfigAsset, error) {
	asset, err := Decode(name, r)
	if err != nil {
		return nil, errors.NewDeltaError(fmt.Sprintf("failed to decode delta %s", name), err)
	}

	for _, section := range asset.Sections() {
		if _, _, ok := coalesced.SplitDeltaSectionName(section.Name); !ok {
			return nil, errors.NewDeltaError(
				fmt.Sprintf("delta %s: section [%s] must be named \"<file> <section>\"", name, section.Name), nil)
		}
	}

	return asset, nil
}

func lineError(name string, lineNo int, reason string) error {
	return errors.New(errors.ErrCodeValidation, fmt.Sprintf("%s:%d: %s", name, lineNo, reason))
}
