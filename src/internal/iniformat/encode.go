package iniformat

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/m3tools/m3cd/src/internal/coalesced"
)

// Encoding selects the text encoding written by Encode.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF16LE Encoding = "utf-16le"
)

// Encodings lists the supported output encodings.
func Encodings() []Encoding {
	return []Encoding{EncodingUTF8, EncodingUTF16LE}
}

// Encode writes asset to w. UTF-16 output starts with a byte order mark.
//
// Values are grouped by property: each property is written where its first
// value appeared, followed by all of its values in order. Comment and blank
// lines kept by Decode are written before the header or property they were
// attached to.
func Encode(w io.Writer, asset *coalesced.ConfigAsset, enc Encoding) error {
	switch enc {
	case EncodingUTF8, "":
		return encodeText(w, asset)
	case EncodingUTF16LE:
		tw := transform.NewWriter(w, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
		if err := encodeText(tw, asset); err != nil {
			return err
		}
		return tw.Close()
	default:
		return fmt.Errorf("unsupported encoding: %s", enc)
	}
}

func encodeText(w io.Writer, asset *coalesced.ConfigAsset) error {
	bw := bufio.NewWriter(w)

	for i, section := range asset.Sections() {
		if i > 0 && len(section.Comments) == 0 {
			bw.WriteString("\n")
		}
		writeLines(bw, section.Comments)
		fmt.Fprintf(bw, "[%s]\n", section.Name)
		for _, property := range section.Properties() {
			if len(property.Values) > 0 {
				writeLines(bw, property.Comments)
			}
			for _, v := range property.Values {
				sigil, err := Sigil(v.Action)
				if err != nil {
					return fmt.Errorf("[%s] %s: %w", section.Name, property.Name, err)
				}
				fmt.Fprintf(bw, "%s%s=%s\n", sigil, property.Name, v.Value)
			}
		}
	}

	writeLines(bw, asset.Trailer)

	return bw.Flush()
}

func writeLines(bw *bufio.Writer, lines []string) {
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteString("\n")
	}
}
