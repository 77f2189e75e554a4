package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/iniformat"
)

// FileDiff is the textual change of one config file.
type FileDiff struct {
	Asset   string `json:"asset"`
	Diff    string `json:"diff"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
}

// Diff returns a line diff of before and after, with "---"/"+++" headers
// naming path when it is not empty, and the number of added and deleted lines.
// Identical inputs produce an empty diff.
func Diff(before, after, path string) (string, int, int) {
	if before == after {
		return "", 0, 0
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var builder strings.Builder
	if path != "" {
		builder.WriteString(fmt.Sprintf("--- %s\n", path))
		builder.WriteString(fmt.Sprintf("+++ %s\n", path))
	}

	added, deleted := 0, 0
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				added++
			case diffmatchpatch.DiffDelete:
				deleted++
			}
			builder.WriteString(prefix)
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}

	return builder.String(), added, deleted
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// AssetDiff diffs the ini rendering of two versions of an asset. Either may
// be nil, standing for a file that does not exist.
func AssetDiff(name string, before, after *coalesced.ConfigAsset) (FileDiff, error) {
	beforeText, err := render(before)
	if err != nil {
		return FileDiff{}, err
	}
	afterText, err := render(after)
	if err != nil {
		return FileDiff{}, err
	}

	text, added, deleted := Diff(beforeText, afterText, name)
	return FileDiff{Asset: name, Diff: text, Added: added, Deleted: deleted}, nil
}

// BundleDiffs diffs every asset of after that is listed in names against
// its counterpart in before.
func BundleDiffs(before, after *coalesced.AssetBundle, names []string) ([]FileDiff, error) {
	var out []FileDiff
	for _, name := range names {
		newAsset, _ := after.Asset(name)
		oldAsset, _ := before.Asset(name)
		d, err := AssetDiff(name, oldAsset, newAsset)
		if err != nil {
			return nil, err
		}
		if d.Diff != "" {
			out = append(out, d)
		}
	}
	return out, nil
}

func render(asset *coalesced.ConfigAsset) (string, error) {
	if asset == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := iniformat.Encode(&buf, asset, iniformat.EncodingUTF8); err != nil {
		return "", err
	}
	return buf.String(), nil
}
