// Package report renders merge results for people: unified-style line diffs
// of changed config files and spreadsheet dumps of whole bundles.
package report
