// Package utils provides small helpers shared across m3cd.
//
//   - OrderedMap: case-insensitive map that keeps insertion order, used for
//     config files, sections and properties
//   - FoldKey: the case folding behind every name comparison
//   - GetAbsolutePath: resolve job-relative paths
//   - CloseOrWarn and CloseInto: close files without dropping errors
//
// Example:
//
//	sections := utils.NewOrderedMap[*Section]()
//	sections.Set("SFXGame.BioWorldInfo", s)
//	_, ok := sections.Get("sfxgame.bioworldinfo") // ok == true
package utils
