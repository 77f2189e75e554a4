// Package iniformat reads and writes the loose textual form of config assets.
//
// A file is a list of [Section] headers followed by key=value lines. A sigil
// in front of the key selects the merge action of the value:
//
//	+Key=value   AddUnique
//	.Key=value   Add
//	-Key=value   Remove
//	!Key=        RemoveProperty
//	Key=value    New
//
// Values of a repeated key keep their file order, so a delta that removes a
// value and then adds it back behaves exactly as written.
package iniformat
