// Package coalesced models the config assets of one game installation and
// merges config deltas into them.
//
// # Data Model
//
// An AssetBundle owns named ConfigAssets (one per config file, e.g.
// "BIOGame.ini"). An asset owns named ConfigSections, and a section owns
// ConfigProperties. A property holds an ordered list of ConfigValues, each
// carrying the ParseAction that produced it. Every name lookup is
// case-insensitive and every collection keeps insertion order.
//
// # Merging
//
// A delta is itself a ConfigAsset whose section names are composites of the
// form "<asset> <section>", for example "BIOGame.ini SFXGame.BioWorldInfo".
// PerformMerge applies every delta value, in order, to the matching target
// section:
//
//	New             replace all values of the property
//	Add             append the value
//	AddUnique       append the value unless an equal value exists
//	RemoveProperty  delete the property
//	Remove          delete every value equal to the delta value
//
// For LE1, values written by New and AddUnique are typed as Add. Deltas that
// target an asset the bundle does not have are skipped, as are values with an
// action the engine does not know; neither is an error.
//
// # Concurrency
//
// Nothing in this package is synchronized. A bundle must have a single writer
// for the duration of a merge pass.
package coalesced
