// Package hashing fingerprints config asset content with MD5.
//
// Fingerprints are taken while assets are read from disk and again while
// they are encoded for a commit, so unchanged files are never rewritten.
//
//	proxy := hashing.NewMD5ReaderProxy(file)
//	asset, _ := iniformat.Decode(name, proxy)
//	sum, _ := proxy.GetChecksum()
//	fingerprints.Put(name, sum)
//
// ChecksumWriterProxy does the same for an io.Writer, and FingerprintSet keeps
// the last known checksum of each asset by case-insensitive name.
package hashing
