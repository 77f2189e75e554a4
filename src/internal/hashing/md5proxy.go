package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"sync"

	"github.com/m3tools/m3cd/src/internal/utils"
)

type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy is a proxy that calculates the MD5 checksum of data as it's read.
type ChecksumReaderProxy struct {
	reader      io.Reader
	checksum    hash.Hash
	checksumErr error
}

// NewMD5ReaderProxy creates a new instance of ChecksumReaderProxy.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads from the underlying reader and feeds the bytes to the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		if _, checksumErr := p.checksum.Write(buf[:n]); checksumErr != nil {
			p.checksumErr = checksumErr
			return n, checksumErr
		}
	}
	return n, err
}

// GetChecksum returns the calculated MD5 checksum as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	if p.checksumErr == nil {
		return hex.EncodeToString(p.checksum.Sum(nil)), nil
	}
	return "", p.checksumErr
}

// ChecksumWriterProxy calculates the MD5 checksum of data as it's written.
// A nil writer only computes the checksum.
type ChecksumWriterProxy struct {
	writer      io.Writer
	checksum    hash.Hash
	checksumErr error
}

func NewMD5WriterProxy(writer io.Writer) *ChecksumWriterProxy {
	return &ChecksumWriterProxy{
		writer:   writer,
		checksum: md5.New(),
	}
}

func (p *ChecksumWriterProxy) Write(buf []byte) (int, error) {
	if _, err := p.checksum.Write(buf); err != nil {
		p.checksumErr = err
		return 0, err
	}
	if p.writer == nil {
		return len(buf), nil
	}
	return p.writer.Write(buf)
}

func (p *ChecksumWriterProxy) GetChecksum() (string, error) {
	if p.checksumErr == nil {
		return hex.EncodeToString(p.checksum.Sum(nil)), nil
	}
	return "", p.checksumErr
}

// Sum returns the hex MD5 checksum of data.
func Sum(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintSet maps asset names to their last known checksum.
// Names are compared without regard to case. It is safe for concurrent use.
type FingerprintSet struct {
	mu   sync.RWMutex
	sums *utils.OrderedMap[string]
}

func NewFingerprintSet() *FingerprintSet {
	return &FingerprintSet{sums: utils.NewOrderedMap[string]()}
}

// Put records the checksum of name.
func (s *FingerprintSet) Put(name, checksum string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sums.Set(name, checksum)
}

// Get returns the recorded checksum of name.
func (s *FingerprintSet) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sums.Get(name)
}

// Matches reports whether checksum equals the recorded checksum of name.
func (s *FingerprintSet) Matches(name, checksum string) bool {
	known, ok := s.Get(name)
	return ok && known == checksum
}

func (s *FingerprintSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sums.Len()
}
