package utils

import (
	"io"

	"github.com/m3tools/m3cd/src/internal/log"
)

// CloseOrWarn closes a file opened for reading; a failure is only logged.
func CloseOrWarn(file io.Closer) {
	if err := file.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}

// CloseInto closes a file opened for writing and stores the close error in
// *err unless an earlier error is already there. Use it with a named result:
//
//	defer utils.CloseInto(f, &err)
func CloseInto(file io.Closer, err *error) {
	if cerr := file.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
