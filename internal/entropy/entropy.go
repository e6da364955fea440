// Package entropy provides the random byte capability salt generation
// depends on. Callers pass a Source explicitly, so tests can substitute a
// deterministic one.
package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrEntropy reports that the random source could not fill a buffer.
var ErrEntropy = errors.New("entropy source unavailable")

// Source fills buf entirely with random bytes or returns an error.
// Implementations must be safe for concurrent use.
type Source interface {
	Fill(buf []byte) error
}

// ReaderSource adapts an io.Reader. Short reads are errors.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource wraps r. r must be safe for concurrent use if the
// source is shared.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

func (s *ReaderSource) Fill(buf []byte) error {
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return nil
}

// System is the operating system's CSPRNG.
var System Source = NewReaderSource(rand.Reader)

// Bytes returns n bytes drawn from src.
func Bytes(src Source, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := src.Fill(buf); err != nil {
		if !errors.Is(err, ErrEntropy) {
			err = fmt.Errorf("%w: %v", ErrEntropy, err)
		}
		return nil, err
	}
	return buf, nil
}
