// pkg/extract/io.go
package extract

import "io"

// sinkWriter counts the encoded bytes of one resource on their way to dst.
// A nil dst discards them, which is how dry runs measure output size.
type sinkWriter struct {
	dst     io.Writer
	written uint64
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	if s.dst == nil {
		s.written += uint64(len(p))
		return len(p), nil
	}
	n, err := s.dst.Write(p)
	s.written += uint64(n)
	return n, err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
