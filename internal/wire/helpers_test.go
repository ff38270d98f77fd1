package wire

import "io"

// newBlockingReader returns an io.Reader that never yields data, for
// exercising timeout paths. The paired writer is returned so callers that
// want to unblock it later may do so; most timeout tests simply let it
// leak for the life of the test process.
func newBlockingReader() (io.Reader, io.WriteCloser) {
	pr, pw := io.Pipe()
	return pr, pw
}
