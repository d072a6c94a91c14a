package store

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ssargent/objlog/pkg/codec"
)

// FrameWriter appends [payload][checksum] frames to a sink
type FrameWriter struct {
	codec      codec.Codec
	bufferSize int
	fsync      bool
}

// NewFrameWriter creates a frame writer. A bufferSize of 0 selects
// DefaultBufferSize.
func NewFrameWriter(c codec.Codec, bufferSize int, fsync bool) *FrameWriter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &FrameWriter{codec: c, bufferSize: bufferSize, fsync: fsync}
}

type syncer interface {
	Sync() error
}

// EncodeFrame returns the payload and encoded checksum for record
func (w *FrameWriter) EncodeFrame(record any) (payload, sum []byte, err error) {
	payload, err = w.codec.Encode(record)
	if err != nil {
		return nil, nil, err
	}

	sum, err = w.codec.Encode(codec.Checksum(payload))
	if err != nil {
		return nil, nil, err
	}
	return payload, sum, nil
}

// Append writes one frame to dst and flushes it before returning. If fsync
// is enabled and dst can Sync, it is synced too. Returns the number of bytes
// appended.
func (w *FrameWriter) Append(dst io.Writer, record any) (int, error) {
	payload, sum, err := w.EncodeFrame(record)
	if err != nil {
		return 0, fmt.Errorf("failed to encode frame: %w", err)
	}

	bw := bufio.NewWriterSize(dst, w.bufferSize)
	if _, err := bw.Write(payload); err != nil {
		return 0, fmt.Errorf("failed to write frame: %w", err)
	}
	if _, err := bw.Write(sum); err != nil {
		return 0, fmt.Errorf("failed to write frame: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write frame: %w", err)
	}

	if w.fsync {
		if s, ok := dst.(syncer); ok {
			if err := s.Sync(); err != nil {
				return 0, fmt.Errorf("failed to sync frame: %w", err)
			}
		}
	}

	return len(payload) + len(sum), nil
}
