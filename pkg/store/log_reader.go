package store

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log/slog"

	"github.com/ssargent/objlog/pkg/codec"
)

// HaltReason says why a FrameReader stopped
type HaltReason int

const (
	// HaltNone means the reader has not stopped on its own (still running,
	// or closed early by the caller)
	HaltNone HaltReason = iota
	// HaltEnd is a clean end of data at a frame boundary
	HaltEnd
	// HaltTornPayload means the data ended part way through a payload
	HaltTornPayload
	// HaltMalformedPayload means the payload bytes do not decode
	HaltMalformedPayload
	// HaltMissingChecksum means the checksum after a payload is absent or unreadable
	HaltMissingChecksum
	// HaltChecksumMismatch means the stored checksum does not match the payload
	HaltChecksumMismatch
)

func (r HaltReason) String() string {
	switch r {
	case HaltNone:
		return "none"
	case HaltEnd:
		return "end"
	case HaltTornPayload:
		return "torn_payload"
	case HaltMalformedPayload:
		return "malformed_payload"
	case HaltMissingChecksum:
		return "missing_checksum"
	case HaltChecksumMismatch:
		return "checksum_mismatch"
	default:
		return "unknown"
	}
}

// Halt describes where and why a FrameReader stopped. It is diagnostic only;
// iteration never returns an error.
type Halt struct {
	Reason  HaltReason
	Offset  int64 // Start of the frame that stopped the reader; equals the valid byte count
	Records int   // Records yielded before stopping
	Err     error // Underlying decode error, if any
}

// Clean reports whether the reader stopped at a frame boundary with no
// corruption
func (h Halt) Clean() bool {
	return h.Reason == HaltEnd
}

type frameState int

const (
	stateReadingPayload frameState = iota
	stateReadingChecksum
	stateVerifying
	stateEmitting
	stateTerminated
)

// countingStream tracks how many bytes have been consumed from r
type countingStream struct {
	r *bufio.Reader
	n int64
}

func (s *countingStream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.n += int64(n)
	return n, err
}

func (s *countingStream) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err == nil {
		s.n++
	}
	return b, err
}

func (s *countingStream) UnreadByte() error {
	err := s.r.UnreadByte()
	if err == nil {
		s.n--
	}
	return err
}

// FrameReader lazily decodes verified records from a binary log. It stops
// for good at the first clean end, torn frame or checksum mismatch.
type FrameReader[T any] struct {
	closer io.Closer
	stream *countingStream
	codec  codec.Codec
	path   string
	logger *slog.Logger

	state   frameState
	pending T
	want    uint32
	got     uint32
	record  T
	start   int64
	records int
	halt    Halt
}

// NewFrameReader reads frames from r. closer, when non-nil, is closed once
// the reader terminates or Close is called.
func NewFrameReader[T any](r io.Reader, closer io.Closer, cfg LogConfig) *FrameReader[T] {
	cfg = cfg.withDefaults()
	return &FrameReader[T]{
		closer: closer,
		stream: &countingStream{r: bufio.NewReaderSize(r, cfg.BufferSize)},
		codec:  cfg.Codec,
		path:   cfg.FilePath,
		logger: cfg.Logger,
		state:  stateReadingPayload,
	}
}

// Next advances to the next verified record
func (fr *FrameReader[T]) Next() bool {
	for {
		switch fr.state {
		case stateReadingPayload:
			var zero T
			fr.record = zero
			fr.pending = zero
			fr.start = fr.stream.n

			if err := fr.codec.Decode(fr.stream, &fr.pending); err != nil {
				switch {
				case errors.Is(err, codec.ErrEndOfData):
					fr.terminate(HaltEnd, nil)
				case errors.Is(err, codec.ErrTruncated):
					fr.terminate(HaltTornPayload, err)
				default:
					fr.terminate(HaltMalformedPayload, err)
				}
				continue
			}

			// Hash the canonical encoding of what was decoded
			canonical, err := fr.codec.Encode(fr.pending)
			if err != nil {
				fr.terminate(HaltMalformedPayload, err)
				continue
			}
			fr.want = codec.Checksum(canonical)
			fr.state = stateReadingChecksum

		case stateReadingChecksum:
			if err := fr.codec.Decode(fr.stream, &fr.got); err != nil {
				fr.terminate(HaltMissingChecksum, err)
				continue
			}
			fr.state = stateVerifying

		case stateVerifying:
			if fr.got != fr.want {
				fr.terminate(HaltChecksumMismatch, nil)
				continue
			}
			fr.state = stateEmitting

		case stateEmitting:
			fr.record = fr.pending
			fr.records++
			fr.state = stateReadingPayload
			return true

		default:
			return false
		}
	}
}

// Record returns the record produced by the last successful Next
func (fr *FrameReader[T]) Record() T {
	return fr.record
}

// Halt returns the stop diagnostic. Reason is HaltNone while iteration is
// still in progress.
func (fr *FrameReader[T]) Halt() Halt {
	return fr.halt
}

// Offset returns the byte count of fully verified frames read so far
func (fr *FrameReader[T]) Offset() int64 {
	if fr.state == stateTerminated {
		return fr.halt.Offset
	}
	return fr.stream.n
}

// All returns the remaining records as a sequence and closes the reader
// when the sequence ends or the caller stops early.
func (fr *FrameReader[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer fr.Close()
		for fr.Next() {
			if !yield(fr.record) {
				return
			}
		}
	}
}

// Close releases the underlying file. It is safe to call more than once.
func (fr *FrameReader[T]) Close() error {
	fr.state = stateTerminated
	return fr.release()
}

func (fr *FrameReader[T]) release() error {
	if fr.closer == nil {
		return nil
	}
	err := fr.closer.Close()
	fr.closer = nil
	return err
}

func (fr *FrameReader[T]) terminate(reason HaltReason, err error) {
	var zero T
	fr.pending = zero
	fr.record = zero
	fr.state = stateTerminated
	fr.halt = Halt{
		Reason:  reason,
		Offset:  fr.start,
		Records: fr.records,
		Err:     err,
	}

	if reason != HaltEnd {
		attrs := []any{
			slog.String("path", fr.path),
			slog.String("reason", reason.String()),
			slog.Int64("offset", fr.start),
			slog.Int("records", fr.records),
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}
		fr.logger.Warn("binary log read stopped at damaged frame", attrs...)
	}

	_ = fr.release()
}
