package codec

import (
	"errors"
	"fmt"
	"io"
)

// Errors returned by Decode
var (
	ErrEndOfData = errors.New("end of data")
	ErrTruncated = errors.New("truncated value")
	ErrMalformed = errors.New("malformed value")
)

// Stream is the byte source a Codec decodes from. *bufio.Reader satisfies it.
type Stream interface {
	io.Reader
	io.ByteScanner
}

// Codec serializes values to self-delimiting payloads and back
type Codec interface {
	// Name identifies the codec in configuration and diagnostics
	Name() string

	// Encode serializes v into a self-delimiting payload
	Encode(v any) ([]byte, error)

	// Decode reads exactly one value from r into v, which must be a pointer.
	// The stream is left positioned at the first byte after the value.
	Decode(r Stream, v any) error
}

// Lookup returns the codec registered under name
func Lookup(name string) (Codec, error) {
	switch name {
	case "", MsgpackName:
		return NewMsgpackCodec(), nil
	case ProtoName:
		return NewProtoCodec(), nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// checkStart reports ErrEndOfData if r has no bytes left, without consuming
// anything otherwise.
func checkStart(r Stream) error {
	if _, err := r.ReadByte(); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEndOfData
		}
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := r.UnreadByte(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// classify maps an error raised after the first byte of a value was seen.
func classify(name string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w", name, ErrTruncated)
	}
	return fmt.Errorf("%s: %w: %v", name, ErrMalformed, err)
}
