package store

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/ssargent/objlog/pkg/codec"
)

// Report summarizes a scan of a binary log
type Report struct {
	Path       string `json:"path"`
	Codec      string `json:"codec"`
	Records    int    `json:"records"`
	ValidBytes int64  `json:"valid_bytes"`
	FileSize   int64  `json:"file_size"`
	Halt       string `json:"halt"`
	Error      string `json:"error,omitempty"`
}

// Damaged reports whether the file has bytes past the last valid frame
func (r *Report) Damaged() bool {
	return r.ValidBytes < r.FileSize
}

// Inspect scans a binary log without knowing its record type. Records are
// decoded as raw values, which re-encode byte for byte, so every checksum is
// still verified. The file is never modified.
func Inspect(path string, c codec.Codec) (*Report, error) {
	if c == nil {
		c = codec.NewMsgpackCodec()
	}

	switch c.(type) {
	case *codec.MsgpackCodec:
		return inspect[msgpack.RawMessage](path, c)
	case *codec.ProtoCodec:
		// Unknown fields are kept verbatim, so Empty works as a raw message
		return inspect[*emptypb.Empty](path, c)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, c.Name())
	}
}

func inspect[T any](path string, c codec.Codec) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log for inspection: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	reader := NewFrameReader[T](file, file, LogConfig{FilePath: path, Codec: c})
	for reader.Next() {
	}
	if err := reader.Close(); err != nil {
		return nil, err
	}

	halt := reader.Halt()
	report := &Report{
		Path:       path,
		Codec:      c.Name(),
		Records:    halt.Records,
		ValidBytes: halt.Offset,
		FileSize:   stat.Size(),
		Halt:       halt.Reason.String(),
	}
	if halt.Err != nil {
		report.Error = halt.Err.Error()
	}
	return report, nil
}
