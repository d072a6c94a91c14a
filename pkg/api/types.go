package api

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/objlog/pkg/store"
)

// Format names used in routes and metrics
const (
	FormatBinary = "binary"
	FormatText   = "text"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Entry is the record type the server and CLI store in both logs
type Entry struct {
	ID        string `json:"id" msgpack:"id"`
	Timestamp int64  `json:"timestamp" msgpack:"ts"`
	Data      any    `json:"data" msgpack:"data"`
}

// NewEntry wraps data with a fresh KSUID and the current time
func NewEntry(data any) Entry {
	return Entry{
		ID:        ksuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		Data:      data,
	}
}

// HaltInfo is the JSON form of store.Halt
type HaltInfo struct {
	Reason  string `json:"reason"`
	Offset  int64  `json:"offset"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// NewHaltInfo converts a reader halt diagnostic
func NewHaltInfo(h store.Halt) HaltInfo {
	info := HaltInfo{
		Reason:  h.Reason.String(),
		Offset:  h.Offset,
		Records: h.Records,
	}
	if h.Err != nil {
		info.Error = h.Err.Error()
	}
	return info
}

// BinaryRecordsResponse lists binary log entries
type BinaryRecordsResponse struct {
	Records []Entry  `json:"records"`
	Halt    HaltInfo `json:"halt"`
}

// TextRecord is one element of a text log read
type TextRecord struct {
	Entry  *Entry `json:"entry,omitempty"`
	Offset int64  `json:"offset"`
	Error  string `json:"error,omitempty"`
}

// TextRecordsResponse lists text log elements
type TextRecordsResponse struct {
	Records []TextRecord `json:"records"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}
