package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/objlog/pkg/codec"
	"github.com/ssargent/objlog/pkg/store"
)

// maxBodyBytes bounds a single appended record
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleAppend wraps the JSON request body in an Entry and appends it to the
// log named by {format}
func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != FormatBinary && format != FormatText {
		sendError(w, "Unknown log format: "+format, http.StatusNotFound)
		return
	}

	var data any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&data); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	entry := NewEntry(data)

	start := time.Now()
	var err error
	if format == FormatBinary {
		err = s.binary.Append(entry)
	} else {
		err = s.text.Append(entry)
	}
	s.metrics.RecordAppend(format, err == nil, time.Since(start))

	if err != nil {
		s.logger.Error("append failed", slog.String("format", format), slog.Any("error", err))
		sendError(w, "Failed to append record", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, entry)
}

// handleList returns every record of the log named by {format}
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "format") {
	case FormatBinary:
		s.listBinary(w)
	case FormatText:
		s.listText(w)
	default:
		sendError(w, "Unknown log format: "+chi.URLParam(r, "format"), http.StatusNotFound)
	}
}

func (s *Server) listBinary(w http.ResponseWriter) {
	records, halt, err := s.binary.ReadAll()
	if err != nil {
		s.logger.Error("binary read failed", slog.Any("error", err))
		sendError(w, "Failed to read log", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordRead(FormatBinary, len(records))
	s.metrics.RecordHalt(halt.Reason.String())

	if records == nil {
		records = []Entry{}
	}
	sendSuccess(w, BinaryRecordsResponse{Records: records, Halt: NewHaltInfo(halt)})
}

func (s *Server) listText(w http.ResponseWriter) {
	it, err := s.text.Records()
	if err != nil {
		s.logger.Error("text read failed", slog.Any("error", err))
		sendError(w, "Failed to read log", http.StatusInternalServerError)
		return
	}

	records := []TextRecord{}
	for result := range it.All() {
		rec := TextRecord{Offset: result.Offset}
		if result.Err != nil {
			rec.Error = result.Err.Error()
		} else {
			entry := result.Value
			rec.Entry = &entry
		}
		records = append(records, rec)
	}
	s.metrics.RecordRead(FormatText, len(records))

	sendSuccess(w, TextRecordsResponse{Records: records})
}

// handleVerify scans the binary log and reports how much of it is intact
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	c, err := codec.Lookup(s.binary.Codec())
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	report, err := store.Inspect(s.binary.Path(), c)
	if err != nil {
		s.logger.Error("verify failed", slog.Any("error", err))
		sendError(w, "Failed to verify log", http.StatusInternalServerError)
		return
	}
	sendSuccess(w, report)
}
