package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTextLog(t *testing.T) (*TextLog[testRecord], string) {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "records.json")
	log, err := OpenTextLog[testRecord](LogConfig{FilePath: filePath})
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log, filePath
}

func collectText[T any](t *testing.T, it *TextIterator[T]) []TextResult[T] {
	t.Helper()

	var out []TextResult[T]
	for r := range it.All() {
		out = append(out, r)
	}
	return out
}

func TestTextLog_RoundTrip(t *testing.T) {
	log, filePath := openTextLog(t)

	want := []testRecord{{ID: 1, Tag: "a"}, {ID: 2, Tag: "b"}, {ID: 3, Tag: "c"}}
	for _, r := range want {
		require.NoError(t, log.Append(r))
	}

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"tag":"a"}{"id":2,"tag":"b"}{"id":3,"tag":"c"}`, string(data))

	it, err := log.Records()
	require.NoError(t, err)
	results := collectText(t, it)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, want[i], r.Value)
	}
	assert.Equal(t, int64(len(data)), results[2].Offset)
}

func TestTextLog_Empty(t *testing.T) {
	log, _ := openTextLog(t)

	it, err := log.Records()
	require.NoError(t, err)
	assert.False(t, it.Next())
	assert.False(t, it.Next())
}

func TestTextLog_TypeMismatchIsPerElement(t *testing.T) {
	it := NewTextIterator[testRecord](strings.NewReader(`{"id":1,"tag":"a"}"oops"{"id":2,"tag":"b"}`), nil, 0)

	results := collectText(t, it)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, results[2].Value.ID)
}

func TestTextLog_TornTailSurfacesError(t *testing.T) {
	log, filePath := openTextLog(t)
	require.NoError(t, log.Append(testRecord{ID: 1, Tag: "a"}))

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":2,"ta`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	it, err := log.Records()
	require.NoError(t, err)
	results := collectText(t, it)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "invalid JSON value")
}

func TestTextLog_SyntaxErrorEndsIteration(t *testing.T) {
	it := NewTextIterator[testRecord](strings.NewReader(`{"id":1}}{"id":2}`), nil, 0)

	require.True(t, it.Next())
	assert.NoError(t, it.Result().Err)
	require.True(t, it.Next())
	assert.Error(t, it.Result().Err)
	assert.False(t, it.Next())
}

func TestTextLog_DynamicValues(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "any.json")
	log, err := OpenTextLog[any](LogConfig{FilePath: filePath})
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Append(map[string]any{"k": "v"}))
	require.NoError(t, log.Append([]any{1.0, "two"}))

	it, err := log.Records()
	require.NoError(t, err)
	results := collectText(t, it)
	require.Len(t, results, 2)
	assert.Equal(t, map[string]any{"k": "v"}, results[0].Value)
	assert.Equal(t, []any{1.0, "two"}, results[1].Value)
}

func TestTextLog_Closed(t *testing.T) {
	log, _ := openTextLog(t)
	require.NoError(t, log.Close())
	assert.ErrorIs(t, log.Append(testRecord{ID: 1}), ErrClosed)
}

func TestTextLog_EncodeError(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "bad.json")
	log, err := OpenTextLog[any](LogConfig{FilePath: filePath})
	require.NoError(t, err)
	defer log.Close()

	assert.Error(t, log.Append(make(chan int)))
	require.NoError(t, log.Append("still usable"))
}
