// Package encoding serializes analysis results and plot-data bundles for
// the external renderer collaborator.
package encoding

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

// EncoderPool manages a pool of JSON encoders for repeated result writes
type EncoderPool struct {
	pool chan *json.Encoder
	size int
}

// NewEncoderPool creates a new encoder pool with specified size
func NewEncoderPool(size int) *EncoderPool {
	if size <= 0 {
		size = 4
	}

	pool := make(chan *json.Encoder, size)
	for i := 0; i < size; i++ {
		pool <- json.NewEncoder(io.Discard)
	}

	return &EncoderPool{
		pool: pool,
		size: size,
	}
}

// Marshal marshals a value to compact JSON
func (ep *EncoderPool) Marshal(v interface{}) ([]byte, error) {
	encoder := ep.acquire()
	defer ep.release(encoder)

	var buf bytes.Buffer
	tempEncoder := json.NewEncoder(&buf)
	if err := tempEncoder.Encode(v); err != nil {
		return nil, err
	}

	// json.Encoder.Encode appends a trailing newline
	data := buf.Bytes()
	if len(data) > 0 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	return data, nil
}

// WriteIndented writes a value as indented JSON to w, for human-facing
// result output
func (ep *EncoderPool) WriteIndented(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteFile writes a value as indented JSON to path, such as a plot-data
// bundle for the renderer
func (ep *EncoderPool) WriteFile(path string, v interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Warn("Failed to close output file", "path", path, "error", cerr)
		}
	}()

	return ep.WriteIndented(file, v)
}

func (ep *EncoderPool) acquire() *json.Encoder {
	select {
	case encoder := <-ep.pool:
		return encoder
	default:
		slog.Debug("Encoder pool exhausted, creating new encoder")
		return json.NewEncoder(io.Discard)
	}
}

func (ep *EncoderPool) release(encoder *json.Encoder) {
	select {
	case ep.pool <- encoder:
	default:
		slog.Debug("Encoder pool full, discarding encoder")
	}
}
