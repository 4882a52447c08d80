package output

import (
	"bufio"
	"io"
)

// StreamWriter writes one compact JSON value per line (JSONL) and flushes
// after every item, so results of a long batch can be followed as they land.
type StreamWriter struct {
	w *bufio.Writer
}

// NewStreamWriter creates a JSONL writer.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: bufio.NewWriter(w)}
}

// Write writes a single item as one line.
func (w *StreamWriter) Write(data any) error {
	// Encode appends the newline.
	if err := newJSONEncoder(w.w, "").Encode(data); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes each item on its own line.
func (w *StreamWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *StreamWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *StreamWriter) Close() error {
	return w.Flush()
}
