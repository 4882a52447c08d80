package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextWriter writes items as plain text. Strings are written as-is and
// fmt.Stringer values through their String method. Items are separated by
// the separator line, or a blank line when it is empty.
type TextWriter struct {
	w         *bufio.Writer
	separator string
	written   int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer, separator string) *TextWriter {
	return &TextWriter{
		w:         bufio.NewWriter(w),
		separator: separator,
	}
}

// Write writes a single item.
func (w *TextWriter) Write(data any) error {
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		return fmt.Errorf("text output cannot render %T", data)
	}

	if w.written > 0 {
		if _, err := w.w.WriteString(w.separator + "\n"); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(strings.TrimRight(s, "\n") + "\n"); err != nil {
		return err
	}
	w.written++
	return nil
}

// WriteAll writes multiple items.
func (w *TextWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
