package output

import (
	"bufio"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// encodeFunc writes one complete document to w.
type encodeFunc func(w io.Writer, doc any) error

// DocumentWriter collects items and writes them as a single document when
// flushed. One item is written on its own; several become a list. Nothing is
// written when no items are pending, so Close after Flush adds no output.
type DocumentWriter struct {
	w      *bufio.Writer
	encode encodeFunc
	items  []any
}

func newDocumentWriter(w io.Writer, encode encodeFunc) *DocumentWriter {
	return &DocumentWriter{w: bufio.NewWriter(w), encode: encode}
}

// NewJSONWriter creates a writer producing one JSON document.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *DocumentWriter {
	if !pretty {
		indent = ""
	}
	return newDocumentWriter(w, func(dst io.Writer, doc any) error {
		return newJSONEncoder(dst, indent).Encode(doc)
	})
}

// NewYAMLWriter creates a writer producing one YAML document.
func NewYAMLWriter(w io.Writer, indent int) *DocumentWriter {
	if indent <= 0 {
		indent = 2
	}
	return newDocumentWriter(w, func(dst io.Writer, doc any) error {
		enc := yaml.NewEncoder(dst)
		enc.SetIndent(indent)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	})
}

// Write queues a single item.
func (w *DocumentWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// WriteAll queues multiple items.
func (w *DocumentWriter) WriteAll(data []any) error {
	w.items = append(w.items, data...)
	return nil
}

// Flush writes the queued items.
func (w *DocumentWriter) Flush() error {
	if len(w.items) > 0 {
		var doc any = w.items
		if len(w.items) == 1 {
			doc = w.items[0]
		}
		if err := w.encode(w.w, doc); err != nil {
			return err
		}
		w.items = w.items[:0]
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *DocumentWriter) Close() error {
	return w.Flush()
}

// newJSONEncoder returns an encoder that leaves '&', '<' and '>' as they are.
// Cleaned email text is full of them and the output is never embedded in HTML.
func newJSONEncoder(w io.Writer, indent string) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc
}
