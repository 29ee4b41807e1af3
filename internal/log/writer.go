package log

import "bytes"

// Writer is an io.Writer that writes to the provided logger, splitting
// messages across newlines into new log entries.
//
// Use it to capture the output of multiplexer commands.
// Lines may end in "\r\n": screen writes some messages that way.
// Call Close when the writer is no longer in use to flush a trailing partial
// line.
type Writer struct {
	Log   *Logger
	Level Level // defaults to Info

	buff bytes.Buffer
}

func (w *Writer) Write(bs []byte) (int, error) {
	n := len(bs)
	for len(bs) > 0 {
		bs = w.takeNextLine(bs)
	}
	return n, nil
}

func (w *Writer) takeNextLine(line []byte) (remaining []byte) {
	idx := bytes.IndexByte(line, '\n')
	if idx < 0 {
		// No newline. Buffer the whole thing until we see one.
		w.buff.Write(line)
		return nil
	}

	line, remaining = line[:idx], line[idx+1:]

	// Nothing buffered from a previous write: log directly.
	if w.buff.Len() == 0 {
		w.logLine(line)
		return remaining
	}

	w.buff.Write(line)

	// "foo\n\nbar" has an empty line in the middle that must be kept.
	w.flush(true /* allowEmpty */)

	return remaining
}

// Close closes the Writer, flushing any buffered data to the underlying log.
func (w *Writer) Close() error {
	// Output usually ends with a newline.
	// Don't log an extra empty message for it.
	w.flush(false /* allowEmpty */)
	return nil
}

func (w *Writer) flush(allowEmpty bool) {
	if allowEmpty || w.buff.Len() > 0 {
		w.logLine(w.buff.Bytes())
	}
	w.buff.Reset()
}

func (w *Writer) logLine(b []byte) {
	w.Log.Logf(w.Level, "%s", bytes.TrimSuffix(b, []byte{'\r'}))
}
