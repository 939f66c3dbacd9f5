package editor

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/castlight/quill/internal/logger"
)

// Open reads a file into the buffer, one row per line with trailing
// CR/LF trimmed. A named file must exist; open failures are fatal at
// startup.
func (e *Editor) Open(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	e.rows = nil
	r := bufio.NewReader(f)
	for {
		line, rerr := r.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte("\n"))
			line = bytes.TrimSuffix(line, []byte("\r"))
			e.InsertRow(len(e.rows), line)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	e.filename = name
	e.dirty = 0
	e.selectSyntax()
	logger.Info("opened file", "path", name, "rows", len(e.rows))
	return nil
}

// Contents joins every row with a newline; each row is followed by
// exactly one.
func (e *Editor) Contents() []byte {
	var buf bytes.Buffer
	for _, row := range e.rows {
		buf.Write(row.chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Save rewrites the backing file with 0644, prompting for a name when
// unnamed. Write failures land on the status bar and the buffer stays
// dirty.
func (e *Editor) Save() {
	if e.filename == "" {
		name := e.Prompt("Save as: %s", nil)
		if name == "" {
			e.SetStatus("Save aborted")
			return
		}
		e.filename = name
		e.selectSyntax()
	}
	data := e.Contents()
	if err := os.WriteFile(e.filename, data, 0o644); err != nil {
		e.SetStatus("Can't save! I/O error: %v", err)
		logger.Error("saving file", "path", e.filename, "err", err)
		return
	}
	e.dirty = 0
	for _, row := range e.rows {
		row.dirty = false
	}
	e.SetStatus("%q %dL, %dC written", e.filename, len(e.rows), len(data))
	logger.Info("saved file", "path", e.filename, "bytes", len(data))
}
