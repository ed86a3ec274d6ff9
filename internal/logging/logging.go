// Package logging routes the standard logger to a file under logs/ when
// debugging, and discards it otherwise. Hosts that own the terminal must
// never log to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	Dir      = "logs"
	FileName = "embers.log"
	// MaxSize is the size above which the previous log is rotated aside.
	MaxSize = 10 * 1024 * 1024
)

// Setup configures the standard logger. With debug off it returns nil and
// logs go nowhere. With debug on it returns the open log file, which the
// caller closes on exit. If the file cannot be opened logging stays off.
func Setup(dir string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxSize {
		rotated := filepath.Join(dir, fmt.Sprintf("embers-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging started")
	return f
}
