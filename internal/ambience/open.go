package ambience

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Extensions lists the file types Open can decode.
var Extensions = []string{"*.wav", "*.mp3", "*.flac"}

// Track is a decoded audio file. Close releases both the decoder and the
// file.
type Track struct {
	beep.StreamSeekCloser
	Format beep.Format
	Path   string

	file *os.File
}

func (t *Track) Close() error {
	err := t.StreamSeekCloser.Close()
	if cerr := t.file.Close(); err == nil && cerr != nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}

// Open decodes path by extension.
func Open(path string) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, fmt.Errorf("open %s: unsupported file type %q", path, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Track{StreamSeekCloser: s, Format: format, Path: path, file: f}, nil
}
