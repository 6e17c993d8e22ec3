package input

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for paths without a bundle extension.
var ErrUnknownFormat = errors.New("unknown bundle format")

// DecodeError wraps a decoder failure with the bundle path.
type DecodeError struct {
	Path   string
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode %s: %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Load reads, decodes, normalizes and validates the bundle at path.
func Load(path string) (*Bundle, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user supplied bundle
	if err != nil {
		return nil, err
	}
	b, err := Decode(data, format)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	b.Path = path
	b.Digest = sha256.Sum256(data)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Decode parses data in the given format. Unknown fields are rejected for
// JSON and YAML.
func Decode(data []byte, format Format) (*Bundle, error) {
	var b Bundle
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&b)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&b)
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &b)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	b.Format = format
	normalize(&b)
	return &b, nil
}

// Encode writes b in the given format.
func Encode(w io.Writer, format Format, b *Bundle) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		return enc.Encode(b)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// Save re-encodes b to its own path in its own format. The file is replaced
// atomically.
func Save(b *Bundle) error {
	if b.Path == "" {
		return errors.New("bundle has no path")
	}
	dir := filepath.Dir(b.Path)
	f, err := os.CreateTemp(dir, ".doclint-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := Encode(f, b.Format, b); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", b.Path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, b.Path)
}

// Discover lists bundle files under dir in lexical order. Hidden
// directories and node_modules are skipped.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := FormatFor(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
