package interaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepository keeps the log as one JSON array that is rewritten in full on
// every append. Writers in this process are serialised; separate processes
// sharing the file can still lose updates.
type FileRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path, now: time.Now}
}

func (r *FileRepository) Backend() string { return BackendFile }

func (r *FileRepository) Path() string { return r.path }

func (r *FileRepository) Append(ctx context.Context, rec Record) (Record, error) {
	const op = "FileRepository.Append"

	if err := ctx.Err(); err != nil {
		return Record{}, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load()
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	if !rec.Timestamp.Valid {
		rec.Timestamp = NewTimestamp(r.now())
	}
	raw, err := marshalRecord(rec)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	if err := r.store(append(existing, raw)); err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	return rec, nil
}

// ReadAll returns records in file order. A missing or empty file is an empty log.
func (r *FileRepository) ReadAll(ctx context.Context) ([]Record, error) {
	const op = "FileRepository.ReadAll"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	raws, err := r.load()
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}

	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, decodeLooseJSON(raw))
	}
	return out, nil
}

// load returns the elements undecoded, so unknown fields survive a rewrite.
// A file that is not a JSON array is an error and is left untouched.
func (r *FileRepository) load() ([]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []json.RawMessage{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if raws == nil {
		raws = []json.RawMessage{}
	}
	return raws, nil
}

func marshalRecord(rec Record) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// store writes to a temp file in the same directory and renames it over the log.
func (r *FileRepository) store(raws []json.RawMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raws); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path)
}
