package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	errMissing   = errors.New("file does not exist")
	errMalformed = errors.New("file content is malformed")
)

// File reads and writes one JSON document. Writers replace the whole file.
type File struct {
	path    string
	timeout time.Duration

	// writing holds a token until the running write returns, even after its caller timed out.
	writing chan struct{}
	write   func(ctx context.Context, path string, data []byte) error
}

// NewFile binds a JSON document to path. A non-positive timeout disables the I/O deadline.
func NewFile(path string, timeout time.Duration) *File {
	return &File{
		path:    path,
		timeout: timeout,
		writing: make(chan struct{}, 1),
		write:   writeReplace,
	}
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

// Load decodes the document into v. It returns errMissing when the file
// is absent and errMalformed when it cannot be decoded.
func (f *File) Load(ctx context.Context, v any) error {
	return f.do(ctx, nil, func(context.Context) error {
		data, err := os.ReadFile(f.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errMissing
			}
			return fmt.Errorf("read %s: %w", f.path, err)
		}
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode %s: %w: %v", f.path, errMalformed, err)
		}
		return nil
	})
}

// Save overwrites the document with a pretty-printed encoding of v.
func (f *File) Save(ctx context.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	data = append(data, '\n')

	return f.do(ctx, f.writing, func(ctx context.Context) error {
		return f.write(ctx, f.path, data)
	})
}

// Quarantine moves an unreadable document aside so the next save does not destroy it.
func (f *File) Quarantine(now time.Time) (string, error) {
	target := f.path + ".corrupt-" + strconv.FormatInt(now.Unix(), 10)
	if err := os.Rename(f.path, target); err != nil {
		return "", fmt.Errorf("quarantine %s: %w", f.path, err)
	}
	return target, nil
}

// do runs op under the file deadline. When lock is set, op holds it until op
// itself returns, even if do has already given up waiting.
func (f *File) do(ctx context.Context, lock chan struct{}, op func(context.Context) error) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if lock != nil {
		select {
		case lock <- struct{}{}:
		case <-ctx.Done():
			return fmt.Errorf("%s: earlier write still running: %w", f.path, ctx.Err())
		}
	}

	done := make(chan error, 1)
	go func() {
		err := op(ctx)
		if lock != nil {
			<-lock
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", f.path, ctx.Err())
	}
}

// writeReplace stages data in a temp file and renames it over path.
// Nothing is renamed once ctx is done.
func writeReplace(ctx context.Context, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmp := file.Name()
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
