package stream

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/internal/proc"
)

const (
	chunkSize    = 64 * 1024
	stderrTailSz = 4 * 1024
)

// ExitError is a subprocess failure carrying the tail of its stderr.
type ExitError struct {
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func copyChunks(w *Writer, r io.Reader) error {
	_, err := io.CopyBuffer(struct{ io.Writer }{w}, r, make([]byte, chunkSize))
	return err
}

// FromReader streams rc and closes it when done or canceled.
func FromReader(rc io.ReadCloser) *Stream {
	var once sync.Once
	closeRC := func() error {
		var err error
		once.Do(func() { err = rc.Close() })
		return err
	}

	return New(func(w *Writer) error {
		defer closeRC()
		return copyChunks(w, rc)
	}, closeRC)
}

// FromFile streams the file at path. onClose runs exactly once after the stream ends, fails or is canceled.
func FromFile(path string, onClose func()) (*Stream, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		if onClose != nil {
			onClose()
		}
		return nil, err
	}

	var once sync.Once
	finish := func() error {
		var err error
		once.Do(func() {
			err = f.Close()
			if onClose != nil {
				onClose()
			}
		})
		return err
	}

	return New(func(w *Writer) error {
		defer finish()
		return copyChunks(w, f)
	}, finish), nil
}

// tail keeps the last n bytes written to it.
type tail struct {
	mu  sync.Mutex
	buf []byte
	n   int
}

func (t *tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if len(t.buf) > t.n {
		t.buf = t.buf[len(t.buf)-t.n:]
	}
	return len(p), nil
}

func (t *tail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(bytes.ToValidUTF8(t.buf, nil)))
}

// FromCommand starts cmd and streams its stdout.
// A non-zero exit becomes an *ExitError; cancel kills the process group and then closes closers.
func FromCommand(cmd *exec.Cmd, closers ...io.Closer) (*Stream, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	stderr := &tail{n: stderrTailSz}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	teardown := func() error {
		err := proc.Kill(cmd)
		for _, c := range closers {
			_ = c.Close()
		}
		return err
	}

	return New(func(w *Writer) error {
		copyErr := copyChunks(w, stdout)
		if copyErr != nil {
			_ = proc.Kill(cmd)
		}

		waitErr := cmd.Wait()
		if copyErr != nil {
			return copyErr
		}
		if waitErr != nil {
			return &ExitError{Err: waitErr, Stderr: stderr.String()}
		}
		return nil
	}, teardown), nil
}
