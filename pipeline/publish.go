package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PublishError describes a failed publish step. Publishing is best-effort:
// a failure is reported but earlier pipeline stages are not rolled back.
type PublishError struct {
	Src string
	Dst string
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s -> %s: %v", e.Src, e.Dst, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Publish copies the export file to a destination outside the pipeline's
// working area, creating the destination directory as needed.
func Publish(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &PublishError{Src: src, Dst: dst, Err: err}
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &PublishError{Src: src, Dst: dst, Err: err}
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return &PublishError{Src: src, Dst: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &PublishError{Src: src, Dst: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &PublishError{Src: src, Dst: dst, Err: err}
	}
	return nil
}
