package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestDecodeLossy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "valid ascii", in: []byte("Darwin 23.4.0\n"), want: "Darwin 23.4.0\n"},
		{name: "valid multibyte", in: []byte("ホスト"), want: "ホスト"},
		{name: "invalid byte replaced", in: []byte{'a', 0xff, 'b'}, want: "a�b"},
		{name: "empty", in: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DecodeLossy(tt.in); got != tt.want {
				t.Errorf("DecodeLossy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOutputTrimmed(t *testing.T) {
	t.Parallel()

	out := Output{Stdout: "  23.4.0\n"}
	if got := out.Trimmed(); got != "23.4.0" {
		t.Errorf("expected %q, got %q", "23.4.0", got)
	}
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("without stderr", func(t *testing.T) {
		t.Parallel()
		err := &ExitError{Command: "df -h /", Code: 1}
		if err.Error() != "df -h / exited with status 1" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("with stderr", func(t *testing.T) {
		t.Parallel()
		err := &ExitError{Command: "df -h /nope", Code: 1, Stderr: "No such file or directory"}
		if !strings.HasSuffix(err.Error(), ": No such file or directory") {
			t.Errorf("expected stderr in message, got %q", err.Error())
		}
	})
}

func TestExecRunner(t *testing.T) {
	t.Parallel()

	t.Run("missing program returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		r := NewExecRunner()
		_, err := r.Run(context.Background(), "sysreport-no-such-program")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("captures stdout", func(t *testing.T) {
		t.Parallel()
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}

		r := NewExecRunner()
		out, err := r.Run(context.Background(), "sh", "-c", "echo hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Trimmed() != "hello" {
			t.Errorf("expected %q, got %q", "hello", out.Trimmed())
		}
	})

	t.Run("non-zero exit returns ExitError with output", func(t *testing.T) {
		t.Parallel()
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}

		r := NewExecRunner()
		out, err := r.Run(context.Background(), "sh", "-c", "echo partial; echo oops >&2; exit 3")

		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *ExitError, got %v", err)
		}
		if exitErr.Code != 3 {
			t.Errorf("expected exit code 3, got %d", exitErr.Code)
		}
		if exitErr.Stderr != "oops" {
			t.Errorf("expected stderr %q, got %q", "oops", exitErr.Stderr)
		}
		if out.Trimmed() != "partial" {
			t.Errorf("expected partial output, got %q", out.Stdout)
		}
	})

	t.Run("timeout returns ErrTimeout", func(t *testing.T) {
		t.Parallel()
		if _, err := exec.LookPath("sleep"); err != nil {
			t.Skip("sleep not available")
		}

		r := NewExecRunner(WithTimeout(50 * time.Millisecond))
		_, err := r.Run(context.Background(), "sleep", "5")
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})
}

func TestWithTimeoutIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	r := NewExecRunner(WithTimeout(0), WithTimeout(-time.Second))
	if r.timeout != 0 {
		t.Errorf("expected no timeout, got %v", r.timeout)
	}
}
