package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestResolveColor - --color flag handling
// ---------------------------------------------------------------------------

func TestResolveColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{mode: "never", want: false},
		{mode: "always", want: true},
		{mode: "auto", want: false}, // a buffer is not a terminal
		{mode: "", want: false},
		{mode: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()

			got, err := resolveColor(tt.mode, &bytes.Buffer{})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("resolveColor(%q) error = %v, want ErrInvalidColor", tt.mode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveColor(%q) unexpected error: %v", tt.mode, err)
			}
			if got != tt.want {
				t.Errorf("resolveColor(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrinter - Result lines
// ---------------------------------------------------------------------------

func TestPrinter(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		p := NewPrinter(&out, &errOut, false, false)
		p.Created("cv.tex", 1500*time.Microsecond, false)
		p.Created("cv.pdf", 1500*time.Microsecond, true)

		want := "Created cv.tex\nCreated cv.pdf (2ms)\n"
		if out.String() != want {
			t.Errorf("output = %q, want %q", out.String(), want)
		}
	})

	t.Run("quiet suppresses results but not failures", func(t *testing.T) {
		t.Parallel()

		var out, errOut bytes.Buffer
		p := NewPrinter(&out, &errOut, true, false)
		p.Created("cv.tex", 0, false)
		p.Summary(1, 1)
		p.Failed("bad.xml", errors.New("boom"))

		if out.Len() != 0 {
			t.Errorf("quiet output = %q, want empty", out.String())
		}
		if got := errOut.String(); got != "FAILED bad.xml: boom\n" {
			t.Errorf("error output = %q", got)
		}
	})

	t.Run("summary and checks", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		p := NewPrinter(&out, &out, false, false)
		p.Summary(2, 1)
		p.Check(checkOK, "compiler: /usr/bin/pdflatex")
		p.Check(checkWarn, "input: missing")
		p.Check(checkError, "class: missing")

		for _, part := range []string{
			"2 succeeded, 1 failed",
			"[OK] compiler: /usr/bin/pdflatex",
			"[WARN] input: missing",
			"[ERROR] class: missing",
		} {
			if !strings.Contains(out.String(), part) {
				t.Errorf("output missing %q:\n%s", part, out.String())
			}
		}
	})
}
