// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-stitchjob/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForCompilerNotFound returns hints for a missing LaTeX compiler binary.
func ForCompilerNotFound(binary string) string {
	hints := []string{"install a TeX distribution (TeX Live, MacTeX or MiKTeX) providing " + binary}
	if IsInContainer() {
		hints = []string{"add texlive-latex-extra to the container image"}
	}
	hints = append(hints, "or set compile.command in the config file")
	return formatHints(hints)
}

// ForCompileFailed points at the compiler log for the full error.
func ForCompileFailed(logPath string) string {
	if logPath == "" {
		return format("rerun with --verbose to see the compiler output")
	}
	return format("see " + logPath + " for the full compiler output")
}

// ForTimeout returns a hint about increasing the compile timeout.
func ForTimeout() string {
	return format("for slow machines, use --timeout or compile.timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-stitchjob/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-stitchjob") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForSignatureImage returns hints for signature image not found errors.
func ForSignatureImage() string {
	return format("signature_image in the letter is relative to the letter file; --signature-image is relative to --signature-base")
}

// ForUnknownTag lists the section children a resume may contain.
func ForUnknownTag(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return format("sections may contain: " + strings.Join(supported, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
