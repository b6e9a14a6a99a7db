// Package doctor inspects the machine ccjk runs on: are the managed
// tools installed, which versions, and do their config files still parse.
package doctor

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/miounet11/ccjk-sub004/internal/confdoc"
)

// CheckStatus is the outcome of a single check.
type CheckStatus string

const (
	StatusOK      CheckStatus = "ok"
	StatusWarning CheckStatus = "warning"
	StatusMissing CheckStatus = "missing"
)

// Check is one line of the doctor report.
type Check struct {
	Name    string
	Status  CheckStatus
	Detail  string
	Version string
}

var versionRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// lookPath and runVersion are swappable for tests.
var (
	lookPath   = exec.LookPath
	runVersion = func(ctx context.Context, binary string) (string, error) {
		out, err := exec.CommandContext(ctx, binary, "--version").CombinedOutput()
		return string(out), err
	}
)

// CheckBinary reports whether a tool binary is installed and which
// version it announces.
func CheckBinary(ctx context.Context, name, binary string) Check {
	path, err := lookPath(binary)
	if err != nil {
		return Check{Name: name, Status: StatusMissing, Detail: binary + " not found in PATH"}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := runVersion(ctx, path)
	if err != nil {
		return Check{Name: name, Status: StatusWarning, Detail: "installed but --version failed"}
	}

	version := versionRe.FindString(out)
	if version == "" {
		return Check{Name: name, Status: StatusWarning, Detail: "version not recognized: " + firstLine(out)}
	}
	return Check{Name: name, Status: StatusOK, Version: version}
}

// CheckCodexConfig reports the parse state of the codex config file.
func CheckCodexConfig(path string) Check {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Check{Name: "codex config", Status: StatusWarning, Detail: "no config file yet"}
	}
	if err != nil {
		return Check{Name: "codex config", Status: StatusWarning, Detail: err.Error()}
	}

	doc := confdoc.Parse(string(data))
	switch {
	case confdoc.NeedsMigration(string(data)):
		return Check{Name: "codex config", Status: StatusWarning, Detail: "legacy env_key fields present; run ccjk migrate"}
	case doc.IsManaged():
		return Check{Name: "codex config", Status: StatusOK, Detail: "managed"}
	case len(doc.Unmanaged) > 0:
		return Check{Name: "codex config", Status: StatusOK, Detail: "present, not managed by ccjk"}
	default:
		return Check{Name: "codex config", Status: StatusOK, Detail: "empty"}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
