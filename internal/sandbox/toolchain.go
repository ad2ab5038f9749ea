package sandbox

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// Toolchain describes the cargo installation found on PATH.
type Toolchain struct {
	Version string // canonical semver, e.g. "v1.79.0"
	Raw     string // first line of `cargo --version`
	OK      bool   // Version >= the requested minimum
}

// CheckToolchain runs `cargo --version` and compares the result against
// min (with or without a leading "v"). An empty min accepts any version.
func CheckToolchain(ctx context.Context, min string) (Toolchain, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "cargo", "--version").Output()
	if err != nil {
		return Toolchain{}, fmt.Errorf("run cargo --version: %w", err)
	}
	raw := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	version, err := ParseCargoVersion(raw)
	if err != nil {
		return Toolchain{Raw: raw}, err
	}
	return Toolchain{Version: version, Raw: raw, OK: MeetsMinimum(version, min)}, nil
}

// ParseCargoVersion extracts the semver from output such as
// "cargo 1.79.0 (ffa9cf99a 2024-06-03)".
func ParseCargoVersion(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "cargo" {
		return "", fmt.Errorf("unrecognized cargo version output %q", line)
	}
	v := canonical(fields[1])
	if v == "" {
		return "", fmt.Errorf("invalid cargo version %q", fields[1])
	}
	return v, nil
}

// MeetsMinimum reports whether version >= min. Prerelease toolchains such
// as nightly compare lower than the matching release.
func MeetsMinimum(version, min string) bool {
	if strings.TrimSpace(min) == "" {
		return true
	}
	m := canonical(min)
	if m == "" {
		return false
	}
	return semver.Compare(canonical(version), m) >= 0
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}
