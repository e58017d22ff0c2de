package credentials

import (
	"fmt"
	"os"
	"strings"
)

// Save writes name=value into the keyfile, replacing an existing line for
// the same key or appending a new one. It also sets the in-memory
// override so the new value is visible immediately.
func (r *Resolver) Save(name, value string) error {
	if r.keyfile == "" {
		return fmt.Errorf("no keyfile configured")
	}

	var lines []string
	if data, err := os.ReadFile(r.keyfile); err == nil {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}

	prefix := name + "="
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = prefix + value
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, prefix+value)
	}

	out := strings.Join(lines, "\n") + "\n"
	if strings.TrimSpace(out) == "" {
		out = prefix + value + "\n"
	}

	if err := os.WriteFile(r.keyfile, []byte(out), 0o600); err != nil {
		return fmt.Errorf("failed to write keyfile: %w", err)
	}

	r.Set(name, value)
	return nil
}
