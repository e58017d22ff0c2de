package credentials

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// Resolver looks up API keys through an ordered source chain:
// in-memory override, then process environment, then a NAME=value keyfile.
// An empty result means the key is not configured anywhere; that is a
// normal state, not an error.
type Resolver struct {
	mu        sync.RWMutex
	overrides map[string]string
	keyfile   string
}

// NewResolver creates a resolver backed by the given keyfile path.
// An empty path disables the file source.
func NewResolver(keyfile string) *Resolver {
	return &Resolver{
		overrides: make(map[string]string),
		keyfile:   keyfile,
	}
}

// Set stores an in-memory override for the named key. Overrides win over
// every other source for the rest of the process lifetime.
func (r *Resolver) Set(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[name] = value
}

// Resolve returns the first value found for name, or "" when no source
// has it. The keyfile is re-read on every call so edits take effect on
// the next lookup.
func (r *Resolver) Resolve(name string) string {
	r.mu.RLock()
	v, ok := r.overrides[name]
	r.mu.RUnlock()
	if ok && v != "" {
		return v
	}

	if v := os.Getenv(name); v != "" {
		return v
	}

	return r.scanKeyfile(name)
}

func (r *Resolver) scanKeyfile(name string) string {
	if r.keyfile == "" {
		return ""
	}

	f, err := os.Open(r.keyfile)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	prefix := name + "="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}

	return ""
}
