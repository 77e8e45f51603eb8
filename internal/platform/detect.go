package platform

import (
	"strings"

	"github.com/thoreinstein/lognerd/internal/env"
)

// Runtime identifies the kind of process lognerd runs in.
type Runtime string

const (
	// RuntimeServer is a server-like process with file I/O.
	RuntimeServer Runtime = "backend"

	// RuntimeClient is a browser-like process without file I/O.
	RuntimeClient Runtime = "client"
)

// OverrideKey names the variable that forces a runtime.
const OverrideKey = "LOG_ENVIRONMENT"

// String returns the runtime name.
func (r Runtime) String() string {
	return string(r)
}

// ParseRuntime maps an override value onto a Runtime.
// It reports false when the value is not recognized.
func ParseRuntime(s string) (Runtime, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BACKEND", "SERVER":
		return RuntimeServer, true
	case "C", "CLIENT", "CLIENTE", "BROWSER":
		return RuntimeClient, true
	default:
		return "", false
	}
}

// Detect returns the runtime for the current process.
// The LOG_ENVIRONMENT override wins; otherwise the capability probe decides.
// Nothing is cached, so the result tracks the environment at call time.
func Detect(r *env.Reader, probe Capability) Runtime {
	if val, ok := r.Get(OverrideKey); ok {
		if rt, ok := ParseRuntime(val); ok {
			return rt
		}
	}

	if probe.Server {
		return RuntimeServer
	}
	return RuntimeClient
}
