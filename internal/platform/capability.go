package platform

import "github.com/spf13/afero"

// Capability describes what the host process can do.
type Capability struct {
	// Server reports whether a server-style runtime is present.
	Server bool

	// Fs is the filesystem available to file sinks. Nil means no file I/O.
	Fs afero.Fs
}

// FileCapable reports whether file primitives are available.
func (c Capability) FileCapable() bool {
	return c.Fs != nil
}

// Host returns the capability of the running binary.
func Host() Capability {
	return hostCapability()
}
