// Package platform detects the runtime a lognerd process is running in.
//
// Two runtimes exist. A server runtime is assumed to have file I/O. A client
// runtime (a js/wasm bundle in a browser, or a process told to behave like one)
// is assumed sandboxed, so file sinks are disabled there.
//
// # Detection
//
// [Detect] first honors the LOG_ENVIRONMENT override (B/BACKEND/SERVER or
// C/CLIENT/CLIENTE/BROWSER, case-insensitive) and otherwise falls back to the
// intrinsic probe in [Capability]:
//
//	rt := platform.Detect(env.New(), platform.Host())
//
// # Capability
//
// [Capability] carries the filesystem the process may use. [Host] returns an
// OS-backed afero.Fs on regular builds and a nil Fs on js and wasip1 builds.
// Tests substitute afero.NewMemMapFs or a nil Fs.
package platform
