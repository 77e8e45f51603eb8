// Package env reads lognerd settings from the process environment.
//
// Every logical key is looked up through an ordered candidate list: the
// client-prefixed variant first ([ClientPrefix] + key), then the bare key. Client
// bundles can therefore only expose CLIENT_* variables while server processes
// may use either form. The first non-empty candidate wins.
//
// Lookups are performed at call time and never cached.
package env
