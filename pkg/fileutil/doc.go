// Package fileutil provides filesystem helpers over afero.Fs.
//
// Every function takes the filesystem explicitly so callers can run against
// the OS (afero.NewOsFs) or memory (afero.NewMemMapFs) without branching.
//
// The helpers cover what lognerd's file sink and CLI need: appending lines,
// preparing directories, listing files newest first, picking collision-free
// names, bounded reads, and atomic (temp file + rename) writes.
package fileutil
