// Package rosterfile reads, writes and imports JSON roster files.
//
// Files are accessed through an afero.Fs so the CLI works against the OS
// filesystem and tests against afero.NewMemMapFs.
package rosterfile
