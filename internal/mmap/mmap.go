// Copyright 2026 The Updraft Authors. All rights reserved.

// Package mmap provides read-only memory-mapped access
// to regular files.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only mapping of a regular file.
type File struct {
	data []byte
	path string
}

// Open maps the named file into memory.
// Only regular files can be mapped. An empty file yields
// a valid File with a zero-length mapping.
func Open(path string) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("mmap: %s: not a regular file", path)
	}
	if fi.Size() == 0 {
		return &File{path: path}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: %s: %w", path, err)
	}
	return &File{data: data, path: path}, nil
}

// Bytes returns the mapped contents.
// The slice is invalid after Close.
func (f *File) Bytes() []byte { return f.data }

// Len returns the length of the mapping.
func (f *File) Len() int { return len(f.data) }

// Path returns the path the File was opened with.
func (f *File) Path() string { return f.path }

// Close unmaps the file. Closing an already closed File
// has no effect.
func (f *File) Close() error {
	if f.data == nil {
		return nil
	}
	err := unix.Munmap(f.data)
	f.data = nil
	return err
}
