// Copyright 2026 The Updraft Authors. All rights reserved.

package mmap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	want := []byte("0123456789abcdef")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(f.Bytes(), want) {
		t.Fatalf("Bytes\nhave %q\nwant %q", f.Bytes(), want)
	}
	if f.Len() != len(want) {
		t.Fatalf("Len\nhave %d\nwant %d", f.Len(), len(want))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if f.Bytes() != nil {
		t.Fatal("Bytes after Close is not nil")
	}
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Len() != 0 {
		t.Fatalf("Len\nhave %d\nwant 0", f.Len())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestOpenIrregular(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("Open on a directory did not fail")
	}
}

func TestOpenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	if _, err := Open(path); !os.IsNotExist(err) {
		t.Fatalf("Open on a missing file\nhave %v\nwant ErrNotExist", err)
	}
}
