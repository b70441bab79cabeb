// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"strings"
	"testing"

	vk "github.com/goki/vulkan"
)

func TestApplicationInfo(t *testing.T) {
	info := applicationInfo()
	if want := vk.MakeVersion(1, 0, 0); info.ApiVersion != want {
		t.Fatalf("ApiVersion\nhave %d\nwant %d", info.ApiVersion, want)
	}
	// The binding passes strings to C verbatim.
	for _, s := range []string{info.PApplicationName, info.PEngineName} {
		if !strings.HasSuffix(s, "\x00") {
			t.Fatalf("%q is not null terminated", s)
		}
	}
}
