// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestFindQueueFamilies(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit)},
		{QueueFlags: vk.QueueFlags(vk.QueueTransferBit)},
	}
	q := findQueueFamilies(families, func(family uint32) bool { return family == 1 })
	if !q.Complete() {
		t.Fatalf("Complete\nhave false\nwant true (%+v)", q)
	}
	if q.Graphics.Get() != 0 || q.Compute.Get() != 0 {
		t.Fatalf("graphics/compute\nhave %d/%d\nwant 0/0", q.Graphics.Get(), q.Compute.Get())
	}
	if q.Transfer.Get() != 1 || q.Present.Get() != 1 {
		t.Fatalf("transfer/present\nhave %d/%d\nwant 1/1", q.Transfer.Get(), q.Present.Get())
	}
}

func TestFindQueueFamiliesAliased(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)},
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)},
	}
	q := findQueueFamilies(families, func(uint32) bool { return true })
	if !q.Complete() {
		t.Fatalf("Complete\nhave false\nwant true (%+v)", q)
	}
	// First satisfying family wins for every role.
	for _, f := range []FamilyIndex{q.Graphics, q.Present, q.Transfer, q.Compute} {
		if f.Get() != 0 {
			t.Fatalf("aliased family\nhave %d\nwant 0", f.Get())
		}
	}
	if d := q.Distinct(); len(d) != 1 || d[0] != 0 {
		t.Fatalf("Distinct\nhave %v\nwant [0]", d)
	}
}

func TestFindQueueFamiliesIncomplete(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)},
	}
	q := findQueueFamilies(families, func(uint32) bool { return false })
	if q.Complete() {
		t.Fatalf("Complete without present support\nhave true\nwant false")
	}
	if q.Present.IsSet() {
		t.Fatal("present family set without support")
	}
}

func TestDistinct(t *testing.T) {
	var q QueueFamilyIndices
	q.Graphics.Set(0)
	q.Present.Set(2)
	q.Transfer.Set(1)
	q.Compute.Set(2)
	want := []uint32{0, 2, 1}
	have := q.Distinct()
	if len(have) != len(want) {
		t.Fatalf("Distinct\nhave %v\nwant %v", have, want)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("Distinct\nhave %v\nwant %v", have, want)
		}
	}
}

func TestFamilyIndexFirstWins(t *testing.T) {
	var f FamilyIndex
	if f.IsSet() {
		t.Fatal("zero FamilyIndex is set")
	}
	f.Set(3)
	f.Set(7)
	if f.Get() != 3 {
		t.Fatalf("Get after second Set\nhave %d\nwant 3", f.Get())
	}
}
