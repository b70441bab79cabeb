// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	vk "github.com/goki/vulkan"
)

// FamilyIndex is an optional queue family index.
type FamilyIndex struct {
	index uint32
	valid bool
}

// Set assigns the index. Once set, further assignments
// are ignored so the first satisfying family wins.
func (f *FamilyIndex) Set(index uint32) {
	if !f.valid {
		f.index = index
		f.valid = true
	}
}

// Get returns the index; only meaningful if IsSet.
func (f FamilyIndex) Get() uint32 { return f.index }

// IsSet reports whether an index was assigned.
func (f FamilyIndex) IsSet() bool { return f.valid }

// QueueFamilyIndices holds the queue family selected for
// each submission role. Roles may alias the same family.
type QueueFamilyIndices struct {
	Graphics FamilyIndex
	Present  FamilyIndex
	Transfer FamilyIndex
	Compute  FamilyIndex
}

// Complete reports whether every role has a family.
func (q QueueFamilyIndices) Complete() bool {
	return q.Graphics.IsSet() && q.Present.IsSet() && q.Transfer.IsSet() && q.Compute.IsSet()
}

// Distinct returns the distinct family indices across all
// roles, in role order. Device creation submits one queue
// request per distinct family.
func (q QueueFamilyIndices) Distinct() []uint32 {
	var out []uint32
	for _, f := range []FamilyIndex{q.Graphics, q.Present, q.Transfer, q.Compute} {
		if !f.IsSet() {
			continue
		}
		seen := false
		for _, v := range out {
			if v == f.index {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, f.index)
		}
	}
	return out
}

// findQueueFamilies derives role indices from the queue
// family properties of an accelerator. presentSupport
// reports whether the given family can present to the
// bound surface. The scan stops at the first family set
// that satisfies every role.
func findQueueFamilies(families []vk.QueueFamilyProperties, presentSupport func(family uint32) bool) QueueFamilyIndices {
	var q QueueFamilyIndices
	for i := range families {
		f := families[i]
		f.Deref()
		idx := uint32(i)
		if f.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			q.Graphics.Set(idx)
		}
		if f.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) != 0 {
			q.Transfer.Set(idx)
		}
		if f.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
			q.Compute.Set(idx)
		}
		if presentSupport(idx) {
			q.Present.Set(idx)
		}
		if q.Complete() {
			break
		}
	}
	return q
}
