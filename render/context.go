// Copyright 2026 The Updraft Authors. All rights reserved.

package render

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"updraft/internal/diag"
)

// Queues holds one queue handle per submission role.
// Roles drawn from the same family share the underlying
// queue.
type Queues struct {
	Graphics vk.Queue
	Present  vk.Queue
	Transfer vk.Queue
	Compute  vk.Queue
}

// Context owns the backend handles that survive a window
// resize: the instance, the selected accelerator, and the
// logical device with its role queues.
type Context struct {
	log *diag.Logger

	instance vk.Instance
	gpu      vk.PhysicalDevice
	gpuName  string

	device   vk.Device
	families QueueFamilyIndices
	queues   Queues
}

func newContext(log *diag.Logger) *Context {
	return &Context{log: log}
}

// applicationInfo identifies the application and the API
// revision it targets.
func applicationInfo() vk.ApplicationInfo {
	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   "updraft\x00",
		ApplicationVersion: vk.MakeVersion(0, 1, 0),
		PEngineName:        "updraft\x00",
		EngineVersion:      vk.MakeVersion(0, 1, 0),
		ApiVersion:         vk.MakeVersion(1, 0, 0),
	}
}

// createConnection creates the instance with every
// extension the loader advertises enabled. Calling it on
// a Context that has an instance has no effect.
func (c *Context) createConnection(required []string) error {
	if c.instance != nil {
		c.log.Infof("render: instance exists, skipping")
		return nil
	}
	var count uint32
	vk.EnumerateInstanceExtensionProperties("", &count, nil)
	props := make([]vk.ExtensionProperties, count)
	vk.EnumerateInstanceExtensionProperties("", &count, props)
	names := make([]string, 0, count)
	for i := range props {
		props[i].Deref()
		name := vk.ToString(props[i].ExtensionName[:])
		names = append(names, name+"\x00")
		c.log.Verbosef("render: instance extension available: %s", name)
	}
	for _, req := range required {
		c.log.Verbosef("render: instance extension required: %s", req)
	}

	appInfo := applicationInfo()
	info := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(names)),
		PpEnabledExtensionNames: names,
	}
	var instance vk.Instance
	if res := vk.CreateInstance(&info, nil, &instance); res != vk.Success {
		return fmt.Errorf("render: create instance: %w", vk.Error(res))
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return fmt.Errorf("render: init instance: %w", err)
	}
	c.instance = instance
	c.log.Infof("render: instance created")
	return nil
}

// selectAccelerator picks the first enumerated device
// that is a discrete or integrated GPU with geometry
// shader support. Calling it on a Context that has an
// accelerator has no effect.
func (c *Context) selectAccelerator() error {
	if c.gpu != nil {
		c.log.Infof("render: accelerator selected, skipping")
		return nil
	}
	var count uint32
	vk.EnumeratePhysicalDevices(c.instance, &count, nil)
	if count == 0 {
		return fmt.Errorf("%w: no devices enumerated", ErrNoAccelerator)
	}
	devices := make([]vk.PhysicalDevice, count)
	vk.EnumeratePhysicalDevices(c.instance, &count, devices)
	for _, dev := range devices {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(dev, &props)
		props.Deref()
		var feats vk.PhysicalDeviceFeatures
		vk.GetPhysicalDeviceFeatures(dev, &feats)
		feats.Deref()
		name := vk.ToString(props.DeviceName[:])
		c.log.Verbosef("render: accelerator candidate: %s (type %d, geometry shader %t)",
			name, props.DeviceType, feats.GeometryShader == vk.True)
		suitable := props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu ||
			props.DeviceType == vk.PhysicalDeviceTypeIntegratedGpu
		if suitable && feats.GeometryShader == vk.True {
			c.gpu = dev
			c.gpuName = name
			break
		}
	}
	if c.gpu == nil {
		return ErrNoAccelerator
	}
	c.log.Infof("render: accelerator selected: %s", c.gpuName)
	return nil
}

// createDevice creates the logical device with one queue
// request per distinct family and retrieves the four role
// queues. It requires a bound surface to resolve present
// support. Calling it on a Context that has a device has
// no effect.
func (c *Context) createDevice(surface vk.Surface) error {
	if c.device != nil {
		c.log.Infof("render: device exists, skipping")
		return nil
	}
	if surface == vk.NullSurface {
		return ErrNoSurface
	}
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(c.gpu, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(c.gpu, &count, families)
	c.families = findQueueFamilies(families, func(family uint32) bool {
		var supported vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(c.gpu, family, surface, &supported)
		return supported.B()
	})
	if !c.families.Complete() {
		return ErrIncompleteQueues
	}

	priority := []float32{1}
	distinct := c.families.Distinct()
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(distinct))
	for _, family := range distinct {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: priority,
		})
	}
	extensions := []string{vk.KhrSwapchainExtensionName + "\x00"}
	var features vk.PhysicalDeviceFeatures
	features.GeometryShader = vk.True
	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{features},
	}
	var device vk.Device
	if res := vk.CreateDevice(c.gpu, &info, nil, &device); res != vk.Success {
		return fmt.Errorf("render: create device: %w", vk.Error(res))
	}
	c.device = device

	get := func(f FamilyIndex) vk.Queue {
		var q vk.Queue
		vk.GetDeviceQueue(device, f.Get(), 0, &q)
		return q
	}
	c.queues = Queues{
		Graphics: get(c.families.Graphics),
		Present:  get(c.families.Present),
		Transfer: get(c.families.Transfer),
		Compute:  get(c.families.Compute),
	}
	c.log.Infof("render: device created, %d distinct queue families", len(distinct))
	return nil
}

// close releases the device and the instance. It is the
// process-exit counterpart of createConnection and
// createDevice; resize teardown never reaches here.
func (c *Context) close() {
	if c.device != nil {
		vk.DeviceWaitIdle(c.device)
		vk.DestroyDevice(c.device, nil)
		c.device = nil
		c.queues = Queues{}
		c.log.Verbosef("render: device released")
	}
	if c.instance != nil {
		vk.DestroyInstance(c.instance, nil)
		c.instance = nil
		c.gpu = nil
		c.log.Verbosef("render: instance released")
	}
}
