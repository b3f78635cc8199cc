package tensor

import "fmt"

// deviceKind discriminates CPU from accelerator devices.
type deviceKind int

const (
	kindCPU deviceKind = iota
	kindGPU
)

// Device is an opaque descriptor identifying the compute device a buffer
// lives on. It is either the CPU or an accelerator with an index, and is
// fixed at execution-context construction.
type Device struct {
	kind  deviceKind
	index int
}

// CPUDevice returns the descriptor for the host CPU.
func CPUDevice() Device {
	return Device{kind: kindCPU}
}

// GPUDevice returns the descriptor for the accelerator with the given index.
func GPUDevice(index int) Device {
	return Device{kind: kindGPU, index: index}
}

// IsCPU reports whether the device is the host CPU.
func (d Device) IsCPU() bool {
	return d.kind == kindCPU
}

// Index returns the accelerator index. It is 0 for the CPU device.
func (d Device) Index() int {
	return d.index
}

// String returns a human-readable device name.
func (d Device) String() string {
	if d.kind == kindCPU {
		return "CPU"
	}
	return fmt.Sprintf("GPU(%d)", d.index)
}
