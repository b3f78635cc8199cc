package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// liveBuffers counts allocated-but-unreleased buffers. The evaluator's
// liveness tests use it to verify that interior buffers are retired.
var liveBuffers atomic.Int64

// LiveBuffers returns the number of buffers currently allocated and not yet
// released.
func LiveBuffers() int64 {
	return liveBuffers.Load()
}

// Buffer owns a contiguous block of numeric storage plus shape metadata.
// It is the unit of data flowing along graph edges. Storage is exclusively
// owned, row-major, with length = product(shape) * element size.
type Buffer struct {
	data     []byte
	shape    Shape
	stride   []int
	dtype    DataType
	device   Device
	released bool
}

// NewBuffer allocates a zero-filled buffer with the given shape and type.
func NewBuffer(shape Shape, dtype DataType, device Device) (*Buffer, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()
	liveBuffers.Add(1)

	return &Buffer{
		data:   make([]byte, byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the buffer's shape.
func (b *Buffer) Shape() Shape {
	return b.shape
}

// Strides returns the buffer's memory strides.
func (b *Buffer) Strides() []int {
	return b.stride
}

// DType returns the buffer's data type.
func (b *Buffer) DType() DataType {
	return b.dtype
}

// Device returns the buffer's compute device.
func (b *Buffer) Device() Device {
	return b.device
}

// NumElements returns the total number of elements.
func (b *Buffer) NumElements() int {
	return b.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (b *Buffer) ByteSize() int {
	return b.NumElements() * b.dtype.Size()
}

// AsFloat32 interprets the data as []float32.
// Panics if the buffer's dtype is not Float32.
func (b *Buffer) AsFloat32() []float32 {
	if b.dtype != Float32 {
		panic(fmt.Sprintf("buffer dtype is %s, not float32", b.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the buffer's dtype is not Float64.
func (b *Buffer) AsFloat64() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("buffer dtype is %s, not float64", b.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&b.data[0])), b.NumElements())
}

// Clone returns a deep copy of the buffer with its own storage.
func (b *Buffer) Clone() *Buffer {
	liveBuffers.Add(1)
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{
		data:   data,
		shape:  b.shape.Clone(),
		stride: append([]int(nil), b.stride...),
		dtype:  b.dtype,
		device: b.device,
	}
}

// Release retires the buffer and drops its storage. The evaluator calls it
// for interior buffers once no downstream consumer needs them. Releasing a
// buffer twice is a no-op.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.data = nil
	liveBuffers.Add(-1)
}

// Released reports whether the buffer's storage has been retired.
func (b *Buffer) Released() bool {
	return b.released
}
