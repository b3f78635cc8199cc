package tensor

import "fmt"

// Zeros creates a buffer filled with zeros.
func Zeros(shape Shape, dtype DataType, device Device) (*Buffer, error) {
	return NewBuffer(shape, dtype, device)
}

// Ones creates a buffer filled with ones. The execution context uses it to
// synthesize seed gradients shaped like each forward output.
func Ones(shape Shape, dtype DataType, device Device) (*Buffer, error) {
	return Full(shape, 1.0, dtype, device)
}

// Full creates a buffer filled with the given value, converted to dtype.
func Full(shape Shape, value float64, dtype DataType, device Device) (*Buffer, error) {
	b, err := NewBuffer(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	switch dtype {
	case Float32:
		data := b.AsFloat32()
		v := float32(value)
		for i := range data {
			data[i] = v
		}
	case Float64:
		data := b.AsFloat64()
		for i := range data {
			data[i] = value
		}
	}
	return b, nil
}

// FromSlice creates a buffer from a Go slice. The slice is copied; the
// buffer owns its storage exclusively.
func FromSlice[T DType](data []T, shape Shape, device Device) (*Buffer, error) {
	var dummy T
	dtype := inferDataType(dummy)

	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	b, err := NewBuffer(shape, dtype, device)
	if err != nil {
		return nil, err
	}

	switch dtype {
	case Float32:
		copy(b.AsFloat32(), any(data).([]float32))
	case Float64:
		copy(b.AsFloat64(), any(data).([]float64))
	}
	return b, nil
}

// FromHost adapts a host-native array into a canonical buffer. Host arrays
// carry the reversed dimension-ordering convention; the adaptation is a
// one-time reinterpretation of the flat data under the reversed shape,
// performed only at this boundary. The engine's internal layout stays
// canonical row-major throughout.
func FromHost[T DType](data []T, hostShape Shape, device Device) (*Buffer, error) {
	return FromSlice(data, hostShape.Reversed(), device)
}

// ToHost returns the buffer's flat data together with the host-convention
// (reversed) shape. The inverse of FromHost.
func ToHost[T DType](b *Buffer) ([]T, Shape, error) {
	var dummy T
	if inferDataType(dummy) != b.DType() {
		return nil, nil, fmt.Errorf("buffer dtype is %s, not %s", b.DType(), inferDataType(dummy))
	}

	out := make([]T, b.NumElements())
	switch b.DType() {
	case Float32:
		copy(any(out).([]float32), b.AsFloat32())
	case Float64:
		copy(any(out).([]float64), b.AsFloat64())
	}
	return out, b.Shape().Reversed(), nil
}
