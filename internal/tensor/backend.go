package tensor

// Backend defines the kernel interface the evaluator dispatches operator
// computations through. Shape and dtype validation happens at the pass
// boundary before kernels run; kernels treat violations as programmer
// errors and panic.
//
// Implementations:
//   - cpu: pure Go with vectorized float32/float64 kernels
type Backend interface {
	// Element-wise binary operations. Operands must share shape and dtype.
	Add(a, b *Buffer) *Buffer
	Sub(a, b *Buffer) *Buffer
	Mul(a, b *Buffer) *Buffer
	Div(a, b *Buffer) *Buffer

	// Matrix operations (2D).
	MatMul(a, b *Buffer) *Buffer
	Transpose2D(x *Buffer) *Buffer

	// Scalar operations. The constant is converted to the operand dtype.
	Scale(x *Buffer, c float64) *Buffer
	AddScalar(x *Buffer, c float64) *Buffer

	// Element-wise unary math.
	ReLU(x *Buffer) *Buffer
	Sigmoid(x *Buffer) *Buffer
	Tanh(x *Buffer) *Buffer
	Exp(x *Buffer) *Buffer
	Log(x *Buffer) *Buffer

	// Accumulate performs dst += src in place. Both operands must share
	// shape and dtype; the sum stays in that dtype with no upcast. The
	// backward pass uses it for fan-in gradient accumulation.
	Accumulate(dst, src *Buffer)

	// Metadata
	Name() string
	Device() Device
}
