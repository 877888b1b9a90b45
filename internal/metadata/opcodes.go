package metadata

// OpCode is an IL operation mnemonic as emitted by the metadata reader.
type OpCode string

const (
	OpNop    OpCode = "nop"
	OpRet    OpCode = "ret"
	OpDup    OpCode = "dup"
	OpLdarg0 OpCode = "ldarg.0"

	// Calls.
	OpCall     OpCode = "call"
	OpCallvirt OpCode = "callvirt"
	OpCalli    OpCode = "calli"
	OpNewobj   OpCode = "newobj"

	// Field access.
	OpLdfld   OpCode = "ldfld"
	OpLdflda  OpCode = "ldflda"
	OpStfld   OpCode = "stfld"
	OpLdsfld  OpCode = "ldsfld"
	OpLdsflda OpCode = "ldsflda"
	OpStsfld  OpCode = "stsfld"

	// Constant loads.
	OpLdstr   OpCode = "ldstr"
	OpLdcI4   OpCode = "ldc.i4"
	OpLdcI4S  OpCode = "ldc.i4.s"
	OpLdcI4M1 OpCode = "ldc.i4.m1"
	OpLdcI40  OpCode = "ldc.i4.0"
	OpLdcI41  OpCode = "ldc.i4.1"
	OpLdcI42  OpCode = "ldc.i4.2"
	OpLdcI43  OpCode = "ldc.i4.3"
	OpLdcI44  OpCode = "ldc.i4.4"
	OpLdcI45  OpCode = "ldc.i4.5"
	OpLdcI46  OpCode = "ldc.i4.6"
	OpLdcI47  OpCode = "ldc.i4.7"
	OpLdcI48  OpCode = "ldc.i4.8"
	OpLdcI8   OpCode = "ldc.i8"
	OpLdcR4   OpCode = "ldc.r4"
	OpLdcR8   OpCode = "ldc.r8"

	// Conversions that may sit between a constant load and a setter call.
	OpBox     OpCode = "box"
	OpConvI4  OpCode = "conv.i4"
	OpConvI8  OpCode = "conv.i8"
	OpConvR4  OpCode = "conv.r4"
	OpConvR8  OpCode = "conv.r8"
)

// smallIntOps maps the short-form integer constant opcodes to their values.
var smallIntOps = map[OpCode]int64{
	OpLdcI4M1: -1,
	OpLdcI40:  0,
	OpLdcI41:  1,
	OpLdcI42:  2,
	OpLdcI43:  3,
	OpLdcI44:  4,
	OpLdcI45:  5,
	OpLdcI46:  6,
	OpLdcI47:  7,
	OpLdcI48:  8,
}

// SmallIntValue returns the constant encoded in a short-form ldc.i4 opcode.
func (op OpCode) SmallIntValue() (int64, bool) {
	v, ok := smallIntOps[op]
	return v, ok
}

// IsFieldLoad reports whether the opcode loads a field by value or by
// reference, instance or static.
func (op OpCode) IsFieldLoad() bool {
	switch op {
	case OpLdfld, OpLdflda, OpLdsfld, OpLdsflda:
		return true
	}
	return false
}

// IsFieldStore reports whether the opcode stores into a field.
func (op OpCode) IsFieldStore() bool {
	return op == OpStfld || op == OpStsfld
}

// IsFieldAccess reports whether the opcode touches a field at all.
func (op OpCode) IsFieldAccess() bool {
	return op.IsFieldLoad() || op.IsFieldStore()
}

// IsCall reports whether the opcode transfers control to a member target
// (direct, virtual, or indirect).
func (op OpCode) IsCall() bool {
	switch op {
	case OpCall, OpCallvirt, OpCalli:
		return true
	}
	return false
}
