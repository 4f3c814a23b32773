package riscv

// Instruction is the decoded form of one 32-bit RV32IM encoding. It is
// a pure, immutable snapshot of the bitfields the executor and
// disassembler need; decoding never fails and never touches machine
// state.
type Instruction struct {
	Raw    uint32 // original 32-bit encoding, kept for the trace
	Opcode uint32
	Rd     int
	Rs1    int
	Rs2    int
	Funct3 uint32
	Funct7 uint32
	Imm    uint32 // sign-extended immediate, stored as unsigned two's complement
}

// Decode extracts the fields of a 32-bit instruction word per the
// RV32I/M encoding. Unrecognized opcodes still decode cleanly: Imm is
// 0 and Opcode carries whatever was in bits 6-0, leaving the
// unknown-encoding handling to the disassembler and executor.
func Decode(word uint32) Instruction {
	inst := Instruction{
		Raw:    word,
		Opcode: word & 0x7F,
		Rd:     int((word >> 7) & 0x1F),
		Funct3: (word >> 12) & 0x7,
		Rs1:    int((word >> 15) & 0x1F),
		Rs2:    int((word >> 20) & 0x1F),
		Funct7: (word >> 25) & 0x7F,
	}

	switch inst.Opcode {
	case OpLUI, OpAUIPC:
		inst.Imm = word & 0xFFFFF000

	case OpJAL:
		imm := ((word >> 31) & 0x1) << 20
		imm |= ((word >> 12) & 0xFF) << 12
		imm |= ((word >> 20) & 0x1) << 11
		imm |= ((word >> 21) & 0x3FF) << 1
		inst.Imm = signExtend(imm, 21)

	case OpJALR, OpLoad, OpALUImm, OpSystem:
		inst.Imm = signExtend((word>>20)&0xFFF, 12)

	case OpBranch:
		imm := ((word >> 31) & 0x1) << 12
		imm |= ((word >> 7) & 0x1) << 11
		imm |= ((word >> 25) & 0x3F) << 5
		imm |= ((word >> 8) & 0xF) << 1
		inst.Imm = signExtend(imm, 13)

	case OpStore:
		imm := ((word >> 25) & 0x7F) << 5
		imm |= (word >> 7) & 0x1F
		inst.Imm = signExtend(imm, 12)

	default:
		inst.Imm = 0
	}

	return inst
}

// signExtend sign-extends the low `bits` bits of value to a full
// 32-bit two's-complement representation.
func signExtend(value uint32, bits int) uint32 {
	shift := 32 - bits
	return uint32(int32(value<<shift) >> shift)
}
