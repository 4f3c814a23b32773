package riscv

import "fmt"

var branchMnemonics = map[uint32]string{
	0: "beq", 1: "bne", 4: "blt", 5: "bge", 6: "bltu", 7: "bgeu",
}

var loadMnemonics = map[uint32]string{
	0: "lb", 1: "lh", 2: "lw", 4: "lbu", 5: "lhu",
}

var storeMnemonics = map[uint32]string{
	0: "sb", 1: "sh", 2: "sw",
}

// Disassemble renders a decoded instruction as canonical assembly
// text. The exact token layout — no spaces around commas, uppercase
// hex with no leading zeros for non-negative immediates, 8-digit
// two's-complement hex for negative ones — is a compatibility
// contract with the RTL execution log and must not drift.
func Disassemble(inst Instruction) string {
	switch inst.Opcode {
	case OpLUI:
		return fmt.Sprintf("lui %s,%s", Name(inst.Rd), fmtImm(inst.Imm>>12))

	case OpAUIPC:
		return fmt.Sprintf("auipc %s,%s", Name(inst.Rd), fmtImm(inst.Imm>>12))

	case OpJAL:
		return fmt.Sprintf("jal %s,%s", Name(inst.Rd), fmtImm(inst.Imm))

	case OpJALR:
		return fmt.Sprintf("jalr %s,%s,%s", Name(inst.Rd), Name(inst.Rs1), fmtImm(inst.Imm))

	case OpBranch:
		mnem, ok := branchMnemonics[inst.Funct3]
		if !ok {
			return unknown(inst)
		}
		return fmt.Sprintf("%s %s,%s,%s", mnem, Name(inst.Rs1), Name(inst.Rs2), fmtImm(inst.Imm))

	case OpLoad:
		mnem, ok := loadMnemonics[inst.Funct3]
		if !ok {
			return unknown(inst)
		}
		return fmt.Sprintf("%s %s,%s(%s)", mnem, Name(inst.Rd), fmtImm(inst.Imm), Name(inst.Rs1))

	case OpStore:
		mnem, ok := storeMnemonics[inst.Funct3]
		if !ok {
			return unknown(inst)
		}
		return fmt.Sprintf("%s %s,%s(%s)", mnem, Name(inst.Rs2), fmtImm(inst.Imm), Name(inst.Rs1))

	case OpALUImm:
		return disasmALUImm(inst)

	case OpALUReg:
		return disasmALUReg(inst)

	case OpSystem:
		if inst.Funct3 != 0 {
			return unknown(inst)
		}
		switch inst.Imm {
		case 0:
			return "ecall"
		case 1:
			return "ebreak"
		default:
			return unknown(inst)
		}

	case OpFence:
		return "fence"

	default:
		return unknown(inst)
	}
}

func disasmALUImm(inst Instruction) string {
	rd, rs1 := Name(inst.Rd), Name(inst.Rs1)
	switch inst.Funct3 {
	case 0:
		return fmt.Sprintf("addi %s,%s,%s", rd, rs1, fmtImm(inst.Imm))
	case 1:
		return fmt.Sprintf("slli %s,%s,%d", rd, rs1, inst.Imm&0x1F)
	case 2:
		return fmt.Sprintf("slti %s,%s,%s", rd, rs1, fmtImm(inst.Imm))
	case 3:
		return fmt.Sprintf("sltiu %s,%s,%s", rd, rs1, fmtImm(inst.Imm))
	case 4:
		return fmt.Sprintf("xori %s,%s,%s", rd, rs1, fmtImm(inst.Imm))
	case 5:
		switch inst.Funct7 {
		case Funct7Base:
			return fmt.Sprintf("srli %s,%s,%d", rd, rs1, inst.Imm&0x1F)
		case Funct7Alt:
			return fmt.Sprintf("srai %s,%s,%d", rd, rs1, inst.Imm&0x1F)
		default:
			return unknown(inst)
		}
	case 6:
		return fmt.Sprintf("ori %s,%s,%s", rd, rs1, fmtImm(inst.Imm))
	case 7:
		return fmt.Sprintf("andi %s,%s,%s", rd, rs1, fmtImm(inst.Imm))
	default:
		return unknown(inst)
	}
}

func disasmALUReg(inst Instruction) string {
	rd, rs1, rs2 := Name(inst.Rd), Name(inst.Rs1), Name(inst.Rs2)
	type key struct {
		funct3, funct7 uint32
	}
	mnemonics := map[key]string{
		{0, Funct7Base}: "add", {0, Funct7Alt}: "sub", {0, Funct7MExt}: "mul",
		{1, Funct7Base}: "sll", {1, Funct7MExt}: "mulh",
		{2, Funct7Base}: "slt", {2, Funct7MExt}: "mulhsu",
		{3, Funct7Base}: "sltu", {3, Funct7MExt}: "mulhu",
		{4, Funct7Base}: "xor", {4, Funct7MExt}: "div",
		{5, Funct7Base}: "srl", {5, Funct7Alt}: "sra", {5, Funct7MExt}: "divu",
		{6, Funct7Base}: "or", {6, Funct7MExt}: "rem",
		{7, Funct7Base}: "and", {7, Funct7MExt}: "remu",
	}
	mnem, ok := mnemonics[key{inst.Funct3, inst.Funct7}]
	if !ok {
		return unknown(inst)
	}
	return fmt.Sprintf("%s %s,%s,%s", mnem, rd, rs1, rs2)
}

func unknown(inst Instruction) string {
	return fmt.Sprintf("unknown(0x%08X)", inst.Raw)
}

// fmtImm formats a sign-extended 32-bit immediate the way the RTL
// trace expects: non-negative values as uppercase hex with no leading
// zeros, negative values as the full 8-digit two's-complement pattern.
func fmtImm(v uint32) string {
	if int32(v) < 0 {
		return fmt.Sprintf("0x%08X", v)
	}
	return fmt.Sprintf("0x%X", v)
}
