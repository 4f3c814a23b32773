package riscv

// ============================================================================
// RV32IM Instruction Encoding Architecture Constants
// ============================================================================
// These constants define the base RV32I/M instruction encoding as specified
// by the RISC-V unprivileged ISA. They are shared between the decoder, the
// disassembler, and the executor.

// Opcode field values (bits 6-0)
const (
	OpLUI    = 0x37 // Load Upper Immediate
	OpAUIPC  = 0x17 // Add Upper Immediate to PC
	OpJAL    = 0x6F // Jump and Link
	OpJALR   = 0x67 // Jump and Link Register
	OpBranch = 0x63 // Conditional branches (BEQ, BNE, ...)
	OpLoad   = 0x03 // Loads (LB, LH, LW, LBU, LHU)
	OpStore  = 0x23 // Stores (SB, SH, SW)
	OpALUImm = 0x13 // ALU-immediate (ADDI, SLTI, ...)
	OpALUReg = 0x33 // ALU-register (ADD, SUB, MUL, ...)
	OpSystem = 0x73 // ECALL/EBREAK
	OpFence  = 0x0F // FENCE
)

// ALU-register funct7 values that select the M extension / alternate
// arithmetic variant over the base R-type operation sharing the same
// funct3.
const (
	Funct7Base = 0x00
	Funct7Alt  = 0x20 // SUB, SRA
	Funct7MExt = 0x01 // MUL/MULH/.../REMU
)

// TerminationAddress is the conventional store target that signals
// end-of-program to both this simulator and the RTL reference.
const TerminationAddress = 0x10000000

// InstructionCap bounds the fetch/decode/execute loop to guard against
// runaway programs.
const InstructionCap = 1_000_000

// NOPEncoding is the canonical encoding of ADDI x0,x0,0.
const NOPEncoding = 0x00000013
