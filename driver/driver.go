package driver

import (
	"fmt"

	"github.com/lookbusy1344/riscv-iss/riscv"
)

// Machine bundles the architectural state a Driver runs against: the
// register file, memory, program counter, and the bounds of the
// loaded text section used for the Driver's out-of-bounds check.
type Machine struct {
	Regs      *riscv.RegisterFile
	Mem       *riscv.Memory
	PC        uint32
	TextStart uint32
	TextSize  uint32
}

// StopReason names why a run ended, for the optional verbose summary
// (never written to the trace itself).
type StopReason string

const (
	StopOutOfBounds  StopReason = "pc left text section"
	StopPadding      StopReason = "fetched padding word"
	StopEnvCall      StopReason = "ecall"
	StopBreakpoint   StopReason = "ebreak"
	StopTermination  StopReason = "store to termination address"
	StopInstructionCap StopReason = "instruction cap reached"
)

// Result summarizes a completed run.
type Result struct {
	Retired uint64
	Reason  StopReason
}

// Driver owns the fetch/decode/execute loop and the trace it
// produces. It is the only component that advances the retirement
// count, filters NOPs out of the trace, and enforces the instruction
// cap and PC bounds check.
type Driver struct {
	Machine *Machine
	Cap     uint64
}

// New returns a Driver with the default instruction cap.
func New(m *Machine) *Driver {
	return &Driver{Machine: m, Cap: riscv.InstructionCap}
}

// Run executes instructions until one of the termination conditions
// in the fetch/decode/execute loop fires. It returns the buffered
// trace and a summary of why the run stopped. A misaligned PC at
// fetch time is the only fatal error this loop can produce.
func (d *Driver) Run() (*Trace, Result, error) {
	trace := NewTrace()
	m := d.Machine
	var retired uint64

	for retired < d.Cap {
		if m.PC < m.TextStart || m.PC >= m.TextStart+m.TextSize {
			return trace, Result{Retired: retired, Reason: StopOutOfBounds}, nil
		}

		if m.PC%4 != 0 {
			return trace, Result{Retired: retired, Reason: StopOutOfBounds}, fmt.Errorf("misaligned PC: 0x%08X", m.PC)
		}

		word := m.Mem.ReadWord(m.PC)

		if word == 0x00000000 || word == 0xFFFFFFFF {
			return trace, Result{Retired: retired, Reason: StopPadding}, nil
		}

		if word == riscv.NOPEncoding {
			m.PC += 4
			retired++
			continue
		}

		pcBefore := m.PC
		inst := riscv.Decode(word)
		cont, effects := riscv.Execute(m.Regs, m.Mem, &m.PC, inst)
		disasm := riscv.Disassemble(inst)

		trace.Append(formatLine(pcBefore, word, disasm, effects))
		retired++

		if !cont {
			return trace, Result{Retired: retired, Reason: stopReasonFor(inst)}, nil
		}
	}

	return trace, Result{Retired: retired, Reason: StopInstructionCap}, nil
}

func stopReasonFor(inst riscv.Instruction) StopReason {
	if inst.Opcode == riscv.OpSystem {
		if inst.Imm == 1 {
			return StopBreakpoint
		}
		return StopEnvCall
	}
	return StopTermination
}

func formatLine(pc, inst uint32, disasm string, effects []string) string {
	line := fmt.Sprintf("0x%08X;0x%08X;%s;", pc, inst, disasm)
	for i, e := range effects {
		if i > 0 {
			line += ";"
		}
		line += e
	}
	return line
}
