// Package loader populates a riscv.Memory image from an ELF executable
// and an optional raw hex word file, and reports the text section
// bounds for the driver's bounds check. The entry point is not read
// from the ELF file; the caller supplies it as textStart.
package loader

import (
	"bufio"
	"debug/elf"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lookbusy1344/riscv-iss/riscv"
)

// Image describes the memory layout a loaded program hands to the
// driver: where the text section starts and how large it is. The
// entry point is not part of the ELF file as far as this loader is
// concerned — _start is located by the caller and supplied as
// textStart, matching how the reference RTL testbench is invoked.
type Image struct {
	TextStart uint32
	TextSize  uint32
}

// dataSectionNames lists the ELF sections (beyond .text) this loader
// materializes into memory at their own section virtual address.
// They are optional and silently skipped if the binary doesn't carry
// them.
var dataSectionNames = []string{".data", ".rodata"}

// LoadELF reads an ELF32 executable and writes its .text section into
// mem at textStart — not at the section's own ELF virtual address,
// since the caller (not the linker) decides where text lives for this
// run — followed by .data, .rodata, and .bss at their own section
// addresses. .text must be present; its absence is a fatal error, as
// are a file that cannot be opened as ELF and a section whose data
// cannot be read. .bss is zero-filled by touching its
// range so later reads see zero, matching the load-time behavior of a
// real ELF loader even though this Memory already reads unwritten
// addresses as zero.
func LoadELF(path string, textStart uint32, mem *riscv.Memory) (Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("opening ELF file %q: %w", path, err)
	}
	defer f.Close()

	text := f.Section(".text")
	if text == nil {
		return Image{}, fmt.Errorf("ELF file %q has no .text section", path)
	}

	textData, err := text.Data()
	if err != nil {
		return Image{}, fmt.Errorf("reading .text section of %q: %w", path, err)
	}
	mem.LoadBytes(textStart, textData)

	for _, name := range dataSectionNames {
		sec := f.Section(name)
		if sec == nil {
			continue
		}
		data, err := sec.Data()
		if err != nil {
			return Image{}, fmt.Errorf("reading %s section of %q: %w", name, path, err)
		}
		mem.LoadBytes(uint32(sec.Addr), data)
	}

	if bss := f.Section(".bss"); bss != nil {
		zeros := make([]byte, bss.Size)
		mem.LoadBytes(uint32(bss.Addr), zeros)
	}

	return Image{
		TextStart: textStart,
		TextSize:  uint32(text.Size),
	}, nil
}

// LoadHexFile preloads mem with one 32-bit little-endian word per
// line, starting at base, advancing by 4 bytes per line. Blank lines
// and lines beginning with '#' are skipped. It is applied before the
// ELF image so ELF section data always takes precedence over a
// preloaded word at the same address.
func LoadHexFile(path string, base uint32, mem *riscv.Memory) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening hex file %q: %w", path, err)
	}
	defer f.Close()

	addr := base
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 32)
		if err != nil {
			return fmt.Errorf("%s:%d: invalid hex word %q: %w", path, lineNo, line, err)
		}
		mem.WriteWord(addr, uint32(word))
		addr += 4
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading hex file %q: %w", path, err)
	}
	return nil
}
