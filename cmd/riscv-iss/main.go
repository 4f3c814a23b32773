// Command riscv-iss runs an RV32IM instruction-set simulator over an
// ELF executable and writes a deterministic execution trace.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/riscv-iss/config"
	"github.com/lookbusy1344/riscv-iss/driver"
	"github.com/lookbusy1344/riscv-iss/loader"
	"github.com/lookbusy1344/riscv-iss/riscv"
)

// Build-time version metadata, overridden via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const stackPointerReg = 2

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "riscv-iss:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputPath string
		memFile    string
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "riscv-iss <executable> <text_start> <stack_base> <stack_size>",
		Short: "RV32IM instruction set simulator",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(args, outputPath, memFile, configPath, verbose)
		},
	}

	root.Flags().StringVarP(&outputPath, "output", "o", "iss.log", "trace output file")
	root.Flags().StringVarP(&memFile, "mem-file", "m", "", "preload memory from a hex word file")
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file (defaults to the platform config path)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a one-line run summary to stderr")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("riscv-iss %s (commit %s, built %s)\n", Version, Commit, Date)
			return nil
		},
	}
}

func runSimulation(args []string, outputPath, memFile, configPath string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	execPath := args[0]
	textStart, err := parseHex(args[1], "text_start")
	if err != nil {
		return err
	}
	stackBase, err := parseHex(args[2], "stack_base")
	if err != nil {
		return err
	}
	stackSize, err := parseHex(args[3], "stack_size")
	if err != nil {
		return err
	}

	mem := riscv.NewMemory()

	if memFile != "" {
		if err := loader.LoadHexFile(memFile, cfg.Execution.MemBaseAddr, mem); err != nil {
			return err
		}
	}

	image, err := loader.LoadELF(execPath, textStart, mem)
	if err != nil {
		return err
	}

	regs := riscv.NewRegisterFile()
	regs.Write(stackPointerReg, stackBase+stackSize)

	machine := &driver.Machine{
		Regs:      regs,
		Mem:       mem,
		PC:        image.TextStart,
		TextStart: image.TextStart,
		TextSize:  image.TextSize,
	}

	d := driver.New(machine)
	d.Cap = cfg.Execution.InstructionCap

	trace, result, err := d.Run()
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath) // #nosec G304 -- user-specified output path
	if err != nil {
		return fmt.Errorf("creating trace output %q: %w", outputPath, err)
	}
	defer out.Close()

	if _, err := trace.WriteTo(out); err != nil {
		return fmt.Errorf("writing trace output %q: %w", outputPath, err)
	}

	if verbose || cfg.Execution.Verbose {
		fmt.Fprintf(os.Stderr, "riscv-iss: retired=%d stop=%q output=%s\n", result.Retired, result.Reason, outputPath)
	}

	return nil
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func parseHex(s, name string) (uint32, error) {
	v, err := strconv.ParseUint(trimHexPrefix(s), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return uint32(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
