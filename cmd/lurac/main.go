// Command lurac is the interpreter's CLI surface: a REPL when invoked
// with no arguments, a one-shot file runner when given a single path,
// and a usage diagnostic for anything else (spec.md §6).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/wrenfield/lurac/internal/compiler"
	"github.com/wrenfield/lurac/internal/config"
	"github.com/wrenfield/lurac/internal/parser"
	"github.com/wrenfield/lurac/internal/runlog"
	"github.com/wrenfield/lurac/internal/vm"
)

var (
	traceExecution = flag.Bool("trace", false, "trace each instruction as it executes")
	disassemble    = flag.Bool("disassemble", false, "print the compiled chunk before running it")
)

func main() {
	flag.Parse()
	args := flag.Args()

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "lurac: error loading %s: %v\n", config.FileName, err)
	}
	applyFlagOverrides(&cfg)

	switch len(args) {
	case 0:
		runREPL(cfg)
	case 1:
		os.Exit(runFile(args[0], cfg))
	default:
		fmt.Println("Usage: lurac [script]")
		os.Exit(1)
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if isFlagSet("trace") {
		cfg.TraceExecution = *traceExecution
	}
	if isFlagSet("disassemble") {
		cfg.Disassemble = *disassemble
	}
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func newVM(cfg config.Config) *vm.VM {
	m := vm.New(os.Stdout, os.Stderr)
	m.TraceExecution = cfg.TraceExecution
	m.Disassemble = cfg.Disassemble
	return m
}

func runREPL(cfg config.Config) {
	runID := runlog.NewRunID()
	machine := newVM(cfg)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		interpret(line, machine, runID)
	}
}

func runFile(path string, cfg config.Config) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lurac: could not open file %q: %v\n", path, err)
		return 1
	}

	runID := runlog.NewRunID()
	machine := newVM(cfg)

	switch interpret(string(source), machine, runID) {
	case vm.OK:
		return 0
	default:
		return 1
	}
}

// interpret runs one source unit (a REPL line or a whole file)
// through the lex/parse/compile/run pipeline, logging its lifecycle
// and returning the VM's outcome (CompileError if parsing or
// compilation failed and the VM was never run).
func interpret(source string, machine *vm.VM, runID string) vm.Result {
	runlog.Scanning(runID)

	p := parser.New(source, os.Stderr)
	stmts := p.Parse()
	if p.HadError() {
		runlog.CompileFailed(runID)
		return vm.CompileError
	}

	chunk, ok := compiler.Compile(stmts, os.Stderr)
	if !ok {
		runlog.CompileFailed(runID)
		return vm.CompileError
	}
	runlog.Compiled(runID, chunk.Count())

	result := machine.Interpret(chunk)
	runlog.Halted(runID, result.String())
	return result
}
