// Package pgrep provides a GPU-accelerated, whole-string regular
// expression matcher.
//
// pgrep compiles a byte-level regular expression into a parallel DFA
// (PDFA) whose transition function is associative, then decides
// whole-input acceptance via a two-kernel scan/reduce strategy driven
// by a device abstraction (package device) — a CPU-backed
// implementation (package device/cpu) ships by default; a real GPU
// backend can be substituted via CompileOnDevice.
//
// Basic usage:
//
//	re, err := pgrep.Compile(`a(bc)*a`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer re.Close()
//
//	ok, err := re.Match([]byte("abcbca"))
//
// Unlike stdlib regexp, pgrep has no Find/FindIndex/submatch API: it
// only ever answers "does the entire input match" (spec's whole-string,
// anchor-implicit acceptance), never search.
package pgrep

import (
	"context"

	"github.com/parareduce/pgrep/device"
	"github.com/parareduce/pgrep/engine"
)

// Regex is a compiled pattern ready to match input. A Regex is safe
// for concurrent Match calls; it must not be used after Close.
type Regex struct {
	e         *engine.Engine
	cp        *engine.CompiledPattern
	blockSize int
}

// Compile compiles pattern using DefaultConfig and the default
// CPU-backed device.
//
// Example:
//
//	re, err := pgrep.Compile(`[A-Za-z_][A-Za-z0-9_]*`)
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles pattern and panics if it fails. Useful for
// patterns known to be valid at compile time.
//
// Example:
//
//	var ident = pgrep.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("pgrep: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// DefaultConfig returns the engine.Config used by Compile.
func DefaultConfig() engine.Config {
	return engine.DefaultConfig()
}

// CompileWithConfig compiles pattern with a custom Config, running on
// the default CPU-backed device.
//
// Example:
//
//	cfg := pgrep.DefaultConfig()
//	cfg.BlockSize = 4096
//	re, err := pgrep.CompileWithConfig(`a*b`, cfg)
func CompileWithConfig(pattern string, cfg engine.Config) (*Regex, error) {
	e, err := engine.New()
	if err != nil {
		return nil, err
	}
	return compileOn(e, pattern, cfg)
}

// CompileOnDevice compiles pattern to run its matches on d — the entry
// point for substituting a real GPU backend for the default CPU one.
func CompileOnDevice(d device.Device, pattern string, cfg engine.Config) (*Regex, error) {
	e, err := engine.NewWithDevice(d)
	if err != nil {
		return nil, err
	}
	return compileOn(e, pattern, cfg)
}

func compileOn(e *engine.Engine, pattern string, cfg engine.Config) (*Regex, error) {
	cp, err := e.Compile(pattern, cfg)
	if err != nil {
		e.Destroy()
		return nil, err
	}
	return &Regex{e: e, cp: cp, blockSize: cfg.BlockSize}, nil
}

// Match reports whether input is accepted in its entirety by re — the
// implicit-anchor whole-string acceptance test (spec §6), never a
// search for a match anywhere inside input.
//
// Example:
//
//	re := pgrep.MustCompile(`a*b`)
//	ok, err := re.Match([]byte("aaab"))
func (re *Regex) Match(input []byte) (bool, error) {
	return re.e.MatchWithBlockSize(context.Background(), re.cp, input, re.blockSize)
}

// MatchString is Match over a string.
func (re *Regex) MatchString(input string) (bool, error) {
	return re.Match([]byte(input))
}

// Close releases re's underlying device resources. Idempotent: calling
// Close more than once is a no-op.
func (re *Regex) Close() error {
	if re.e == nil {
		return nil
	}
	re.e.Destroy()
	re.e = nil
	return nil
}
