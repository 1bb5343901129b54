package engine

import "errors"

// Config controls how a pattern is compiled and matched: the device
// picked to run the reduction, and the tuning knobs spec §4.4/§5 name
// (PDFA state limit, reduction block size).
//
// Example:
//
//	cfg := engine.DefaultConfig()
//	cfg.BlockSize = 4096
//	e, err := engine.New()
//	cp, err := e.Compile("a(bc)*a", cfg)
//	ok, err := e.MatchWithBlockSize(ctx, cp, input, cfg.BlockSize)
type Config struct {
	// StateLimit caps the number of distinct parallel states Build may
	// discover (spec §4.4's state_limit). Default: pdfa.DefaultStateLimit.
	StateLimit int

	// BlockSize is itemsPerBlock for both reduction kernels: how many
	// bytes (initial kernel) or parallel states (tree-reduce kernel)
	// each block folds per pass. Larger blocks mean fewer passes but
	// less parallelism. Default: 256.
	BlockSize int

	// DeviceName names a device. Compile and Match do not consult it:
	// matching always runs on the device.Device the Engine was constructed
	// with (engine.New's default is the CPU backend).
	DeviceName string
}

// DefaultConfig returns the Config used by Compile.
func DefaultConfig() Config {
	return Config{
		StateLimit: 0, // 0 means pdfa.DefaultStateLimit
		BlockSize:  256,
	}
}

// Validate reports whether cfg can be used to compile a pattern.
func (cfg Config) Validate() error {
	if cfg.BlockSize < 1 {
		return errors.New("engine: BlockSize must be >= 1")
	}
	if cfg.StateLimit < 0 {
		return errors.New("engine: StateLimit must be >= 0")
	}
	return nil
}
