// Package engine partitions a combination space across workers, streams the
// rendered combinations into a shared sink, and tracks progress and resume
// checkpoints for the run.
package engine

import (
	"fmt"
	"math"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/combogen-dev/combogen/space"
)

// NoLimit leaves the effective total unclamped.
const NoLimit = math.MaxUint64

// Default buffer sizing, matching the write pattern the workers batch for.
const (
	DefaultBatchSize = 2 * 1024 * 1024
	writeThreshold   = 1024 * 1024
)

// SinkMode enumerates what happens to rendered combinations. The enum
// replaces crossed boolean flags so invalid combinations (say, compressing an
// in-memory collection) cannot be constructed.
type SinkMode int

const (
	// ModeStream writes combinations to a durable destination.
	ModeStream SinkMode = iota
	// ModeCollect keeps combinations in memory instead of streaming.
	ModeCollect
	// ModeDiscard renders and drops; used to measure render throughput.
	ModeDiscard
)

func (m SinkMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeCollect:
		return "collect"
	case ModeDiscard:
		return "discard"
	default:
		return fmt.Sprintf("SinkMode(%d)", int(m))
	}
}

// SinkSpec is the resolved output destination for a run.
type SinkSpec struct {
	Mode     SinkMode
	Path     string // destination path, or "-" for stdout; ModeStream only
	Compress bool   // gzip framing; ModeStream to a file only
}

// Config describes one enumeration run.
type Config struct {
	Length   int
	Alphabet []byte // nil means space.DefaultAlphabet
	Workers  int    // <=0 means runtime.NumCPU
	Limit    uint64 // effective total clamp; NoLimit leaves it unclamped

	Output   string // path, "-" for stdout, or "discard"
	Compress bool
	Memory   bool
	DryRun   bool

	BatchSize int    // worker output buffer size in bytes
	Resume    string // checkpoint file path; empty disables resume
	Verbose   bool
}

// Normalize fills defaults and resolves the sink spec, rejecting
// contradictory settings before any resource is touched.
func (c *Config) Normalize() (SinkSpec, error) {
	// Only a nil alphabet means "use the default"; an explicit empty
	// override stays empty so space construction rejects it.
	if c.Alphabet == nil {
		c.Alphabet = space.DefaultAlphabet()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Output == "" {
		c.Output = "combos.txt"
	}

	if c.Memory && c.DryRun {
		return SinkSpec{}, fmt.Errorf("memory and dry-run modes are mutually exclusive")
	}
	if c.Memory && c.Compress {
		return SinkSpec{}, fmt.Errorf("compression applies to streamed output, not memory collection")
	}
	if c.DryRun && c.Compress {
		return SinkSpec{}, fmt.Errorf("compression applies to streamed output, not a dry run")
	}

	switch {
	case c.Memory:
		return SinkSpec{Mode: ModeCollect}, nil
	case c.DryRun:
		return SinkSpec{Mode: ModeDiscard}, nil
	case c.Output == "discard":
		if c.Compress {
			return SinkSpec{}, fmt.Errorf("compression applies to streamed output, not discard")
		}
		return SinkSpec{Mode: ModeDiscard}, nil
	default:
		if c.Compress && c.Output == "-" {
			return SinkSpec{}, fmt.Errorf("cannot gzip standard output, give a file path")
		}
		return SinkSpec{Mode: ModeStream, Path: c.Output, Compress: c.Compress}, nil
	}
}

// Profile is the TOML file form of a Config. Absent fields keep the flag or
// default value.
type Profile struct {
	Length   *int    `toml:"length"`
	Threads  *int    `toml:"threads"`
	Limit    *uint64 `toml:"limit"`
	Output   *string `toml:"output"`
	Charset  *string `toml:"charset"`
	Batch    *int    `toml:"batch"`
	Resume   *string `toml:"resume"`
	Compress *bool   `toml:"compress"`
	Memory   *bool   `toml:"memory"`
	DryRun   *bool   `toml:"dry_run"`
	Verbose  *bool   `toml:"verbose"`
}

// LoadProfile reads a TOML run profile.
func LoadProfile(path string) (*Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}
	return &p, nil
}

// Apply overlays the profile's set fields onto cfg.
func (p *Profile) Apply(cfg *Config) {
	if p.Length != nil {
		cfg.Length = *p.Length
	}
	if p.Threads != nil {
		cfg.Workers = *p.Threads
	}
	if p.Limit != nil {
		cfg.Limit = *p.Limit
	}
	if p.Output != nil {
		cfg.Output = *p.Output
	}
	if p.Charset != nil {
		cfg.Alphabet = []byte(*p.Charset)
	}
	if p.Batch != nil {
		cfg.BatchSize = *p.Batch
	}
	if p.Resume != nil {
		cfg.Resume = *p.Resume
	}
	if p.Compress != nil {
		cfg.Compress = *p.Compress
	}
	if p.Memory != nil {
		cfg.Memory = *p.Memory
	}
	if p.DryRun != nil {
		cfg.DryRun = *p.DryRun
	}
	if p.Verbose != nil {
		cfg.Verbose = *p.Verbose
	}
}
