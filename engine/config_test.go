package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Length: 3, Limit: NoLimit}
	spec, err := cfg.Normalize()
	require.NoError(t, err)

	assert.Equal(t, ModeStream, spec.Mode)
	assert.Equal(t, "combos.txt", spec.Path)
	assert.Len(t, cfg.Alphabet, 94)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
}

func TestNormalizeAlphabetDefaultsOnlyWhenNil(t *testing.T) {
	cfg := Config{Length: 3, Limit: NoLimit}
	_, err := cfg.Normalize()
	require.NoError(t, err)
	assert.Len(t, cfg.Alphabet, 94)

	// An explicit empty override survives normalization so that space
	// construction can reject it.
	cfg = Config{Length: 3, Alphabet: []byte{}, Limit: NoLimit}
	_, err = cfg.Normalize()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Alphabet)
	assert.Empty(t, cfg.Alphabet)
}

func TestNormalizeSinkModes(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
		want SinkMode
	}{
		{"stream to file", Config{Output: "x.txt"}, ModeStream},
		{"stream to stdout", Config{Output: "-"}, ModeStream},
		{"discard destination", Config{Output: "discard"}, ModeDiscard},
		{"memory", Config{Memory: true}, ModeCollect},
		{"dry run", Config{DryRun: true}, ModeDiscard},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Length = 2
			spec, err := tc.cfg.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tc.want, spec.Mode)
		})
	}
}

func TestNormalizeRejectsContradictions(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"memory plus dry-run", Config{Memory: true, DryRun: true}},
		{"memory plus compress", Config{Memory: true, Compress: true}},
		{"dry-run plus compress", Config{DryRun: true, Compress: true}},
		{"discard plus compress", Config{Output: "discard", Compress: true}},
		{"stdout plus compress", Config{Output: "-", Compress: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Length = 2
			_, err := tc.cfg.Normalize()
			assert.Error(t, err)
		})
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
length = 4
threads = 2
limit = 1000
output = "combos.txt.gz"
charset = "abcdef"
compress = true
verbose = true
`), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	var cfg Config
	cfg.Limit = NoLimit
	p.Apply(&cfg)

	assert.Equal(t, 4, cfg.Length)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, uint64(1000), cfg.Limit)
	assert.Equal(t, "combos.txt.gz", cfg.Output)
	assert.Equal(t, []byte("abcdef"), cfg.Alphabet)
	assert.True(t, cfg.Compress)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.DryRun)
}

func TestProfileAbsentFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("length = 3\n"), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	cfg := Config{Limit: NoLimit, Output: "keep.txt"}
	p.Apply(&cfg)

	assert.Equal(t, 3, cfg.Length)
	assert.Equal(t, uint64(NoLimit), cfg.Limit)
	assert.Equal(t, "keep.txt", cfg.Output)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
