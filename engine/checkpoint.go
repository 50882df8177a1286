package engine

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shamaton/msgpack/v2"

	"github.com/combogen-dev/combogen/space"
)

// Checkpoint persists the resume offset: the file holds a single decimal
// integer and nothing else. A msgpack sidecar at <path>.meta records which
// space the offset belongs to, so resuming into a different charset or
// length fails fast instead of silently emitting the wrong elements.
type Checkpoint struct {
	path string
}

// CheckpointMeta is the sidecar payload.
type CheckpointMeta struct {
	RunID       string
	Fingerprint uint64
	SavedAt     time.Time
}

// NewCheckpoint tracks the checkpoint file at path.
func NewCheckpoint(path string) *Checkpoint {
	return &Checkpoint{path: path}
}

// Load returns the persisted resume offset. An absent or unparsable file is
// treated as offset 0. A sidecar written for a different space is an error.
func (c *Checkpoint) Load(sp *space.Space) (uint64, error) {
	if err := c.checkMeta(sp); err != nil {
		return 0, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read checkpoint %s: %w", c.path, err)
	}
	offset, err := strconv.ParseUint(string(bytes.TrimSpace(data)), 10, 64)
	if err != nil {
		return 0, nil
	}
	return offset, nil
}

// Save writes the resume offset and its sidecar.
func (c *Checkpoint) Save(offset uint64, sp *space.Space, runID string) error {
	if err := os.WriteFile(c.path, []byte(strconv.FormatUint(offset, 10)), 0o644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", c.path, err)
	}
	meta := CheckpointMeta{
		RunID:       runID,
		Fingerprint: sp.Fingerprint(),
		SavedAt:     time.Now(),
	}
	raw, err := msgpack.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode checkpoint meta: %w", err)
	}
	if err := os.WriteFile(c.metaPath(), raw, 0o644); err != nil {
		return fmt.Errorf("write checkpoint meta: %w", err)
	}
	return nil
}

func (c *Checkpoint) metaPath() string {
	return c.path + ".meta"
}

// checkMeta validates the sidecar fingerprint when one exists. Runs written
// before the sidecar was introduced load without validation.
func (c *Checkpoint) checkMeta(sp *space.Space) error {
	raw, err := os.ReadFile(c.metaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read checkpoint meta: %w", err)
	}
	var meta CheckpointMeta
	if err := msgpack.Unmarshal(raw, &meta); err != nil {
		return fmt.Errorf("decode checkpoint meta %s: %w", c.metaPath(), err)
	}
	if meta.Fingerprint != sp.Fingerprint() {
		return fmt.Errorf("checkpoint %s was written for a different charset/length (run %s)",
			c.path, meta.RunID)
	}
	return nil
}
