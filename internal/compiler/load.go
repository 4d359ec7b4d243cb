package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/pulsenet/internal/ir"
)

// LoadNetworkFile reads a network definition from disk. Files ending in
// .cue are compiled as CUE; anything else is parsed as the text format.
func LoadNetworkFile(path string) (ir.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.Network{}, fmt.Errorf("read network file: %w", err)
	}

	if filepath.Ext(path) == ".cue" {
		return CompileNetworkSource(path, data)
	}

	n, err := ParseNetwork(bytes.NewReader(data))
	if err != nil {
		return ir.Network{}, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
