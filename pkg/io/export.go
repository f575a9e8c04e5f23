package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/compactsheet/pkg/distribute"
)

// WriteJSON encodes v as indented JSON and writes it to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDistribution encodes d as JSON and writes it to w.
func WriteDistribution(w io.Writer, d distribute.Distribution) error {
	return WriteJSON(w, d)
}

// ExportDistribution writes d to a JSON file at path.
func ExportDistribution(d distribute.Distribution, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDistribution(f, d)
}
