package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hitset/pkg/cache"
	"github.com/matzehuels/hitset/pkg/hitset"
	"github.com/matzehuels/hitset/pkg/set"
)

// Result is the exported form of a solved instance.
type Result struct {
	Sets  [][]string `json:"sets"`
	Cover []string   `json:"cover"`
	Size  int        `json:"size"`
}

// NewResult converts an instance and its cover into a [Result].
// Sets keep their element order; cover elements are sorted.
func NewResult(inst hitset.Instance[string], cover set.Set[string]) Result {
	elems := set.Sorted(cover)
	if elems == nil {
		elems = []string{}
	}
	return Result{
		Sets:  raw(inst),
		Cover: elems,
		Size:  cover.Len(),
	}
}

// WriteJSON encodes inst as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(inst hitset.Instance[string], w io.Writer) error {
	sets := raw(inst)
	return encodeJSON(w, jsonInstance{Sets: &sets})
}

// WriteTOML encodes inst as TOML and writes it to w.
// The output can be re-imported with [ReadTOML].
func WriteTOML(inst hitset.Instance[string], w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(tomlInstance{Sets: raw(inst)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteResultJSON encodes res as indented JSON and writes it to w.
func WriteResultJSON(res Result, w io.Writer) error {
	return encodeJSON(w, res)
}

// ExportResultJSON writes res to a JSON file at path.
func ExportResultJSON(res Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResultJSON(res, f)
}

// ReadResultJSON decodes a result written by [WriteResultJSON].
func ReadResultJSON(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}
	return res, nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func raw(inst hitset.Instance[string]) [][]string {
	out := make([][]string, len(inst))
	for i, s := range inst {
		out[i] = s.Elements()
		if out[i] == nil {
			out[i] = []string{}
		}
	}
	return out
}

// Canonical returns inst with elements sorted inside each set and the sets
// sorted, so any permutation of an instance maps to the same value.
func Canonical(inst hitset.Instance[string]) [][]string {
	out := make([][]string, len(inst))
	for i, s := range inst {
		out[i] = set.Sorted(s)
		if out[i] == nil {
			out[i] = []string{}
		}
	}
	slices.SortFunc(out, func(a, b []string) int { return slices.Compare(a, b) })
	return out
}

// MarshalCanonical encodes the canonical form of inst as compact JSON.
func MarshalCanonical(inst hitset.Instance[string]) ([]byte, error) {
	return json.Marshal(Canonical(inst))
}

// CanonicalHash returns the SHA-256 hex digest of the canonical form of inst.
// Instances that differ only in set order or element order hash the same.
func CanonicalHash(inst hitset.Instance[string]) (string, error) {
	data, err := MarshalCanonical(inst)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
