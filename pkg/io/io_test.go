package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/hitset"
	"github.com/matzehuels/hitset/pkg/set"
)

func sample() hitset.Instance[string] {
	return hitset.Instance[string]{set.Of("a", "b"), set.Of("b", "c"), set.New[string]()}
}

func sameInstance(t *testing.T, got, want hitset.Instance[string]) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d sets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].String() != want[i].String() {
			t.Errorf("set %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestReadJSON(t *testing.T) {
	inst, err := ReadJSON(strings.NewReader(`{"sets": [["a", "b", "a"], ["c"], []]}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	sameInstance(t, inst, hitset.Instance[string]{set.Of("a", "b"), set.Of("c"), set.New[string]()})
}

func TestReadJSONEmptyInstance(t *testing.T) {
	inst, err := ReadJSON(strings.NewReader(`{"sets": []}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(inst) != 0 {
		t.Errorf("got %d sets, want 0", len(inst))
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		read  func(string) (hitset.Instance[string], error)
		input string
		code  errors.Code
	}{
		{"json malformed", readJSON, `{"sets": [`, errors.ErrCodeInvalidInput},
		{"json missing sets", readJSON, `{}`, errors.ErrCodeInvalidInput},
		{"json empty label", readJSON, `{"sets": [["a", ""]]}`, errors.ErrCodeInvalidElement},
		{"json control char", readJSON, `{"sets": [["a\nb"]]}`, errors.ErrCodeInvalidElement},
		{"toml malformed", readTOML, `sets = [[`, errors.ErrCodeInvalidInput},
		{"toml missing sets", readTOML, `other = 1`, errors.ErrCodeInvalidInput},
		{"toml unknown key", readTOML, "sets = []\nextra = 1", errors.ErrCodeInvalidInput},
		{"toml empty label", readTOML, `sets = [[""]]`, errors.ErrCodeInvalidElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.read(tt.input)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func readJSON(s string) (hitset.Instance[string], error) { return ReadJSON(strings.NewReader(s)) }
func readTOML(s string) (hitset.Instance[string], error) { return ReadTOML(strings.NewReader(s)) }

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample(), &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	sameInstance(t, got, sample())
}

func TestTOMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTOML(sample(), &buf); err != nil {
		t.Fatalf("WriteTOML() error: %v", err)
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML() error: %v\n%s", err, buf.String())
	}
	sameInstance(t, got, sample())
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "sets.json")
	tomlPath := filepath.Join(dir, "sets.toml")
	if err := os.WriteFile(jsonPath, []byte(`{"sets": [["a", "b"]]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, []byte(`sets = [["a", "b"]]`), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		inst, err := ImportFile(path)
		if err != nil {
			t.Fatalf("ImportFile(%s) error: %v", path, err)
		}
		sameInstance(t, inst, hitset.Instance[string]{set.Of("a", "b")})
	}

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := ImportFile(filepath.Join(dir, "sets.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestResultJSON(t *testing.T) {
	inst := hitset.Instance[string]{set.Of("b", "a"), set.Of("c", "b")}
	res := NewResult(inst, set.Of("b"))

	var buf bytes.Buffer
	if err := WriteResultJSON(res, &buf); err != nil {
		t.Fatalf("WriteResultJSON() error: %v", err)
	}
	got, err := ReadResultJSON(&buf)
	if err != nil {
		t.Fatalf("ReadResultJSON() error: %v", err)
	}
	if got.Size != 1 || !slices.Equal(got.Cover, []string{"b"}) {
		t.Errorf("result = %+v", got)
	}
	if !slices.Equal(got.Sets[0], []string{"b", "a"}) {
		t.Errorf("set order not preserved: %v", got.Sets[0])
	}
}

func TestResultJSONEmptyCover(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultJSON(NewResult(nil, set.New[string]()), &buf); err != nil {
		t.Fatalf("WriteResultJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"cover": []`) {
		t.Errorf("empty cover should encode as [], got %s", buf.String())
	}
}

func TestExportResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := ExportResultJSON(NewResult(sample()[:2], set.Of("b")), path); err != nil {
		t.Fatalf("ExportResultJSON() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"size": 1`) {
		t.Errorf("unexpected file contents: %s", data)
	}
}

func TestCanonicalIsOrderIndependent(t *testing.T) {
	a := hitset.Instance[string]{set.Of("b", "a"), set.Of("d", "c")}
	b := hitset.Instance[string]{set.Of("c", "d"), set.Of("a", "b")}

	da, err := MarshalCanonical(a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := MarshalCanonical(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(da, db) {
		t.Errorf("canonical forms differ: %s vs %s", da, db)
	}
	if string(da) != `[["a","b"],["c","d"]]` {
		t.Errorf("MarshalCanonical() = %s", da)
	}

	dc, _ := MarshalCanonical(hitset.Instance[string]{set.Of("a", "b")})
	if bytes.Equal(da, dc) {
		t.Error("different instances should not share a canonical form")
	}
}

func TestCanonicalHash(t *testing.T) {
	a := hitset.Instance[string]{set.Of("a", "b"), set.Of("b", "c")}
	b := hitset.Instance[string]{set.Of("c", "b"), set.Of("b", "a")}

	ha, err := CanonicalHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := CanonicalHash(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Errorf("permuted instances hash differently: %s vs %s", ha, hb)
	}
	if len(ha) != 64 {
		t.Errorf("hash length = %d, want 64", len(ha))
	}

	hc, _ := CanonicalHash(hitset.Instance[string]{set.Of("a")})
	if ha == hc {
		t.Error("different instances should hash differently")
	}
}

func TestImportExampleInstances(t *testing.T) {
	tests := []struct {
		file    string
		sets    int
		minSize int
		wantErr errors.Code
	}{
		{"demo.json", 2, 1, ""},
		{"committee.toml", 5, 3, ""},
		{"uncoverable.json", 2, 0, errors.ErrCodeUncoverable},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			inst, err := ImportFile(filepath.Join("..", "..", "examples", "instances", tt.file))
			if err != nil {
				t.Fatalf("ImportFile() error: %v", err)
			}
			if len(inst) != tt.sets {
				t.Errorf("len(inst) = %d, want %d", len(inst), tt.sets)
			}
			cover, err := hitset.Solve(inst)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Solve() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if cover.Len() != tt.minSize {
				t.Errorf("cover %v has size %d, want %d", cover, cover.Len(), tt.minSize)
			}
		})
	}
}
