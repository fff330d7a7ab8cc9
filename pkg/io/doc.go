// Package io provides JSON and TOML import and export for hitting set instances.
//
// # Overview
//
// Instances on disk use string elements. Both formats hold a single
// top-level array of sets, each set an array of element labels:
//
//	{"sets": [["a", "b"], ["b", "c"]]}
//
// or, in TOML:
//
//	sets = [["a", "b"], ["b", "c"]]
//
// Duplicate labels inside one set collapse. An empty set is preserved on
// import so the solver can report the instance as uncoverable; an empty
// "sets" array is the empty instance. The "sets" key itself is required.
//
// Labels must be nonempty and free of control characters (see
// [errors.ValidateElement]).
//
// # Import
//
// Use [ImportFile] to read an instance from a path, choosing the format by
// extension (.json or .toml), or [ReadJSON] / [ReadTOML] for any io.Reader:
//
//	inst, err := io.ImportFile("sets.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteJSON] and [WriteTOML] write an instance; [WriteResultJSON] writes an
// instance together with its cover:
//
//	{
//	  "sets": [["a", "b"], ["b", "c"]],
//	  "cover": ["b"],
//	  "size": 1
//	}
//
// Cover elements are sorted so results diff cleanly.
//
// # Canonical Form
//
// [Canonical] sorts elements within each set and then the sets themselves,
// so permuted instances share one representation. [MarshalCanonical] encodes
// it for hashing into cache keys.
//
// [errors.ValidateElement]: github.com/matzehuels/hitset/pkg/errors.ValidateElement
package io
