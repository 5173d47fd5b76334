// Package store provides the SQLite-backed provenance log for figure runs.
//
// Every successful figure render can be recorded with its recipe, mixing
// rule, derived bulk density and a content hash of the written file, so a
// published figure can later be traced back to the exact inputs that
// produced it.
package store
