// Package effectchain composes the offline effects of package effects into
// an ordered, validated chain.
//
// A [Catalog] maps filter identifiers to catalog entries. Each entry carries
// a parameter schema and a binder that turns raw parameter values into a
// typed [Operation]. [Configure] resolves a list of [Spec] values against a
// catalog up front, so unknown identifiers and malformed parameters fail
// before any audio is touched. A [Chain] then threads a buffer through the
// configured stages, producing a fresh buffer per stage. The first failing
// stage aborts the whole run and no partial output is returned.
package effectchain
