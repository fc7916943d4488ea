// Package ratedoc harvests Norges Bank interest-rate decisions from the
// bank's website and turns each decision into a canonical text artifact.
// It recognizes decisions across the site's historical page layouts,
// normalizes Norwegian dates, and extracts the text of linked resources
// without navigation boilerplate.
//
// This package contains domain types, interfaces and the pure parts of the
// pipeline (date normalization, decision aggregation, text cleanup and
// report assembly), following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, rod/, sqlite/).
package ratedoc
