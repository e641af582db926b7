// Package response parses the schema-constrained JSON side of a model
// response into subtitle records.
//
// Provider output arrives either as an envelope with a structuredJson field,
// as a bare JSON array, or as a translations object. Items are duck-typed;
// the shape detector classifies each one into an explicit tagged shape
// before any field is trusted. Two guards protect downstream code: a
// placeholder guard that fails fast on responses that are entirely zero-time
// noise, and a repetition guard that rejects hallucinated text loops.
//
// Timing lookups for translated entries come in through Context as plain
// data. The package never reaches into shared state.
package response
