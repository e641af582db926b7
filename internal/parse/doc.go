// Package parse extracts candidate subtitle records from the loosely
// structured plain-text side of a model response.
//
// Each extractor recognizes one bracket/timestamp dialect and never fails:
// text it does not understand yields an empty slice so the chain can fall
// through to the next, more permissive dialect. Only the chain itself raises
// an error, and only when every dialect came up empty. The package also owns
// the structured error taxonomy shared with the structured-response parser.
package parse
