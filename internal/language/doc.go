// Package language resolves the language tags attached to translated
// subtitle records and answers the script questions the splitter asks,
// chiefly whether text is CJK and therefore measured in characters rather
// than whitespace-delimited words.
package language
