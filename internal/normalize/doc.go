// Package normalize repairs a raw candidate subtitle list into a clean
// ordered timeline: zero-duration and empty records dropped, too-short
// records extended, overlaps resolved, hairline gaps closed, and identical
// adjacent text merged.
//
// Apply is a fixed point: running it on its own output changes nothing.
// Every list the rest of the system hands to the UI or the exporters has
// been through it.
package normalize
