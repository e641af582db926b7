// Package timecode converts between the textual timestamp encodings that
// appear in model output and a canonical floating-point seconds value, and
// formats seconds back out as SRT, WebVTT, or minute-marker timestamps.
package timecode
