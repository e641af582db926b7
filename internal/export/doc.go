// Package export renders normalized subtitle lists as SRT or WebVTT and
// reads SRT content back in, the only two wire formats subweave speaks.
package export
