// Package merge reconciles freshly (re)generated subtitle records for one
// time window with an existing timeline.
//
// The policy is conservative at the edges: an existing record that merely
// touches the window is clamped to the outside boundary, never deleted,
// because content just outside a regenerated window is frequently
// user-edited and must survive. Segment merges replace the whole window;
// progressive merges replace only the prefix the stream has produced so far,
// which gives the caller a left-to-right wipe as results arrive.
package merge
