// Package split divides over-long subtitles into several shorter ones,
// distributing the original time range proportionally to a language-aware
// weight: characters for CJK text, whitespace-delimited words otherwise.
//
// Chunk sizes target an even share of the remaining weight rather than a
// fixed size, which avoids front-loaded splits like {5,5,2} where {4,4,4}
// reads better.
package split
