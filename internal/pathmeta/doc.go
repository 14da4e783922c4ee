// Package pathmeta infers audio tag metadata from file system paths.
//
// Files are expected to be organized loosely as
//
//	ARTIST - YEAR - ALBUM / TRACK - TITLE.mp3
//
// The parser is a best-effort heuristic, not a grammar: any part may be
// missing or malformed, and every failure degrades to a sentinel value
// (model.Unknown for text, 0 for numbers) instead of an error.
//
// # Usage
//
//	p := pathmeta.NewWithClock(time.Now)
//	md := p.Parse("/music/Pink Floyd - 1979 - The Wall/01 - In the Flesh.mp3")
//
// ParseAlbum and ParseTrack expose the two halves separately. Force builds a
// record from five explicit values without parsing.
//
// # Building blocks
//
// The parsers are composed from small scanning primitives that are exported
// for reuse and testing:
//   - FindFirst, FindLast, CountOccurrences: byte searches with an explicit found flag
//   - FindNumericRun: locate a digit run of an exact length
//   - VerifyNumber, FindVerifiedNumber: range-checked numeric parsing
//   - Trim: strip separator characters from both ends
//
// The current year bounds plausible release years and is supplied through
// the Parser's clock, so results are deterministic under test.
package pathmeta
