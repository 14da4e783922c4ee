package model

import "fmt"

// Unknown is the placeholder stored in a text field that could not be
// determined. Numeric fields use 0 for the same purpose.
const Unknown = "empty"

// MinTagYear is the earliest release year accepted when deciding whether a
// record is complete enough to be written.
const MinTagYear = 1900

// Metadata is the composite tag record for one audio file.
//
// Metadata is produced by the path parser and by the tag store, and it is
// the only shape exchanged between them. Text fields hold either Unknown or
// a non-empty value; Track and Year hold either 0 or a real value.
//
// Example:
//
//	md := Metadata{
//	    Artist: "Pink Floyd",
//	    Year:   1979,
//	    Album:  "The Wall",
//	    Track:  1,
//	    Title:  "In the Flesh?",
//	}
//	fmt.Println(md) // 'Pink Floyd' - 1979 - 'The Wall' : 1 - 'In the Flesh?'
type Metadata struct {
	// Artist is the lead artist (TPE1).
	Artist string

	// Title is the track title (TIT2).
	Title string

	// Album is the album title (TALB).
	Album string

	// Track is the track number (TRCK), 0 when unknown.
	Track int

	// Year is the release year (TYER/TDRC), 0 when unknown.
	Year int
}

// UnknownMetadata returns a record with every field set to its sentinel.
func UnknownMetadata() Metadata {
	return Metadata{
		Artist: Unknown,
		Title:  Unknown,
		Album:  Unknown,
	}
}

// IsIncomplete reports whether any field is missing or implausible.
//
// An incomplete record must never be written to a file: the tagging layer
// aborts the update instead.
func (m Metadata) IsIncomplete() bool {
	switch {
	case m.Artist == Unknown, m.Title == Unknown, m.Album == Unknown:
		return true
	case m.Track < 1:
		return true
	case m.Year < MinTagYear:
		return true
	}
	return false
}

// IsEmpty reports whether no field carries a value at all.
func (m Metadata) IsEmpty() bool {
	return m.Artist == Unknown && m.Title == Unknown && m.Album == Unknown &&
		m.Track == 0 && m.Year == 0
}

// Matches returns how many of the five fields are equal in m and other.
func (m Metadata) Matches(other Metadata) int {
	count := 0
	if m.Artist == other.Artist {
		count++
	}
	if m.Title == other.Title {
		count++
	}
	if m.Album == other.Album {
		count++
	}
	if m.Track == other.Track {
		count++
	}
	if m.Year == other.Year {
		count++
	}
	return count
}

// Equal reports whether all five fields match.
func (m Metadata) Equal(other Metadata) bool {
	return m.Matches(other) == FieldCount
}

// FieldCount is the number of fields compared by Matches.
const FieldCount = 5

// String renders the record the way the print command shows it.
func (m Metadata) String() string {
	return fmt.Sprintf("'%s' - %d - '%s' : %d - '%s'", m.Artist, m.Year, m.Album, m.Track, m.Title)
}
