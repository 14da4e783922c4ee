package pathmeta

import (
	"strconv"
	"strings"
	"time"

	"github.com/handiism/id3handler/internal/model"
)

// Parser infers tag metadata from file paths.
//
// The only state a Parser holds is its clock, which bounds plausible
// release years. Parsers are safe for concurrent use.
//
// Example:
//
//	p := NewWithClock(time.Now)
//	md := p.Parse("/music/Pink Floyd - 1979 - The Wall/01 - In the Flesh.mp3")
//	// md.Artist = "Pink Floyd", md.Year = 1979, md.Album = "The Wall"
//	// md.Track = 1, md.Title = "In the Flesh"
type Parser struct {
	now func() time.Time
}

// New creates a Parser whose current year is fixed to currentYear.
func New(currentYear int) *Parser {
	fixed := time.Date(currentYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &Parser{now: func() time.Time { return fixed }}
}

// NewWithClock creates a Parser that asks now for the current year on every
// call. If now is nil, time.Now is used.
func NewWithClock(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{now: now}
}

func (p *Parser) year() int {
	return p.now().Year()
}

// Parse infers a complete record from path.
//
// The directory enclosing the file yields artist, year and album; the file
// name yields track and title. The same function accepts an override string
// shaped like "ARTIST - YEAR - ALBUM / TRACK - TITLE". A path without any
// '/' cannot be split and produces model.UnknownMetadata.
func (p *Parser) Parse(path string) model.Metadata {
	if _, ok := FindLast(path, '/'); !ok {
		return model.UnknownMetadata()
	}

	currentYear := p.year()
	album := parseAlbum(path, currentYear)
	track := parseTrack(path)

	return model.Metadata{
		Artist: album.Artist,
		Title:  track.Title,
		Album:  album.Album,
		Track:  track.Track,
		Year:   album.Year,
	}
}

// Force builds a record from explicitly supplied values.
//
// No validation is applied. Year and track are parsed as integers and fall
// back to 0 when they are not numbers.
func Force(artist, year, album, track, title string) model.Metadata {
	return model.Metadata{
		Artist: artist,
		Title:  title,
		Album:  album,
		Track:  atoi(track),
		Year:   atoi(year),
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
