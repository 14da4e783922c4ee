package pathmeta

import (
	"strconv"

	"github.com/handiism/id3handler/internal/model"
)

const (
	// shortSegmentLen is the longest hyphen-free directory name that is
	// taken as a bare artist name without looking for a year.
	shortSegmentLen = 10

	// earliestYearCandidate is the lower bound used while locating a year
	// inside a directory name. The stored year is clamped to model.MinTagYear.
	earliestYearCandidate = 1800

	yearDigits = 4
)

// AlbumInfo holds what can be inferred from the directory enclosing a file.
type AlbumInfo struct {
	Artist string
	Album  string
	Year   int
}

// ParseAlbum infers artist, year and album from the directory that
// immediately contains the file named by path.
//
// Recognized shapes, in order of preference:
//
//	Artist - 1979 - Album   year located anywhere in the name
//	Artist - Live - Album   first/last hyphen split, middle taken as the year
//	Artist - Album          year defaults to the current year
//	Artist                  short names or names without hyphens
func (p *Parser) ParseAlbum(path string) AlbumInfo {
	return parseAlbum(path, p.year())
}

func parseAlbum(path string, currentYear int) AlbumInfo {
	segment := albumSegment(path)
	hyphens := CountOccurrences(segment, '-')

	var artist, album, year string
	hasAlbum := true

	if len(segment) <= shortSegmentLen && hyphens == 0 {
		artist = segment
		hasAlbum = false
	} else if pos, ok := FindVerifiedNumber(segment, earliestYearCandidate, currentYear, yearDigits); ok {
		artist = left(segment, pos)
		year = between(segment, pos, pos+yearDigits)
		album = right(segment, pos+yearDigits)
	} else if hyphens > 1 {
		first, _ := FindFirst(segment, '-')
		last, _ := FindLast(segment, '-')
		artist = left(segment, first)
		year = between(segment, first+1, last)
		album = right(segment, last+1)
	} else if hyphens == 1 {
		hyphen, _ := FindFirst(segment, '-')
		artist = left(segment, hyphen)
		album = right(segment, hyphen+1)
		year = strconv.Itoa(currentYear)
	} else {
		artist = segment
		hasAlbum = false
	}

	info := AlbumInfo{
		Artist: trimOrUnknown(artist),
		Album:  model.Unknown,
	}
	if hasAlbum {
		info.Album = trimOrUnknown(album)
	}
	if y, ok := VerifyNumber(Trim(year), model.MinTagYear, currentYear); ok {
		info.Year = y
	}

	// A relative path such as "./01 - Song.mp3" leaves only the dot.
	if info.Artist == "." && info.Album == model.Unknown {
		info.Artist = model.Unknown
	}

	return info
}

// albumSegment returns the last directory component of path, or path itself
// when it holds no directory.
func albumSegment(path string) string {
	slash, ok := FindLast(path, '/')
	if !ok {
		return path
	}
	dir := left(path, slash)
	if prev, ok := FindLast(dir, '/'); ok {
		return right(dir, prev+1)
	}
	return dir
}
