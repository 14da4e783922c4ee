package pathmeta

import "github.com/handiism/id3handler/internal/model"

const (
	// shortNameLen is the longest file name (extension removed) that is
	// considered too short to carry both a track number and a title.
	shortNameLen = 5

	trackDigits = 2
	minTrack    = 1
	maxTrack    = 99

	// maxTrackSeparator is how many separator characters after the track
	// number are skipped, as in "01. Title" or "01 - Title".
	maxTrackSeparator = 2
)

// TrackInfo holds what can be inferred from a file name.
type TrackInfo struct {
	Title string
	Track int
}

// ParseTrack infers the track number and title from the file name at the
// end of path.
//
// A two digit number anywhere in the name is taken as the track number and
// what follows it as the title. Without one, the name is split on its first
// hyphen ("3 - Title"). Single digit track numbers are only recognized
// through that hyphen split. At most two separator or dot characters after
// the number are dropped, so "01. Title" and "01Title" both give "Title".
func (p *Parser) ParseTrack(path string) TrackInfo {
	return parseTrack(path)
}

func parseTrack(path string) TrackInfo {
	name := trackName(path)

	if len(name) <= shortNameLen {
		return TrackInfo{Title: model.Unknown}
	}

	var track, title string

	if pos, ok := FindNumericRun(name, 0, trackDigits); ok {
		track = between(name, pos, pos+trackDigits)
		title = right(name, skipTrackSeparator(name, pos+trackDigits))
	} else if hyphen, ok := FindFirst(name, '-'); ok {
		track = left(name, hyphen)
		title = right(name, hyphen+1)
	} else {
		track = name
		title = name
	}

	info := TrackInfo{Title: trimOrUnknown(title)}
	if n, ok := VerifyNumber(Trim(track), minTrack, maxTrack); ok {
		info.Track = n
	}
	return info
}

// trackName strips the directory and the extension from path.
func trackName(path string) string {
	name := path
	if slash, ok := FindLast(name, '/'); ok {
		name = right(name, slash+1)
	}
	if dot, ok := FindLast(name, '.'); ok {
		name = left(name, dot)
	}
	return name
}

// skipTrackSeparator advances i past at most maxTrackSeparator separator
// characters, dots included.
func skipTrackSeparator(s string, i int) int {
	for n := 0; n < maxTrackSeparator && i < len(s); n++ {
		if s[i] != '.' && !isSeparator(s[i]) {
			break
		}
		i++
	}
	return i
}
