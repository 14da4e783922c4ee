package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/id3handler/internal/model"
)

// PlaylistCreator generates playlist files for a tagged directory.
//
// Entries are listed in track order and use bare file names, so the
// playlist is meant to be written inside the directory it describes.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	dir := model.NewAlbumDir("/music/Album", tracks)
//	content := creator.CreatePlaylist(dir)
//	os.WriteFile(dir.PlaylistPath(model.PlaylistFormatM3U), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// 01 - Song Title.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines with artist/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format this creator writes.
func (p *PlaylistCreator) Format() model.PlaylistFormat {
	return p.format
}

// CreatePlaylist generates playlist content for a directory.
func (p *PlaylistCreator) CreatePlaylist(dir *model.AlbumDir) string {
	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(dir)
	default:
		return p.createM3U(dir)
	}
}

// createM3U generates an M3U playlist.
//
// Durations are not known to the tagger, so extended entries use -1.
func (p *PlaylistCreator) createM3U(dir *model.AlbumDir) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range dir.Tracks {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", entryTitle(track)))
		}
		sb.WriteString(track.Name() + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Artist - Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(dir *model.AlbumDir) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range dir.Tracks {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, track.Name()))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, entryTitle(track)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(dir.Tracks)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// entryTitle renders "Artist - Title", falling back to the file name for
// whatever part is unknown.
func entryTitle(track model.TrackFile) string {
	title := track.Metadata.Title
	if title == model.Unknown || title == "" {
		title = track.Name()
	}
	artist := track.Metadata.Artist
	if artist == model.Unknown || artist == "" {
		return title
	}
	return artist + " - " + title
}
