package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// AlbumDir groups the tracks that live in one directory.
//
// AlbumDir is built after an update run so that a playlist can be written
// next to the files. Artist and Title are taken from the first track that
// carries them.
//
// Example:
//
//	dir := NewAlbumDir("/music/Pink Floyd - 1979 - The Wall", tracks)
//	fmt.Println(dir.PlaylistPath(PlaylistFormatM3U))
//	// /music/Pink Floyd - 1979 - The Wall/The Wall.m3u
type AlbumDir struct {
	// Path is the directory containing the tracks.
	Path string

	// Artist is the album artist, Unknown if no track has one.
	Artist string

	// Title is the album title, Unknown if no track has one.
	Title string

	// Tracks are ordered by track number.
	Tracks []TrackFile
}

// NewAlbumDir creates an AlbumDir and sorts its tracks.
func NewAlbumDir(path string, tracks []TrackFile) *AlbumDir {
	sorted := make([]TrackFile, len(tracks))
	copy(sorted, tracks)
	SortByTrack(sorted)

	dir := &AlbumDir{
		Path:   path,
		Artist: Unknown,
		Title:  Unknown,
		Tracks: sorted,
	}
	for _, t := range sorted {
		if dir.Artist == Unknown && t.Metadata.Artist != Unknown {
			dir.Artist = t.Metadata.Artist
		}
		if dir.Title == Unknown && t.Metadata.Album != Unknown {
			dir.Title = t.Metadata.Album
		}
	}
	return dir
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS
)

// ParsePlaylistFormat maps a configuration value to a PlaylistFormat.
// Unrecognized values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	if strings.EqualFold(s, "pls") {
		return PlaylistFormatPLS
	}
	return PlaylistFormatM3U
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	default:
		return ".m3u"
	}
}

// PlaylistPath computes where the playlist for this directory is written.
//
// The file is named after the album title, or after the directory when the
// title is unknown.
func (a *AlbumDir) PlaylistPath(pf PlaylistFormat) string {
	name := a.Title
	if name == Unknown {
		name = filepath.Base(a.Path)
	}
	name = sanitizeFileName(name)
	if name == "" {
		name = "playlist"
	}
	return filepath.Join(a.Path, name+pf.Extension())
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
