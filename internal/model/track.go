package model

import (
	"path/filepath"
	"sort"
)

// TrackFile is one audio file together with the metadata that applies to it.
//
// Depending on where it comes from, Metadata is either what was read from
// the file's tag or what was inferred for it before writing.
type TrackFile struct {
	// Path is the location of the audio file.
	Path string

	// Metadata is the record associated with the file.
	Metadata Metadata
}

// Dir returns the directory holding the file.
func (t TrackFile) Dir() string {
	return filepath.Dir(t.Path)
}

// Name returns the base name of the file, extension included.
func (t TrackFile) Name() string {
	return filepath.Base(t.Path)
}

// SortByTrack orders tracks by track number, unknown numbers last, and by
// file name when numbers are equal.
func SortByTrack(tracks []TrackFile) {
	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i].Metadata.Track, tracks[j].Metadata.Track
		if a == b {
			return tracks[i].Name() < tracks[j].Name()
		}
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})
}
