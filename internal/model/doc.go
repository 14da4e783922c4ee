// Package model defines the core data structures used throughout
// id3handler.
//
// # Metadata
//
// Metadata is the composite tag record for a single audio file:
//
//	md := model.Metadata{Artist: "Artist", Year: 2001, Album: "Album", Track: 3, Title: "Song"}
//	fmt.Println(md.IsIncomplete()) // false
//
// Fields that could not be determined hold sentinels: model.Unknown ("empty")
// for text and 0 for Track and Year. UnknownMetadata returns a record made
// only of sentinels.
//
// # Comparison
//
// Matches counts equal fields and drives the "nothing to update" decision:
//
//	if proposed.Equal(onDisk) {
//	    // skip the write
//	}
//
// # Album directories
//
// AlbumDir groups TrackFile values found in one directory and computes the
// playlist path for them:
//
//	dir := model.NewAlbumDir("/music/Album", tracks)
//	path := dir.PlaylistPath(model.PlaylistFormatM3U)
package model
