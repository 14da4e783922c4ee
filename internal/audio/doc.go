// Package audio provides audio file manipulation services including
// ID3 tag reading, writing and removal, and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to access the tags of MP3 files:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	md, err := tagger.Read(path)
//	err = tagger.Write(path, proposed, coverJPEG)
//	err = tagger.Remove(path)
//
// The tagger manages:
//   - Artist (TPE1), Album (TALB), Title (TIT2)
//   - Track Number (TRCK)
//   - Year (TYER for ID3v2.3, TDRC for ID3v2.4)
//   - Cover Art (APIC, front cover)
//
// Files without ID3v2 frames are read through github.com/dhowden/tag,
// which also understands ID3v1.
//
// # Playlist Generation
//
// Generate a playlist for a directory of tagged files:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(dir)
//	os.WriteFile(dir.PlaylistPath(model.PlaylistFormatM3U), []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio
