// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Expanding files and directories into a list of audio files
//   - Locating cover images next to audio files
//   - Writing generated files such as playlists
//   - Image resizing and format conversion for embedded cover art
//
// # File Discovery
//
//	files, err := ioutils.FindAudioFiles(ctx, []string{"/music"}, ioutils.DefaultAudioExtensions, true)
//
// # Cover Art
//
//	cover := ioutils.FindCover("/music/Album", []string{"cover.jpg", "folder.jpg"})
//	svc := ioutils.NewImageService()
//	jpeg, err := svc.LoadCover(ctx, cover, 1000)
package ioutils
