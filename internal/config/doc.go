// Package config provides configuration management for id3handler.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides, optionally read from a .env file
//   - Conversion to audio.TagConfig and model.PlaylistFormat for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// .mp3 files, 4 files processed concurrently
//	// ID3v2.4 tags with an embedded cover when one is found
//	// no playlists
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
//	// ID3HANDLER_TAG_VERSION=3 ID3HANDLER_PLAYLIST=true
//	err := settings.ApplyEnv()
//
// # Saving Settings
//
//	settings.TagVersion = 3
//	err := settings.Save(config.DefaultPath())
package config
