package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/handiism/id3handler/internal/audio"
	"github.com/handiism/id3handler/internal/model"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ID3HANDLER_"

// Settings holds all configuration options.
type Settings struct {
	// Processing settings
	MaxConcurrentFiles int      `json:"max_concurrent_files"`
	Extensions         []string `json:"extensions"`
	Recursive          bool     `json:"recursive"`

	// Tag settings
	TagVersion int `json:"tag_version"` // 3 or 4

	// Cover art settings
	EmbedCover     bool     `json:"embed_cover"`
	CoverFileNames []string `json:"cover_file_names"`
	CoverResize    bool     `json:"cover_resize"`
	CoverMaxSize   int      `json:"cover_max_size"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`

	// Watch settings
	WatchSettleSeconds float64 `json:"watch_settle_seconds"`

	// Output
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		MaxConcurrentFiles: 4,
		Extensions:         []string{".mp3"},
		Recursive:          false,

		TagVersion: 4,

		EmbedCover:     true,
		CoverFileNames: []string{"cover.jpg", "folder.jpg", "front.jpg", "cover.png", "folder.png"},
		CoverResize:    true,
		CoverMaxSize:   1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		WatchSettleSeconds: 2,
	}
}

// DefaultPath returns the default location of the settings file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "id3handler.json"
	}
	return filepath.Join(dir, "id3handler", "settings.json")
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads a .env file from the working directory, if present, and
// overrides settings from ID3HANDLER_* variables.
//
// Recognized variables:
//
//	ID3HANDLER_WORKERS          max concurrent files
//	ID3HANDLER_EXTENSIONS       comma-separated list, e.g. ".mp3,.MP3"
//	ID3HANDLER_RECURSIVE        bool
//	ID3HANDLER_TAG_VERSION      3 or 4
//	ID3HANDLER_EMBED_COVER      bool
//	ID3HANDLER_COVER_MAX_SIZE   pixels, 0 disables resizing
//	ID3HANDLER_PLAYLIST         bool
//	ID3HANDLER_PLAYLIST_FORMAT  m3u or pls
//	ID3HANDLER_WATCH_SETTLE     seconds
//	ID3HANDLER_VERBOSE          bool
//
// Variables already present in the environment take precedence over the
// .env file. Invalid values are reported and leave the setting unchanged.
func (s *Settings) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return s.applyEnv(os.LookupEnv)
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	var errs []string

	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, EnvPrefix+name)
				return
			}
			*dst = n
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, EnvPrefix+name)
				return
			}
			*dst = b
		}
	}

	setInt("WORKERS", &s.MaxConcurrentFiles)
	setBool("RECURSIVE", &s.Recursive)
	setInt("TAG_VERSION", &s.TagVersion)
	setBool("EMBED_COVER", &s.EmbedCover)
	setBool("PLAYLIST", &s.CreatePlaylist)
	setBool("VERBOSE", &s.Verbose)

	if v, ok := get("COVER_MAX_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, EnvPrefix+"COVER_MAX_SIZE")
		} else {
			s.CoverMaxSize = n
			s.CoverResize = n > 0
		}
	}
	if v, ok := get("EXTENSIONS"); ok {
		var exts []string
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				exts = append(exts, e)
			}
		}
		s.Extensions = exts
	}
	if v, ok := get("PLAYLIST_FORMAT"); ok {
		s.PlaylistFormat = strings.ToLower(v)
	}
	if v, ok := get("WATCH_SETTLE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, EnvPrefix+"WATCH_SETTLE")
		} else {
			s.WatchSettleSeconds = f
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid value for %s", strings.Join(errs, ", "))
	}
	return nil
}

// ToTagConfig converts settings to an audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	version := byte(4)
	if s.TagVersion == 3 {
		version = 3
	}
	return &audio.TagConfig{
		Version:    version,
		EmbedCover: s.EmbedCover,
	}
}

// ToPlaylistFormat converts the playlist format setting.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}

// CoverSize returns the maximum embedded cover dimension, or 0 when
// covers are embedded at their original size.
func (s *Settings) CoverSize() int {
	if !s.CoverResize {
		return 0
	}
	return s.CoverMaxSize
}

// WatchSettle returns the debounce delay used by watch mode.
func (s *Settings) WatchSettle() time.Duration {
	if s.WatchSettleSeconds <= 0 {
		return 0
	}
	return time.Duration(s.WatchSettleSeconds * float64(time.Second))
}

// Workers returns the concurrency limit, never less than one.
func (s *Settings) Workers() int {
	return max(1, s.MaxConcurrentFiles)
}
