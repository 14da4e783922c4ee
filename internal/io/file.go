// Package ioutils provides file system utilities for id3handler.
//
// This package contains functions for:
//   - Audio file discovery
//   - Cover image lookup
//   - File writing
//
// Functions that walk directories respect context cancellation between
// entries.
package ioutils

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultAudioExtensions lists the file extensions treated as taggable audio.
var DefaultAudioExtensions = []string{".mp3"}

// IsAudioFile reports whether path has one of the given extensions.
// The comparison is case-insensitive.
func IsAudioFile(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// FindAudioFiles expands the given paths into a sorted list of audio files.
//
// Files are returned regardless of their extension, so an explicitly named
// file is always processed. Directories are scanned for files with one of the
// extensions; subdirectories are only entered when recursive is set. Every
// returned path is absolute, so "." expands to files whose directory name can
// still be read from the path.
//
// Example:
//
//	files, err := FindAudioFiles(ctx, []string{"/music/Album"}, []string{".mp3"}, false)
//	// files = ["/music/Album/01 - Intro.mp3", "/music/Album/02 - Song.mp3"]
func FindAudioFiles(ctx context.Context, paths []string, extensions []string, recursive bool) ([]string, error) {
	var files []string

	for _, root := range paths {
		root, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if IsAudioFile(path, extensions) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// FindCover returns the first of names that exists as a regular file in dir,
// or "" when none does. Matching is case-insensitive.
//
// Example:
//
//	cover := FindCover("/music/Album", []string{"cover.jpg", "folder.jpg"})
func FindCover(dir string, names []string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	for _, name := range names {
		for _, entry := range entries {
			if entry.Type().IsRegular() && strings.EqualFold(entry.Name(), name) {
				return filepath.Join(dir, entry.Name())
			}
		}
	}
	return ""
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context checked before writing
//   - path: File path to write to
//   - data: Bytes to write
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
