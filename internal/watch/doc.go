// Package watch re-tags audio files as they appear in watched directories.
//
// Copying an album into a watched directory produces a burst of create and
// write events per file. Each file is handled once it has been quiet for
// the settle delay; any new event for the same file restarts the delay,
// and removing or renaming it cancels the pending work.
//
// Writing tags itself produces write events. The follow-up run finds the
// tags already up to date and skips the file.
package watch
