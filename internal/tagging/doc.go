// Package tagging provides the orchestration logic for printing, updating
// and removing the ID3 tags of many audio files at once.
//
// # Manager
//
// The Manager coordinates the whole process:
//
//  1. Resolve input files and directories into audio files
//  2. Read the tags currently on disk
//  3. Infer the proposed record from the path, an override string or
//     explicit fields
//  4. Write, skip or reject each file according to the update policy
//  5. Embed a cover image found next to the files (optional)
//  6. Generate one playlist per directory (optional)
//
// # Basic Usage
//
//	manager := tagging.NewManager(settings, func(event tagging.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, tagging.Request{
//	    Command: tagging.CommandUpdate,
//	    Paths:   []string{"/music/Artist - 2001 - Album"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.Run(ctx)
//
// # Update Policy
//
// An update is rejected with ErrIncomplete when any field of the proposed
// record is unknown, the track is below 1 or the year is before 1900. It is
// skipped with ErrUnchanged when all five fields already match the file.
// Otherwise the record is written.
//
// A remove is skipped with ErrEmpty when the file carries no tag data at all.
//
// # Concurrency
//
// Files are processed in parallel, bounded by settings.MaxConcurrentFiles.
// The progress callback may be invoked from several goroutines at once.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package tagging
