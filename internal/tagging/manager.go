package tagging

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/id3handler/internal/audio"
	"github.com/handiism/id3handler/internal/config"
	ioutils "github.com/handiism/id3handler/internal/io"
	"github.com/handiism/id3handler/internal/model"
	"github.com/handiism/id3handler/internal/pathmeta"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a tagging progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Status is the outcome of processing one file.
type Status int

const (
	// StatusDone means the command took effect (or would have, in a dry run).
	StatusDone Status = iota
	// StatusSkipped means there was nothing to do. Result.Err says why.
	StatusSkipped
	// StatusFailed means the file could not be processed. Result.Err says why.
	StatusFailed
)

// Result records what happened to one file.
type Result struct {
	Path     string
	Command  Command
	OnDisk   model.Metadata
	Proposed model.Metadata
	Status   Status
	Err      error
}

// Manager coordinates tag operations over a set of files.
type Manager struct {
	settings     *config.Settings
	parser       *pathmeta.Parser
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	dryRun       bool

	request        Request
	files          []string
	results        []Result
	totalFiles     int32
	processedFiles int32

	covers map[string]*coverEntry

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

type coverEntry struct {
	once sync.Once
	data []byte
}

// NewManager creates a new tagging Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Manager{
		settings:     settings,
		parser:       pathmeta.NewWithClock(nil),
		tagger:       audio.NewTagger(settings.ToTagConfig()),
		playlist:     audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		covers:       make(map[string]*coverEntry),
		onProgress:   onProgress,
	}
}

// SetDryRun makes Run report what it would do without touching any file.
func (m *Manager) SetDryRun(dryRun bool) {
	m.dryRun = dryRun
}

// SetParser replaces the path parser, e.g. to pin the current year.
func (m *Manager) SetParser(p *pathmeta.Parser) {
	m.parser = p
}

// Initialize resolves the request's paths into the list of files to process.
func (m *Manager) Initialize(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	files, err := ioutils.FindAudioFiles(ctx, req.Paths, m.settings.Extensions, m.settings.Recursive)
	if err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	if req.Source() != SourcePath && len(files) > 1 {
		return fmt.Errorf("%w: %d files found", ErrAmbiguousOverride, len(files))
	}

	m.request = req
	m.files = files
	m.results = nil
	m.totalFiles = int32(len(files))
	atomic.StoreInt32(&m.processedFiles, 0)

	if len(files) == 0 {
		m.progress(ProgressEvent{Message: "No audio files found", Level: LevelWarning})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio file(s)", len(files)), Level: LevelVerbose})
	}
	return nil
}

// Files returns the files resolved by Initialize.
func (m *Manager) Files() []string {
	return m.files
}

// Preview reads every file's tags and infers the proposed record without
// writing anything.
func (m *Manager) Preview(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(m.files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Workers())

	for i, path := range m.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := Result{Path: path, Command: m.request.Command, Proposed: m.Propose(m.request, path)}
			onDisk, err := m.tagger.Read(path)
			if err != nil {
				res.Status, res.Err = StatusFailed, err
			}
			res.OnDisk = onDisk
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run processes every initialized file.
//
// Per-file failures are reported through the progress callback and in
// Results; Run only returns an error when ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	results := make([]Result, len(m.files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Workers())

	for i, path := range m.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = m.Process(ctx, m.request, path)
			atomic.AddInt32(&m.processedFiles, 1)
			return nil
		})
	}

	err := g.Wait()

	m.mu.Lock()
	m.results = results
	m.mu.Unlock()

	if err != nil {
		return err
	}

	if m.request.Command == CommandUpdate && m.settings.CreatePlaylist {
		m.writePlaylists(ctx, results)
	}
	return nil
}

// GetProgress returns the number of processed and total files.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedFiles), m.totalFiles
}

// Results returns the outcome of the last Run, ordered by path.
func (m *Manager) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]Result, 0, len(m.results))
	for _, r := range m.results {
		if r.Path != "" {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// Summary counts the results of the last Run by status.
func (m *Manager) Summary() (done, skipped, failed int) {
	for _, r := range m.Results() {
		switch r.Status {
		case StatusDone:
			done++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return done, skipped, failed
}

// Propose infers the record that an update of path would write.
func (m *Manager) Propose(req Request, path string) model.Metadata {
	switch req.Source() {
	case SourceFields:
		return req.forced()
	case SourceOverride:
		return m.parser.Parse(req.Override)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return m.parser.Parse(path)
}

// Process applies req.Command to a single file. It is safe for concurrent use.
func (m *Manager) Process(ctx context.Context, req Request, path string) Result {
	res := Result{Path: path, Command: req.Command}

	onDisk, err := m.tagger.Read(path)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to read '%s': %v", path, err), Level: LevelError})
		return res
	}
	res.OnDisk = onDisk

	switch req.Command {
	case CommandPrint:
		m.progress(ProgressEvent{Message: fmt.Sprintf("'%s': %s", path, onDisk), Level: LevelInfo})
	case CommandUpdate:
		res.Proposed = m.Propose(req, path)
		m.update(ctx, &res)
	case CommandRemove:
		m.remove(&res)
	}
	return res
}

func (m *Manager) update(ctx context.Context, res *Result) {
	md := res.Proposed

	if md.IsIncomplete() {
		res.Status, res.Err = StatusFailed, ErrIncomplete
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Some input values are incorrect: artist:'%s' title:'%s' album:'%s' track:'%d' year:'%d'. Skipping '%s'",
				md.Artist, md.Title, md.Album, md.Track, md.Year, res.Path),
			Level: LevelError,
		})
		return
	}

	if md.Equal(res.OnDisk) {
		res.Status, res.Err = StatusSkipped, ErrUnchanged
		m.progress(ProgressEvent{Message: fmt.Sprintf("No need to update, the information already matches: '%s'", res.Path), Level: LevelVerbose})
		return
	}

	if m.dryRun {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Would update '%s' to %s", res.Path, md), Level: LevelInfo})
		return
	}

	artwork := m.coverFor(ctx, filepath.Dir(res.Path))
	if err := m.tagger.Write(res.Path, md, artwork); err != nil {
		res.Status, res.Err = StatusFailed, err
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to update ID3 tags of '%s': %v", res.Path, err), Level: LevelError})
		return
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Updated ID3 tags of '%s' as artist:'%s' year:'%d' album:'%s' track:'%d' title:'%s'",
			res.Path, md.Artist, md.Year, md.Album, md.Track, md.Title),
		Level: LevelSuccess,
	})
}

func (m *Manager) remove(res *Result) {
	if res.OnDisk.IsEmpty() {
		res.Status, res.Err = StatusSkipped, ErrEmpty
		m.progress(ProgressEvent{Message: fmt.Sprintf("No need to remove, item is already empty: '%s'", res.Path), Level: LevelVerbose})
		return
	}

	if m.dryRun {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Would remove tags from '%s'", res.Path), Level: LevelInfo})
		return
	}

	if err := m.tagger.Remove(res.Path); err != nil {
		if errors.Is(err, audio.ErrNoTags) {
			res.Status, res.Err = StatusSkipped, err
			m.progress(ProgressEvent{Message: fmt.Sprintf("No ID3v2 tags found in '%s'", res.Path), Level: LevelWarning})
			return
		}
		res.Status, res.Err = StatusFailed, err
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to remove tags from '%s': %v", res.Path, err), Level: LevelError})
		return
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Removed tags from '%s'", res.Path), Level: LevelSuccess})
}

// coverFor returns the prepared cover image for dir, loading it once.
func (m *Manager) coverFor(ctx context.Context, dir string) []byte {
	if !m.settings.EmbedCover {
		return nil
	}

	m.mu.Lock()
	entry, ok := m.covers[dir]
	if !ok {
		entry = &coverEntry{}
		m.covers[dir] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		path := ioutils.FindCover(dir, m.settings.CoverFileNames)
		if path == "" {
			return
		}
		data, err := m.imageService.LoadCover(ctx, path, m.settings.CoverSize())
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error loading cover %s: %v", path, err), Level: LevelWarning})
			return
		}
		entry.data = data
		m.progress(ProgressEvent{Message: fmt.Sprintf("Using cover %s", path), Level: LevelVerbose})
	})
	return entry.data
}

// writePlaylists creates one playlist per directory from the files that
// now carry a complete record.
func (m *Manager) writePlaylists(ctx context.Context, results []Result) {
	byDir := make(map[string][]model.TrackFile)
	for _, r := range results {
		var md model.Metadata
		switch {
		case r.Status == StatusDone:
			md = r.Proposed
		case errors.Is(r.Err, ErrUnchanged):
			md = r.OnDisk
		default:
			continue
		}
		dir := filepath.Dir(r.Path)
		byDir[dir] = append(byDir[dir], model.TrackFile{Path: r.Path, Metadata: md})
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		album := model.NewAlbumDir(dir, byDir[dir])
		path := album.PlaylistPath(m.playlist.Format())

		if m.dryRun {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Would create playlist %s", path), Level: LevelInfo})
			continue
		}

		content := m.playlist.CreatePlaylist(album)
		if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelSuccess})
		}
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
