package tagging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/id3handler/internal/audio"
	"github.com/handiism/id3handler/internal/config"
	"github.com/handiism/id3handler/internal/model"
	"github.com/handiism/id3handler/internal/pathmeta"
)

const testYear = 2026

type eventLog struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (l *eventLog) add(e ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) contains(level ProgressLevel, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// createAudioFile writes an untagged stand-in for an audio file at dir/name.
func createAudioFile(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, bytes.Repeat([]byte{0}, 512), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func newTestManager(settings *config.Settings) (*Manager, *eventLog) {
	log := &eventLog{}
	m := NewManager(settings, log.add)
	m.SetParser(pathmeta.New(testYear))
	return m, log
}

func run(t *testing.T, m *Manager, req Request) []Result {
	t.Helper()
	ctx := context.Background()
	if err := m.Initialize(ctx, req); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return m.Results()
}

func readTags(t *testing.T, path string) model.Metadata {
	t.Helper()
	md, err := audio.NewTagger(nil).Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return md
}

func TestManager_UpdateRelativePath(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"current directory", "."},
		{"relative file", "01 - In the Flesh.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			albumDir := filepath.Join(t.TempDir(), "Pink Floyd - 1979 - The Wall")
			path := createAudioFile(t, albumDir, "01 - In the Flesh.mp3")
			t.Chdir(albumDir)
			m, _ := newTestManager(nil)

			results := run(t, m, Request{Command: CommandUpdate, Paths: []string{tt.arg}})
			if len(results) != 1 || results[0].Status != StatusDone {
				t.Fatalf("Results() = %+v, want one done result", results)
			}

			want := model.Metadata{Artist: "Pink Floyd", Title: "In the Flesh", Album: "The Wall", Track: 1, Year: 1979}
			if got := readTags(t, path); got != want {
				t.Errorf("tags = %v, want %v", got, want)
			}
		})
	}
}

func TestManager_ProposeRelativePath(t *testing.T) {
	albumDir := filepath.Join(t.TempDir(), "Artist - 2001 - Album")
	createAudioFile(t, albumDir, "02 - Song.mp3")
	t.Chdir(albumDir)
	m, _ := newTestManager(nil)

	got := m.Propose(Request{Command: CommandUpdate}, "02 - Song.mp3")
	want := model.Metadata{Artist: "Artist", Title: "Song", Album: "Album", Track: 2, Year: 2001}
	if got != want {
		t.Errorf("Propose() = %v, want %v", got, want)
	}
}

func TestManager_UpdateFromPath(t *testing.T) {
	albumDir := filepath.Join(t.TempDir(), "Artist - 2001 - Album")
	path := createAudioFile(t, albumDir, "01 - Title.mp3")
	m, log := newTestManager(nil)

	results := run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})
	if len(results) != 1 || results[0].Status != StatusDone {
		t.Fatalf("Results() = %+v, want one done result", results)
	}

	want := model.Metadata{Artist: "Artist", Title: "Title", Album: "Album", Track: 1, Year: 2001}
	if got := readTags(t, path); got != want {
		t.Errorf("tags = %v, want %v", got, want)
	}
	if !log.contains(LevelSuccess, "Updated ID3 tags") {
		t.Error("expected a success event")
	}

	// A second run finds nothing to change.
	results = run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})
	if results[0].Status != StatusSkipped || !errors.Is(results[0].Err, ErrUnchanged) {
		t.Errorf("second run = %+v, want skipped as unchanged", results[0])
	}
}

func TestManager_UpdateIncomplete(t *testing.T) {
	path := createAudioFile(t, filepath.Join(t.TempDir(), "Various"), "ab.mp3")
	m, log := newTestManager(nil)

	results := run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})
	if results[0].Status != StatusFailed || !errors.Is(results[0].Err, ErrIncomplete) {
		t.Errorf("result = %+v, want ErrIncomplete", results[0])
	}
	if !log.contains(LevelError, "Some input values are incorrect") {
		t.Error("expected an error event")
	}
	if got := readTags(t, path); !got.IsEmpty() {
		t.Errorf("file should stay untagged, got %v", got)
	}
}

func TestManager_UpdateOverride(t *testing.T) {
	path := createAudioFile(t, t.TempDir(), "track.mp3")
	m, _ := newTestManager(nil)

	run(t, m, Request{
		Command:  CommandUpdate,
		Paths:    []string{path},
		Override: "Other Artist - 1999 - Record / 07 - Song",
	})

	want := model.Metadata{Artist: "Other Artist", Title: "Song", Album: "Record", Track: 7, Year: 1999}
	if got := readTags(t, path); got != want {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestManager_UpdateFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		want    model.Metadata
		wantErr error
	}{
		{
			name:   "all fields",
			fields: []string{"Band", "1985", "LP", "4", "Tune"},
			want:   model.Metadata{Artist: "Band", Title: "Tune", Album: "LP", Track: 4, Year: 1985},
		},
		{
			name:    "missing fields",
			fields:  []string{"Band", "1985", "LP"},
			want:    model.UnknownMetadata(),
			wantErr: ErrIncomplete,
		},
		{
			name:    "bad number",
			fields:  []string{"Band", "year", "LP", "4", "Tune"},
			want:    model.UnknownMetadata(),
			wantErr: ErrIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createAudioFile(t, t.TempDir(), "track.mp3")
			m, _ := newTestManager(nil)

			results := run(t, m, Request{Command: CommandUpdate, Paths: []string{path}, Fields: tt.fields})
			if !errors.Is(results[0].Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", results[0].Err, tt.wantErr)
			}
			if got := readTags(t, path); got != tt.want {
				t.Errorf("tags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManager_InitializeErrors(t *testing.T) {
	dir := t.TempDir()
	createAudioFile(t, dir, "01 - One.mp3")
	createAudioFile(t, dir, "02 - Two.mp3")

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "too many fields",
			req:     Request{Command: CommandUpdate, Paths: []string{dir}, Fields: []string{"a", "b", "c", "d", "e", "f"}},
			wantErr: ErrTooManyFields,
		},
		{
			name:    "override on several files",
			req:     Request{Command: CommandUpdate, Paths: []string{dir}, Override: "A - B / 01 - C"},
			wantErr: ErrAmbiguousOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(nil)
			if err := m.Initialize(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Initialize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	m, _ := newTestManager(nil)
	if err := m.Initialize(context.Background(), Request{Command: CommandPrint}); err == nil {
		t.Error("Initialize() without paths should fail")
	}
}

func TestManager_Remove(t *testing.T) {
	path := createAudioFile(t, filepath.Join(t.TempDir(), "Artist - 2001 - Album"), "01 - Title.mp3")
	m, log := newTestManager(nil)

	// Nothing to remove yet.
	results := run(t, m, Request{Command: CommandRemove, Paths: []string{path}})
	if results[0].Status != StatusSkipped || !errors.Is(results[0].Err, ErrEmpty) {
		t.Errorf("result = %+v, want skipped as empty", results[0])
	}

	run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})
	results = run(t, m, Request{Command: CommandRemove, Paths: []string{path}})
	if results[0].Status != StatusDone {
		t.Errorf("result = %+v, want done", results[0])
	}
	if got := readTags(t, path); !got.IsEmpty() {
		t.Errorf("tags after remove = %v, want empty", got)
	}
	if !log.contains(LevelSuccess, "Removed tags") {
		t.Error("expected a success event")
	}
}

func TestManager_Print(t *testing.T) {
	path := createAudioFile(t, filepath.Join(t.TempDir(), "Artist - 2001 - Album"), "01 - Title.mp3")
	m, log := newTestManager(nil)

	run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})
	results := run(t, m, Request{Command: CommandPrint, Paths: []string{path}})

	if results[0].Status != StatusDone {
		t.Errorf("result = %+v, want done", results[0])
	}
	if !log.contains(LevelInfo, "'Artist' - 2001 - 'Album' : 1 - 'Title'") {
		t.Error("expected the record to be printed")
	}
}

func TestManager_DryRun(t *testing.T) {
	path := createAudioFile(t, filepath.Join(t.TempDir(), "Artist - 2001 - Album"), "01 - Title.mp3")
	m, log := newTestManager(nil)
	m.SetDryRun(true)

	results := run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})
	if results[0].Status != StatusDone {
		t.Errorf("result = %+v, want done", results[0])
	}
	if got := readTags(t, path); !got.IsEmpty() {
		t.Errorf("dry run wrote tags: %v", got)
	}
	if !log.contains(LevelInfo, "Would update") {
		t.Error("expected a dry-run event")
	}
}

func TestManager_Preview(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Artist - 2001 - Album")
	createAudioFile(t, dir, "02 - Second.mp3")
	createAudioFile(t, dir, "01 - First.mp3")
	m, _ := newTestManager(nil)

	if err := m.Initialize(context.Background(), Request{Command: CommandUpdate, Paths: []string{dir}}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	results, err := m.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Preview() returned %d results, want 2", len(results))
	}
	if results[0].Proposed.Title != "First" || results[1].Proposed.Track != 2 {
		t.Errorf("Preview() = %+v", results)
	}
	if !results[0].OnDisk.IsEmpty() {
		t.Errorf("OnDisk = %v, want empty", results[0].OnDisk)
	}
}

func TestManager_Playlist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Artist - 2001 - Album")
	createAudioFile(t, dir, "02 - Second.mp3")
	createAudioFile(t, dir, "01 - First.mp3")

	settings := config.DefaultSettings()
	settings.CreatePlaylist = true
	settings.M3UExtended = false
	m, _ := newTestManager(settings)

	run(t, m, Request{Command: CommandUpdate, Paths: []string{dir}})

	data, err := os.ReadFile(filepath.Join(dir, "Album.m3u"))
	if err != nil {
		t.Fatalf("playlist not written: %v", err)
	}
	if want := "01 - First.mp3\n02 - Second.mp3\n"; string(data) != want {
		t.Errorf("playlist = %q, want %q", data, want)
	}
}

func TestManager_EmbedsCover(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Artist - 2001 - Album")
	path := createAudioFile(t, dir, "01 - Title.mp3")

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, _ := newTestManager(nil)
	run(t, m, Request{Command: CommandUpdate, Paths: []string{path}})

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tag.Close()

	if pictures := tag.GetFrames(tag.CommonID("Attached picture")); len(pictures) != 1 {
		t.Errorf("got %d pictures, want 1", len(pictures))
	}
}

func TestManager_Progress(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Artist - 2001 - Album")
	createAudioFile(t, dir, "01 - First.mp3")
	createAudioFile(t, dir, "02 - Second.mp3")
	createAudioFile(t, dir, "x.mp3")
	m, _ := newTestManager(nil)

	run(t, m, Request{Command: CommandUpdate, Paths: []string{dir}})

	processed, total := m.GetProgress()
	if processed != 3 || total != 3 {
		t.Errorf("GetProgress() = %d/%d, want 3/3", processed, total)
	}
	done, skipped, failed := m.Summary()
	if done != 2 || skipped != 0 || failed != 1 {
		t.Errorf("Summary() = %d/%d/%d, want 2/0/1", done, skipped, failed)
	}
}

func TestParseCommand(t *testing.T) {
	for _, name := range []string{"print", "update", "remove"} {
		cmd, ok := ParseCommand(name)
		if !ok || cmd.String() != name {
			t.Errorf("ParseCommand(%q) = %v, %v", name, cmd, ok)
		}
	}
	if _, ok := ParseCommand("watch"); ok {
		t.Error("ParseCommand(\"watch\") should fail")
	}
}
