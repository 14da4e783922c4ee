package pathmeta

import (
	"testing"
	"time"

	"github.com/handiism/id3handler/internal/model"
)

const testYear = 2026

func TestParseAlbum(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantArtist string
		wantAlbum  string
		wantYear   int
	}{
		{
			name: "artist year album", path: "/music/Pink Floyd - 1979 - The Wall/01 - Another Brick in the Wall.mp3",
			wantArtist: "Pink Floyd", wantAlbum: "The Wall", wantYear: 1979,
		},
		{
			name: "short artist only", path: "/music/SoloArtist/file.mp3",
			wantArtist: "SoloArtist", wantAlbum: model.Unknown, wantYear: 0,
		},
		{
			name: "single hyphen uses current year", path: "/music/Artist - Album/05.mp3",
			wantArtist: "Artist", wantAlbum: "Album", wantYear: testYear,
		},
		{
			name: "middle token is not a year", path: "/music/Artist - Live - Album/x.mp3",
			wantArtist: "Artist", wantAlbum: "Album", wantYear: 0,
		},
		{
			name: "catalog number skipped", path: "/music/Band - Cat 0042 - 1985 - Album/x.mp3",
			wantArtist: "Band - Cat 0042", wantAlbum: "Album", wantYear: 1985,
		},
		{
			name: "trailing year stays in the album", path: "/music/Artist - Greatest Hits 1999/01 - Song.mp3",
			wantArtist: "Artist", wantAlbum: "Greatest Hits 1999", wantYear: testYear,
		},
		{
			name: "long name without hyphen", path: "/music/Long Artist Name/x.mp3",
			wantArtist: "Long Artist Name", wantAlbum: model.Unknown, wantYear: 0,
		},
		{
			name: "future year rejected", path: "/music/Future - 2099 - Album/x.mp3",
			wantArtist: "Future", wantAlbum: "Album", wantYear: 0,
		},
		{
			name: "year before 1900 located but not kept", path: "/music/Old - 1850 - Album/x.mp3",
			wantArtist: "Old", wantAlbum: "Album", wantYear: 0,
		},
		{
			name: "year first", path: "/music/1999 - Album/x.mp3",
			wantArtist: model.Unknown, wantAlbum: "Album", wantYear: 1999,
		},
		{
			name: "dot directory", path: "./01 - Song.mp3",
			wantArtist: model.Unknown, wantAlbum: model.Unknown, wantYear: 0,
		},
		{
			name: "root directory", path: "/01 - Song.mp3",
			wantArtist: model.Unknown, wantAlbum: model.Unknown, wantYear: 0,
		},
		{
			name: "override string", path: "Pink Floyd - 1979 - The Wall / 01 - In the Flesh",
			wantArtist: "Pink Floyd", wantAlbum: "The Wall", wantYear: 1979,
		},
	}

	p := New(testYear)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseAlbum(tt.path)
			if got.Artist != tt.wantArtist {
				t.Errorf("Artist = %q, want %q", got.Artist, tt.wantArtist)
			}
			if got.Album != tt.wantAlbum {
				t.Errorf("Album = %q, want %q", got.Album, tt.wantAlbum)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", got.Year, tt.wantYear)
			}
		})
	}
}

func TestParseTrack(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantTrack int
		wantTitle string
	}{
		{"number dash title", "/music/Pink Floyd - 1979 - The Wall/01 - Another Brick in the Wall.mp3", 1, "Another Brick in the Wall"},
		{"number dot title", "/x/05. Money.mp3", 5, "Money"},
		{"number space title", "/x/07 Time.mp3", 7, "Time"},
		{"single digit via hyphen", "/x/3 - Breathe.mp3", 3, "Breathe"},
		{"short name", "/x/track.mp3", 0, model.Unknown},
		{"no number no hyphen", "/x/Intro Song.mp3", 0, "Intro Song"},
		{"number after artist", "/x/Artist - 12 - Song.flac", 12, "Song"},
		{"three digit number", "/x/Track 100 - Song.mp3", 0, "Song"},
		{"zero track", "/x/00 - Hidden.mp3", 0, "Hidden"},
		{"dots in directory and title", "/Mr. Blue Sky/04 - Mr. Blue Sky.mp3", 4, "Mr. Blue Sky"},
		{"no extension", "/x/01 - Song", 1, "Song"},
		{"no separator after number", "/x/01Title.mp3", 1, "Title"},
		{"at most two separators dropped", "/x/01...Title.mp3", 1, ".Title"},
	}

	p := New(testYear)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseTrack(tt.path)
			if got.Track != tt.wantTrack {
				t.Errorf("Track = %d, want %d", got.Track, tt.wantTrack)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestParse(t *testing.T) {
	p := New(testYear)

	got := p.Parse("/music/Pink Floyd - 1979 - The Wall/01 - Another Brick in the Wall.mp3")
	want := model.Metadata{
		Artist: "Pink Floyd",
		Title:  "Another Brick in the Wall",
		Album:  "The Wall",
		Track:  1,
		Year:   1979,
	}
	if got != want {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_NoSeparator(t *testing.T) {
	p := New(testYear)

	got := p.Parse("01 - Another Brick in the Wall.mp3")
	if got != model.UnknownMetadata() {
		t.Errorf("Parse() = %v, want all unknown", got)
	}
}

func TestParse_OverrideString(t *testing.T) {
	p := New(testYear)

	got := p.Parse("Pink Floyd - 1979 - The Wall / 01 - In the Flesh")
	want := model.Metadata{Artist: "Pink Floyd", Title: "In the Flesh", Album: "The Wall", Track: 1, Year: 1979}
	if got != want {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_UsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC) }
	p := NewWithClock(clock)

	got := p.Parse("/music/Artist - Album/01 - Song.mp3")
	if got.Year != 2000 {
		t.Errorf("Year = %d, want 2000", got.Year)
	}

	// 2001 lies in the future for this clock.
	got = p.Parse("/music/Artist - 2001 - Album/01 - Song.mp3")
	if got.Year != 0 {
		t.Errorf("Year = %d, want 0", got.Year)
	}
}

func TestForce(t *testing.T) {
	got := Force("Artist", "1999", "Album", "7", "Title")
	want := model.Metadata{Artist: "Artist", Title: "Title", Album: "Album", Track: 7, Year: 1999}
	if got != want {
		t.Errorf("Force() = %v, want %v", got, want)
	}

	// No validation: out of range values pass through.
	got = Force("A", "1200", "B", "150", "T")
	if got.Year != 1200 || got.Track != 150 {
		t.Errorf("Force() = %v, want year 1200 and track 150", got)
	}

	got = Force("A", "unknown", "B", "x", "T")
	if got.Year != 0 || got.Track != 0 {
		t.Errorf("Force() = %v, want zero numbers", got)
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"/music/Pink Floyd - 1979 - The Wall/01 - Another Brick in the Wall.mp3",
		"/music/SoloArtist/file.mp3",
		"./x.mp3",
		"/",
		"--/--",
		"a/b/c/1999/99",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	p := New(testYear)
	f.Fuzz(func(t *testing.T, path string) {
		md := p.Parse(path)

		if md.Year != 0 && (md.Year < model.MinTagYear || md.Year > testYear) {
			t.Errorf("Year %d out of range for %q", md.Year, path)
		}
		if md.Track != 0 && (md.Track < 1 || md.Track > 99) {
			t.Errorf("Track %d out of range for %q", md.Track, path)
		}
		for _, field := range []string{md.Artist, md.Album, md.Title} {
			if field == "" || (field != model.Unknown && Trim(field) != field) {
				t.Errorf("field %q not trimmed for %q", field, path)
			}
		}
	})
}
