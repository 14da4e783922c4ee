package audio

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	audiotag "github.com/dhowden/tag"
	"github.com/handiism/id3handler/internal/model"
)

// ErrNoTags is returned by Remove when the file carries no ID3v2 frames.
var ErrNoTags = errors.New("no ID3v2 tags found")

const (
	frameTrack      = "TRCK"
	frameYearV23    = "TYER"
	frameRecordedV4 = "TDRC"
)

// TagConfig holds tagging configuration.
//
// Example:
//
//	cfg := &TagConfig{
//	    Version:     4,    // write ID3v2.4 (TDRC for the year)
//	    EmbedCover:  true, // attach cover art passed to Write
//	}
type TagConfig struct {
	// Version is the ID3v2 major version written to files: 3 or 4.
	// Any other value is treated as 4.
	Version byte

	// EmbedCover enables the APIC frame when Write receives artwork.
	EmbedCover bool
}

// DefaultTagConfig returns the default tag configuration: ID3v2.4 with
// cover embedding enabled.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Version:    4,
		EmbedCover: true,
	}
}

// Tagger reads, writes and removes ID3 tags on audio files.
//
// Tagger uses the id3v2 library for everything it writes. When a file has
// no ID3v2 frames, Read falls back to the dhowden/tag reader so that ID3v1
// tags (and other containers it understands) are still reported.
//
// Fields that are absent from the file are returned as sentinels
// (model.Unknown for text, 0 for numbers).
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	onDisk, err := tagger.Read(path)
//	if err != nil {
//	    return err
//	}
//	if proposed.Matches(onDisk) < model.FieldCount {
//	    err = tagger.Write(path, proposed, nil)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Read returns the tag data stored in the file at path.
//
// A file without any recognizable tag yields model.UnknownMetadata and a
// nil error. Errors are only returned when the file cannot be opened.
func (t *Tagger) Read(path string) (model.Metadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.UnknownMetadata(), fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	if tag.Count() == 0 {
		return readFallback(path), nil
	}

	return model.Metadata{
		Artist: textOrUnknown(tag.Artist()),
		Title:  textOrUnknown(tag.Title()),
		Album:  textOrUnknown(tag.Album()),
		Track:  leadingNumber(tag.GetTextFrame(frameTrack).Text),
		Year:   readYear(tag),
	}, nil
}

// Write replaces the artist, title, album, track and year frames of the
// file at path with md and saves the file.
//
// Other frames are preserved. When artwork is non-nil and cover embedding
// is enabled, any existing front cover is replaced.
func (t *Tagger) Write(path string, md model.Metadata, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	enc := id3v2.EncodingUTF8
	yearFrame := frameRecordedV4
	if t.config.Version == 3 {
		// ID3v2.3 has no UTF-8 text encoding.
		enc = id3v2.EncodingUTF16
		yearFrame = frameYearV23
		tag.SetVersion(3)
	} else {
		tag.SetVersion(4)
	}
	tag.SetDefaultEncoding(enc)

	tag.SetArtist(md.Artist)
	tag.SetAlbum(md.Album)
	tag.SetTitle(md.Title)

	tag.DeleteFrames(frameTrack)
	tag.AddTextFrame(frameTrack, enc, strconv.Itoa(md.Track))

	tag.DeleteFrames(frameYearV23)
	tag.DeleteFrames(frameRecordedV4)
	tag.AddTextFrame(yearFrame, enc, strconv.Itoa(md.Year))

	if artwork != nil && t.config.EmbedCover {
		updateArtwork(tag, artwork, enc)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Remove strips every ID3v2 frame from the file at path.
//
// ErrNoTags is returned when there was nothing to remove.
func (t *Tagger) Remove(path string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	if tag.Count() == 0 {
		return ErrNoTags
	}

	tag.DeleteAllFrames()
	if err := tag.Save(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// updateArtwork embeds cover art as an attached picture frame.
func updateArtwork(tag *id3v2.Tag, artwork []byte, enc id3v2.Encoding) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    enc,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}

// readYear prefers the ID3v2.4 recording time and falls back to TYER.
func readYear(tag *id3v2.Tag) int {
	if y := leadingNumber(tag.GetTextFrame(frameRecordedV4).Text); y > 0 {
		return y
	}
	return leadingNumber(tag.GetTextFrame(frameYearV23).Text)
}

// readFallback reads tags the id3v2 library does not handle, such as ID3v1.
// Any failure is reported as an untagged file.
func readFallback(path string) model.Metadata {
	f, err := os.Open(path)
	if err != nil {
		return model.UnknownMetadata()
	}
	defer f.Close()

	m, err := audiotag.ReadFrom(f)
	if err != nil {
		return model.UnknownMetadata()
	}

	track, _ := m.Track()
	return model.Metadata{
		Artist: textOrUnknown(m.Artist()),
		Title:  textOrUnknown(m.Title()),
		Album:  textOrUnknown(m.Album()),
		Track:  track,
		Year:   m.Year(),
	}
}

func textOrUnknown(s string) string {
	s = strings.TrimSpace(strings.Trim(s, "\x00"))
	if s == "" {
		return model.Unknown
	}
	return s
}

// leadingNumber parses the digits at the start of s: "3/12" is 3 and
// "1979-05-01" is 1979. Anything unparseable is 0.
func leadingNumber(s string) int {
	s = strings.TrimSpace(strings.Trim(s, "\x00"))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
