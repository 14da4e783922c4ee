package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/id3handler/internal/model"
	"github.com/handiism/id3handler/internal/tagging"
)

func TestPreviewMark(t *testing.T) {
	complete := model.Metadata{Artist: "A", Title: "T", Album: "B", Track: 1, Year: 2000}

	tests := []struct {
		name   string
		result tagging.Result
		want   string
	}{
		{"write", tagging.Result{Proposed: complete, OnDisk: model.UnknownMetadata()}, "+"},
		{"unchanged", tagging.Result{Proposed: complete, OnDisk: complete}, "="},
		{"incomplete", tagging.Result{Proposed: model.UnknownMetadata()}, "!"},
		{"read error", tagging.Result{Proposed: complete, Err: errors.New("boom")}, "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := previewMark(tt.result); got != tt.want {
				t.Errorf("previewMark() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModel_ToggleOptions(t *testing.T) {
	m := NewModel(nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(Model)

	if !m.recursive || !m.playlist {
		t.Errorf("recursive = %v, playlist = %v, want both enabled", m.recursive, m.playlist)
	}
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
}

func TestModel_ScanDone(t *testing.T) {
	m := NewModel(nil)
	m.state = StateScanning

	next, _ := m.Update(ScanDoneMsg{Err: errors.New("no such file")})
	m = next.(Model)
	if m.state != StateError || m.err == nil {
		t.Errorf("state = %v, err = %v, want error state", m.state, m.err)
	}

	m.state = StateScanning
	preview := []tagging.Result{{Path: "/music/01 - Song.mp3"}}
	next, _ = m.Update(ScanDoneMsg{Preview: preview})
	m = next.(Model)
	if m.state != StatePreview || len(m.preview) != 1 {
		t.Errorf("state = %v, preview = %v, want preview state", m.state, m.preview)
	}
}

func TestModel_LogsAreBounded(t *testing.T) {
	m := NewModel(nil)
	for i := 0; i < maxLogs+5; i++ {
		next, _ := m.Update(ProgressMsg{Event: tagging.ProgressEvent{Message: "x", Level: tagging.LevelInfo}})
		m = next.(Model)
	}
	next, _ := m.Update(ProgressMsg{Event: tagging.ProgressEvent{Message: "hidden", Level: tagging.LevelVerbose}})
	m = next.(Model)

	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
	if m.logs[len(m.logs)-1].Message == "hidden" {
		t.Error("verbose events should be hidden unless verbose is enabled")
	}
}
