package statusline

import (
	"testing"
)

func TestNewStatusLine(t *testing.T) {
	s := New()

	if s.mode != ModeEdit {
		t.Errorf("expected default mode %q, got %q", ModeEdit, s.mode)
	}
	if s.Height() != 1 {
		t.Errorf("expected height 1, got %d", s.Height())
	}
}

func TestSetModeRecognizesMacroVocabulary(t *testing.T) {
	s := New()

	s.SetMode(ModeRecord)
	if s.mode != ModeRecord {
		t.Errorf("expected mode %q, got %q", ModeRecord, s.mode)
	}

	if _, ok := s.modeStyles[ModeRecord]; !ok {
		t.Error("expected a style registered for ModeRecord")
	}
	if _, ok := s.modeStyles[ModeEdit]; !ok {
		t.Error("expected a style registered for ModeEdit")
	}
}

func TestSetMessageAndClear(t *testing.T) {
	s := New()

	s.SetMessage("file saved", MessageInfo)
	if s.message != "file saved" || s.messageType != MessageInfo {
		t.Errorf("message not set as expected: %q %v", s.message, s.messageType)
	}

	s.ClearMessage()
	if s.message != "" || s.messageType != MessageNone {
		t.Errorf("expected cleared message, got %q %v", s.message, s.messageType)
	}
}

func TestFormatPosition(t *testing.T) {
	s := New()
	s.SetPosition(1, 1)
	s.SetTotalLines(100)

	if got := s.formatPosition(); got != "Ln 1, Col 1 | Top" {
		t.Errorf("expected Top indicator at line 1, got %q", got)
	}

	s.SetPosition(100, 1)
	if got := s.formatPosition(); got != "Ln 100, Col 1 | Bot" {
		t.Errorf("expected Bot indicator at last line, got %q", got)
	}

	s.SetPosition(50, 1)
	s.SetScrollPercent(49)
	if got := s.formatPosition(); got != "Ln 50, Col 1 | 49%" {
		t.Errorf("expected scroll percent, got %q", got)
	}
}

func TestSetCommandMode(t *testing.T) {
	s := New()
	s.SetCommandBuffer("write", 5)
	s.SetCommandMode(true, ':')

	if s.Height() != 2 {
		t.Errorf("expected height 2 while command mode is active, got %d", s.Height())
	}

	s.SetCommandMode(false, ':')
	if s.commandBuffer != "" || s.commandCursor != 0 {
		t.Error("expected command buffer cleared when leaving command mode")
	}
	if s.Height() != 1 {
		t.Errorf("expected height 1 after leaving command mode, got %d", s.Height())
	}
}
