package grid

import (
	"testing"

	"github.com/dshills/keystorm/internal/renderer/core"
)

func TestBlendOverlayZeroAmountReturnsBase(t *testing.T) {
	base := core.ColorFromRGB(10, 20, 30)
	overlay := core.ColorFromRGB(200, 100, 50)
	got := BlendOverlay(base, overlay, 0)
	if !got.Equals(base) {
		t.Errorf("BlendOverlay(base, overlay, 0) = %v, want base %v", got, base)
	}
}

func TestBlendOverlayFullAmountReturnsOverlay(t *testing.T) {
	base := core.ColorFromRGB(10, 20, 30)
	overlay := core.ColorFromRGB(200, 100, 50)
	got := BlendOverlay(base, overlay, 1)
	if !got.Equals(overlay) {
		t.Errorf("BlendOverlay(base, overlay, 1) = %v, want overlay %v", got, overlay)
	}
}

func TestBlendOverlayIndexedColorsFallBack(t *testing.T) {
	base := core.ColorFromIndex(1)
	overlay := core.ColorFromIndex(2)
	if got := BlendOverlay(base, overlay, 0.9); !got.Equals(overlay) {
		t.Errorf("BlendOverlay with indexed colors at amount 0.9 = %v, want overlay", got)
	}
	if got := BlendOverlay(base, overlay, 0.1); !got.Equals(base) {
		t.Errorf("BlendOverlay with indexed colors at amount 0.1 = %v, want base", got)
	}
}

func TestWithSelectionBackgroundBlendsTowardTint(t *testing.T) {
	style := core.NewStyle(core.ColorWhite).WithBackground(core.ColorBlack)
	tinted := WithSelectionBackground(style, core.ColorBlue)
	if tinted.Background.Equals(style.Background) {
		t.Error("expected selection tint to change the background color")
	}
}
