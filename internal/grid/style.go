package grid

import (
	"github.com/dshills/keystorm/internal/renderer/core"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BlendOverlay tints base toward overlay by amount (0 = base unchanged,
// 1 = overlay), for selection and incremental-search highlight
// rendering. It blends in CIE-Lab space via go-colorful's BlendLab
// rather than core.Color.Blend's linear sRGB interpolation, so a
// 50% selection tint over a saturated syntax color doesn't pass
// through a muddy gray midpoint the way naive RGB lerp does.
//
// Indexed (palette) colors and the terminal-default color have no RGB
// value to blend, so for those BlendOverlay returns base when amount is
// below 0.5 and overlay otherwise — the same threshold core.Color.Blend
// uses for indexed colors.
func BlendOverlay(base, overlay core.Color, amount float64) core.Color {
	if base.Indexed || overlay.Indexed || base.Default || overlay.Default {
		if amount < 0.5 {
			return base
		}
		return overlay
	}

	baseLab := colorful.Color{R: float64(base.R) / 255, G: float64(base.G) / 255, B: float64(base.B) / 255}
	overlayLab := colorful.Color{R: float64(overlay.R) / 255, G: float64(overlay.G) / 255, B: float64(overlay.B) / 255}
	blended := baseLab.BlendLab(overlayLab, amount)
	r, g, b := blended.Clamped().RGB255()
	return core.Color{R: r, G: g, B: b}
}

// SelectionTint is the default blend amount applied to the selected
// region's background color (spec §4.3's region highlighting).
const SelectionTint = 0.35

// SearchMatchTint is the default blend amount applied to an
// incremental-search match's background color, stronger than
// SelectionTint so an active isearch hit reads as more prominent than
// a plain selection.
const SearchMatchTint = 0.55

// WithSelectionBackground returns style with its background blended
// toward tint by SelectionTint.
func WithSelectionBackground(style core.Style, tint core.Color) core.Style {
	style.Background = BlendOverlay(style.Background, tint, SelectionTint)
	return style
}

// WithSearchMatchBackground returns style with its background blended
// toward tint by SearchMatchTint.
func WithSearchMatchBackground(style core.Style, tint core.Color) core.Style {
	style.Background = BlendOverlay(style.Background, tint, SearchMatchTint)
	return style
}
