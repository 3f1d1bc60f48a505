package presentation

import (
	"accessiai/internal/models"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Minimum WCAG contrast ratio of foreground text per contrast mode.
const (
	MinRatioNormal    = 4.5
	MinRatioHigh      = 7.0
	MinRatioExtraHigh = 15.0
)

// Palette is the set of root colors the frontend exposes as CSS variables.
type Palette struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`
	Focus      string `json:"focus"`
}

type basePalette struct {
	background, foreground, accent, focus string
	minRatio                              float64
}

var basePalettes = map[models.ContrastMode]basePalette{
	models.ContrastNormal:    {"#ffffff", "#1f2937", "#2563eb", "#f59e0b", MinRatioNormal},
	models.ContrastHigh:      {"#000000", "#ffffff", "#ffd700", "#00ffff", MinRatioHigh},
	models.ContrastExtraHigh: {"#000000", "#ffff00", "#00ffff", "#ff00ff", MinRatioExtraHigh},
}

// Accents that stay distinguishable under each color vision deficiency.
var safeAccents = map[models.ColorBlindness][2]string{
	// light background, dark background
	models.ColorBlindnessProtanopia:   {"#0072b2", "#56b4e9"},
	models.ColorBlindnessDeuteranopia: {"#0072b2", "#56b4e9"},
	models.ColorBlindnessTritanopia:   {"#d55e00", "#cc79a7"},
}

// PaletteFor builds the palette for a contrast mode and color filter. The
// accent is darkened or lightened towards the foreground until it reaches
// the mode's minimum ratio against the background.
func PaletteFor(contrast models.ContrastMode, filter models.ColorBlindness) Palette {
	base, ok := basePalettes[contrast]
	if !ok {
		base = basePalettes[models.ContrastNormal]
	}

	bg := mustHex(base.background)
	fg := mustHex(base.foreground)
	accent := mustHex(base.accent)

	if alt, ok := safeAccents[filter]; ok {
		if luminance(bg) > 0.5 {
			accent = mustHex(alt[0])
		} else {
			accent = mustHex(alt[1])
		}
	}

	return Palette{
		Background: bg.Hex(),
		Foreground: fg.Hex(),
		Accent:     ensureContrast(accent, bg, fg, base.minRatio).Hex(),
		Focus:      ensureContrast(mustHex(base.focus), bg, fg, MinRatioNormal).Hex(),
	}
}

// ContrastRatio returns the WCAG 2 contrast ratio between two hex colors,
// or 0 if either does not parse.
func ContrastRatio(a, b string) float64 {
	ca, err := colorful.Hex(a)
	if err != nil {
		return 0
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return 0
	}
	return ratio(ca, cb)
}

func ensureContrast(c, bg, fg colorful.Color, min float64) colorful.Color {
	if ratio(c, bg) >= min {
		return c
	}
	for step := 1; step < 10; step++ {
		// round through hex so the check matches what the frontend receives
		blended := mustHex(c.BlendLab(fg, float64(step)/10).Clamped().Hex())
		if ratio(blended, bg) >= min {
			return blended
		}
	}
	return fg
}

func ratio(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("presentation: bad palette color " + s)
	}
	return c
}
