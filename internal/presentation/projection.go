package presentation

import (
	"strconv"

	"accessiai/internal/models"
)

// Projection is the root presentation state derived from Settings: what
// the frontend writes onto the document element.
type Projection struct {
	FontSize           int                   `json:"fontSize"`
	RootFontSize       string                `json:"rootFontSize"`
	Contrast           models.ContrastMode   `json:"contrast"`
	ColorFilter        models.ColorBlindness `json:"colorFilter"`
	AnimationsDisabled bool                  `json:"animationsDisabled"`
	LargeButtons       bool                  `json:"largeButtons"`
	FocusIndicators    bool                  `json:"focusIndicators"`
	ScreenReader       bool                  `json:"screenReader"`
	Palette            Palette               `json:"palette"`
	CSSVariables       map[string]string     `json:"cssVariables"`
}

// Project derives the presentation state for s. Out-of-range or unknown
// values are normalized first, so Project never fails.
func Project(s models.Settings) Projection {
	s.Normalize()
	v := s.Visual

	p := Projection{
		FontSize:           v.FontSize,
		Contrast:           v.Contrast,
		ColorFilter:        v.ColorBlindness,
		AnimationsDisabled: !v.Animations,
		LargeButtons:       v.LargeButtons,
		FocusIndicators:    v.FocusIndicators,
		ScreenReader:       v.ScreenReader,
	}
	p.refresh()
	return p
}

// WithVisual returns p with font size and contrast replaced.
func (p Projection) WithVisual(fontSize int, contrast models.ContrastMode) Projection {
	probe := models.Defaults()
	probe.Visual.FontSize = fontSize
	probe.Visual.Contrast = contrast
	probe.Normalize()

	p.FontSize = probe.Visual.FontSize
	p.Contrast = probe.Visual.Contrast
	p.refresh()
	return p
}

func (p *Projection) refresh() {
	p.RootFontSize = strconv.Itoa(p.FontSize) + "px"
	p.Palette = PaletteFor(p.Contrast, p.ColorFilter)

	vars := map[string]string{
		"--font-size-base":   p.RootFontSize,
		"--color-background": p.Palette.Background,
		"--color-foreground": p.Palette.Foreground,
		"--color-accent":     p.Palette.Accent,
		"--color-focus":      p.Palette.Focus,
	}
	if p.AnimationsDisabled {
		vars["--animation-duration"] = "0s"
	}
	p.CSSVariables = vars
}
