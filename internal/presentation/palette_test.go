package presentation

import (
	"testing"

	"accessiai/internal/models"
)

func TestPaletteFor_MeetsContrastMinimums(t *testing.T) {
	modes := map[models.ContrastMode]float64{
		models.ContrastNormal:    MinRatioNormal,
		models.ContrastHigh:      MinRatioHigh,
		models.ContrastExtraHigh: MinRatioExtraHigh,
	}
	filters := []models.ColorBlindness{
		models.ColorBlindnessNone,
		models.ColorBlindnessProtanopia,
		models.ColorBlindnessDeuteranopia,
		models.ColorBlindnessTritanopia,
	}

	for mode, min := range modes {
		for _, filter := range filters {
			p := PaletteFor(mode, filter)

			if r := ContrastRatio(p.Foreground, p.Background); r < min {
				t.Errorf("%s/%s: foreground ratio %.2f below %.1f", mode, filter, r, min)
			}
			if r := ContrastRatio(p.Accent, p.Background); r < min {
				t.Errorf("%s/%s: accent ratio %.2f below %.1f", mode, filter, r, min)
			}
			if r := ContrastRatio(p.Focus, p.Background); r < MinRatioNormal {
				t.Errorf("%s/%s: focus ratio %.2f below %.1f", mode, filter, r, MinRatioNormal)
			}
		}
	}
}

func TestPaletteFor_FilterChangesAccent(t *testing.T) {
	plain := PaletteFor(models.ContrastNormal, models.ColorBlindnessNone)
	prot := PaletteFor(models.ContrastNormal, models.ColorBlindnessProtanopia)

	if plain.Accent == prot.Accent {
		t.Errorf("Expected protanopia to swap the accent, both are %s", plain.Accent)
	}
	if plain.Background != prot.Background {
		t.Error("Expected background to be independent of the color filter")
	}
}

func TestPaletteFor_UnknownModeFallsBack(t *testing.T) {
	got := PaletteFor("sepia", models.ColorBlindnessNone)
	want := PaletteFor(models.ContrastNormal, models.ColorBlindnessNone)

	if got != want {
		t.Errorf("Expected normal palette, got %+v", got)
	}
}

func TestContrastRatio(t *testing.T) {
	if r := ContrastRatio("#000000", "#ffffff"); r < 20.9 || r > 21.1 {
		t.Errorf("Expected black on white to be 21, got %.2f", r)
	}
	if r := ContrastRatio("#777777", "#777777"); r != 1 {
		t.Errorf("Expected identical colors to be 1, got %.2f", r)
	}
	if r := ContrastRatio("nope", "#ffffff"); r != 0 {
		t.Errorf("Expected 0 for unparsable color, got %.2f", r)
	}
}
