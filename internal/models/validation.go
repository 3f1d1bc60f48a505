package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so issues line up with
// the persisted and exported layout.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldIssue describes one schema value that is out of bounds or not a
// member of its enum.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Validate checks every bound and enum of the schema. It returns nil or a
// *ValidationError listing each offending field.
func Validate(s Settings) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	issues := make([]FieldIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, FieldIssue{
			Field: strings.TrimPrefix(fe.Namespace(), "Settings."),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return &ValidationError{Issues: issues}
}

// ValidationError lists the fields that failed Validate.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+" ("+is.Rule+")")
	}
	return "invalid settings: " + strings.Join(parts, ", ")
}

// Normalize clamps numeric values into their bounds, snaps stepped values
// and replaces unknown enum values with the default for that field.
func (s *Settings) Normalize() {
	d := Defaults()

	v := &s.Visual
	v.FontSize = clamp(v.FontSize, MinFontSize, MaxFontSize)
	v.Contrast = oneOf(v.Contrast, d.Visual.Contrast, ContrastNormal, ContrastHigh, ContrastExtraHigh)
	v.ColorBlindness = oneOf(v.ColorBlindness, d.Visual.ColorBlindness,
		ColorBlindnessNone, ColorBlindnessProtanopia, ColorBlindnessDeuteranopia, ColorBlindnessTritanopia)

	a := &s.Audio
	a.Voice = oneOf(a.Voice, d.Audio.Voice, VoiceFemale1, VoiceMale1, VoiceFemale2, VoiceMale2)
	a.SpeechSpeed = clamp(a.SpeechSpeed, MinSpeechSpeed, MaxSpeechSpeed)
	a.Volume = clamp(a.Volume, MinVolume, MaxVolume)
	a.Language = oneOf(a.Language, d.Audio.Language, AudioEnglish, AudioHindi, AudioBilingual)

	m := &s.Motor
	m.PrimaryInput = oneOf(m.PrimaryInput, d.Motor.PrimaryInput,
		InputMouse, InputKeyboard, InputTouch, InputVoice, InputEyeTracking, InputSwitch)
	m.GestureSensitivity = clamp(m.GestureSensitivity, MinGestureSensitivity, MaxGestureSensitivity)
	m.DwellTime = snap(clamp(m.DwellTime, MinDwellTime, MaxDwellTime), DwellTimeStep)
	m.ClickAssistance = oneOf(m.ClickAssistance, d.Motor.ClickAssistance,
		ClickAssistNone, ClickAssistHover, ClickAssistDwell, ClickAssistSwitch)

	c := &s.Cognitive
	c.Complexity = oneOf(c.Complexity, d.Cognitive.Complexity, ComplexitySimple, ComplexityModerate, ComplexityAdvanced)
	c.ReadingSpeed = clamp(c.ReadingSpeed, MinReadingSpeed, MaxReadingSpeed)
	c.AttentionSpan = snap(clamp(c.AttentionSpan, MinAttentionSpan, MaxAttentionSpan), AttentionStep)
	c.ReminderFrequency = oneOf(c.ReminderFrequency, d.Cognitive.ReminderFrequency,
		RemindNever, RemindLow, RemindMedium, RemindHigh)

	e := &s.Emergency
	e.TriggerMethod = oneOf(e.TriggerMethod, d.Emergency.TriggerMethod,
		TriggerTripleTap, TriggerVoice, TriggerGesture, TriggerButtonCombo)
	if e.EmergencyContacts == nil {
		e.EmergencyContacts = []EmergencyContact{}
	}
}

// ClampFontSize bounds a font size to the supported range.
func ClampFontSize(px int) int {
	return clamp(px, MinFontSize, MaxFontSize)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// snap rounds v to the nearest multiple of step. Bounds used here are
// multiples of step, so a clamped value stays in range.
func snap(v, step int) int {
	return (v + step/2) / step * step
}

func oneOf[T ~string](v, fallback T, allowed ...T) T {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}
