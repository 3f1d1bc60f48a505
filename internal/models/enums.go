package models

// Group names a top-level section of Settings.
type Group string

const (
	GroupVisual    Group = "visual"
	GroupAudio     Group = "audio"
	GroupMotor     Group = "motor"
	GroupCognitive Group = "cognitive"
	GroupEmergency Group = "emergency"
)

// Groups lists every settings group in display order.
func Groups() []Group {
	return []Group{GroupVisual, GroupAudio, GroupMotor, GroupCognitive, GroupEmergency}
}

// Valid reports whether g names a known group.
func (g Group) Valid() bool {
	switch g {
	case GroupVisual, GroupAudio, GroupMotor, GroupCognitive, GroupEmergency:
		return true
	}
	return false
}

type ContrastMode string

const (
	ContrastNormal    ContrastMode = "normal"
	ContrastHigh      ContrastMode = "high"
	ContrastExtraHigh ContrastMode = "extra-high"
)

type ColorBlindness string

const (
	ColorBlindnessNone         ColorBlindness = "none"
	ColorBlindnessProtanopia   ColorBlindness = "protanopia"
	ColorBlindnessDeuteranopia ColorBlindness = "deuteranopia"
	ColorBlindnessTritanopia   ColorBlindness = "tritanopia"
)

type Voice string

const (
	VoiceFemale1 Voice = "female-1"
	VoiceMale1   Voice = "male-1"
	VoiceFemale2 Voice = "female-2"
	VoiceMale2   Voice = "male-2"
)

// AudioLanguage is the narration language, distinct from the UI language.
type AudioLanguage string

const (
	AudioEnglish   AudioLanguage = "en"
	AudioHindi     AudioLanguage = "hi"
	AudioBilingual AudioLanguage = "en-hi"
)

type InputMethod string

const (
	InputMouse       InputMethod = "mouse"
	InputKeyboard    InputMethod = "keyboard"
	InputTouch       InputMethod = "touch"
	InputVoice       InputMethod = "voice"
	InputEyeTracking InputMethod = "eye-tracking"
	InputSwitch      InputMethod = "switch"
)

type ClickAssistance string

const (
	ClickAssistNone   ClickAssistance = "none"
	ClickAssistHover  ClickAssistance = "hover"
	ClickAssistDwell  ClickAssistance = "dwell"
	ClickAssistSwitch ClickAssistance = "switch"
)

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityAdvanced Complexity = "advanced"
)

type ReminderFrequency string

const (
	RemindNever  ReminderFrequency = "never"
	RemindLow    ReminderFrequency = "low"
	RemindMedium ReminderFrequency = "medium"
	RemindHigh   ReminderFrequency = "high"
)

type TriggerMethod string

const (
	TriggerTripleTap   TriggerMethod = "triple-tap"
	TriggerVoice       TriggerMethod = "voice-command"
	TriggerGesture     TriggerMethod = "gesture"
	TriggerButtonCombo TriggerMethod = "button-combo"
)

// Numeric bounds of the schema.
const (
	MinFontSize, MaxFontSize, DefaultFontSize = 12, 24, 16
	FontSizeStep                              = 2

	MinSpeechSpeed, MaxSpeechSpeed = 50, 200
	MinVolume, MaxVolume           = 0, 100

	MinGestureSensitivity, MaxGestureSensitivity = 1, 10
	MinDwellTime, MaxDwellTime, DwellTimeStep    = 100, 2000, 100

	MinReadingSpeed, MaxReadingSpeed                  = 1, 10
	MinAttentionSpan, MaxAttentionSpan, AttentionStep = 5, 60, 5
)
