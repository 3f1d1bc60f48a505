package models

import (
	"encoding/json"
	"fmt"
)

// Settings is the full accessibility preference schema. Every group is
// always present; a zero Settings is not meaningful, start from Defaults.
type Settings struct {
	Visual    VisualSettings    `json:"visual"`
	Audio     AudioSettings     `json:"audio"`
	Motor     MotorSettings     `json:"motor"`
	Cognitive CognitiveSettings `json:"cognitive"`
	Emergency EmergencySettings `json:"emergency"`
}

type VisualSettings struct {
	FontSize        int            `json:"fontSize" validate:"min=12,max=24"`
	Contrast        ContrastMode   `json:"contrast" validate:"oneof=normal high extra-high"`
	ColorBlindness  ColorBlindness `json:"colorBlindness" validate:"oneof=none protanopia deuteranopia tritanopia"`
	ScreenReader    bool           `json:"screenReader"`
	Animations      bool           `json:"animations"`
	FocusIndicators bool           `json:"focusIndicators"`
	LargeButtons    bool           `json:"largeButtons"`
}

type AudioSettings struct {
	Voice             Voice         `json:"voice" validate:"oneof=female-1 male-1 female-2 male-2"`
	SpeechSpeed       int           `json:"speechSpeed" validate:"min=50,max=200"`
	Volume            int           `json:"volume" validate:"min=0,max=100"`
	AudioDescriptions bool          `json:"audioDescriptions"`
	SoundEffects      bool          `json:"soundEffects"`
	NavigationSounds  bool          `json:"navigationSounds"`
	VoiceCommands     bool          `json:"voiceCommands"`
	Language          AudioLanguage `json:"language" validate:"oneof=en hi en-hi"`
}

type MotorSettings struct {
	PrimaryInput       InputMethod     `json:"primaryInput" validate:"oneof=mouse keyboard touch voice eye-tracking switch"`
	GestureSensitivity int             `json:"gestureSensitivity" validate:"min=1,max=10"`
	DwellTime          int             `json:"dwellTime" validate:"min=100,max=2000"`
	ClickAssistance    ClickAssistance `json:"clickAssistance" validate:"oneof=none hover dwell switch"`
	StickyKeys         bool            `json:"stickyKeys"`
	MouseKeys          bool            `json:"mouseKeys"`
	SlowKeys           bool            `json:"slowKeys"`
	BounceKeys         bool            `json:"bounceKeys"`
	OneHandedMode      bool            `json:"oneHandedMode"`
}

type CognitiveSettings struct {
	Complexity         Complexity        `json:"complexity" validate:"oneof=simple moderate advanced"`
	ReadingSpeed       int               `json:"readingSpeed" validate:"min=1,max=10"`
	AttentionSpan      int               `json:"attentionSpan" validate:"min=5,max=60"`
	ReminderFrequency  ReminderFrequency `json:"reminderFrequency" validate:"oneof=never low medium high"`
	SimplifiedLanguage bool              `json:"simplifiedLanguage"`
	VisualCues         bool              `json:"visualCues"`
	ProgressIndicators bool              `json:"progressIndicators"`
	TaskBreakdown      bool              `json:"taskBreakdown"`
	MemoryAids         bool              `json:"memoryAids"`
	ErrorPrevention    bool              `json:"errorPrevention"`
	PreferImages       bool              `json:"preferImages"`
	PreferAudio        bool              `json:"preferAudio"`
	PreferVideos       bool              `json:"preferVideos"`
	PreferText         bool              `json:"preferText"`
}

type EmergencySettings struct {
	TriggerMethod     TriggerMethod      `json:"triggerMethod" validate:"oneof=triple-tap voice-command gesture button-combo"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts" validate:"dive"`
	EmergencyMessage  string             `json:"emergencyMessage"`
	AutoLocation      bool               `json:"autoLocation"`
	Flashlight        bool               `json:"flashlight"`
	LoudAlarm         bool               `json:"loudAlarm"`
	ScreenFlash       bool               `json:"screenFlash"`
	Vibration         bool               `json:"vibration"`
	MedicalInfo       string             `json:"medicalInfo"`
}

type EmergencyContact struct {
	Name         string `json:"name" validate:"max=120"`
	Phone        string `json:"phone" validate:"max=40"`
	Relationship string `json:"relationship" validate:"max=60"`
}

// DefaultEmergencyMessage is sent when the user has not written their own.
const DefaultEmergencyMessage = "This is an emergency message. I need assistance."

// Defaults returns the factory settings.
func Defaults() Settings {
	return Settings{
		Visual: VisualSettings{
			FontSize:        DefaultFontSize,
			Contrast:        ContrastNormal,
			ColorBlindness:  ColorBlindnessNone,
			ScreenReader:    false,
			Animations:      true,
			FocusIndicators: true,
			LargeButtons:    false,
		},
		Audio: AudioSettings{
			Voice:             VoiceFemale1,
			SpeechSpeed:       100,
			Volume:            70,
			AudioDescriptions: false,
			SoundEffects:      true,
			NavigationSounds:  true,
			VoiceCommands:     false,
			Language:          AudioEnglish,
		},
		Motor: MotorSettings{
			PrimaryInput:       InputMouse,
			GestureSensitivity: 5,
			DwellTime:          1000,
			ClickAssistance:    ClickAssistNone,
		},
		Cognitive: CognitiveSettings{
			Complexity:         ComplexityModerate,
			ReadingSpeed:       5,
			AttentionSpan:      30,
			ReminderFrequency:  RemindMedium,
			VisualCues:         true,
			ProgressIndicators: true,
			ErrorPrevention:    true,
			PreferText:         true,
		},
		Emergency: EmergencySettings{
			TriggerMethod:     TriggerTripleTap,
			EmergencyContacts: []EmergencyContact{},
			EmergencyMessage:  DefaultEmergencyMessage,
			AutoLocation:      true,
			Flashlight:        true,
			LoudAlarm:         true,
			ScreenFlash:       false,
			Vibration:         true,
		},
	}
}

// Clone returns a copy that shares no slices with s.
func (s Settings) Clone() Settings {
	out := s
	if s.Emergency.EmergencyContacts != nil {
		out.Emergency.EmergencyContacts = make([]EmergencyContact, len(s.Emergency.EmergencyContacts))
		copy(out.Emergency.EmergencyContacts, s.Emergency.EmergencyContacts)
	}
	return out
}

// GroupJSON encodes a single group.
func (s *Settings) GroupJSON(g Group) ([]byte, error) {
	switch g {
	case GroupVisual:
		return json.Marshal(s.Visual)
	case GroupAudio:
		return json.Marshal(s.Audio)
	case GroupMotor:
		return json.Marshal(s.Motor)
	case GroupCognitive:
		return json.Marshal(s.Cognitive)
	case GroupEmergency:
		return json.Marshal(s.Emergency)
	}
	return nil, fmt.Errorf("unknown group %q", g)
}

// SetGroupJSON decodes data into group g and normalizes it. On error s is
// left unchanged.
func (s *Settings) SetGroupJSON(g Group, data []byte) error {
	next := s.Clone()
	var err error
	switch g {
	case GroupVisual:
		err = json.Unmarshal(data, &next.Visual)
	case GroupAudio:
		err = json.Unmarshal(data, &next.Audio)
	case GroupMotor:
		err = json.Unmarshal(data, &next.Motor)
	case GroupCognitive:
		err = json.Unmarshal(data, &next.Cognitive)
	case GroupEmergency:
		next.Emergency.EmergencyContacts = nil
		err = json.Unmarshal(data, &next.Emergency)
	default:
		err = fmt.Errorf("unknown group %q", g)
	}
	if err != nil {
		return err
	}
	next.Normalize()
	*s = next
	return nil
}
