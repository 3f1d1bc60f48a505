package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"accessiai/internal/notify"
	"accessiai/internal/storage"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage is used until the user picks one.
const DefaultLanguage = "en"

// Interface languages, default first.
var supportedLanguages = []language.Tag{
	language.English,
	language.Hindi,
	language.Spanish,
	language.French,
	language.German,
	language.Chinese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// LanguageOption describes a selectable interface language.
type LanguageOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguageService stores the interface language and announces changes.
type LanguageService struct {
	store    storage.Store
	notifier *notify.Notifier
	logger   *slog.Logger
}

func NewLanguageService(store storage.Store, notifier *notify.Notifier, logger *slog.Logger) *LanguageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageService{store: store, notifier: notifier, logger: logger}
}

// Supported lists the selectable languages with their native names.
func (l *LanguageService) Supported() []LanguageOption {
	out := make([]LanguageOption, 0, len(supportedLanguages))
	for _, tag := range supportedLanguages {
		out = append(out, LanguageOption{
			Code: tag.String(),
			Name: display.Self.Name(tag),
		})
	}
	return out
}

// Get returns the stored language, or DefaultLanguage.
func (l *LanguageService) Get(ctx context.Context) string {
	v, err := l.store.Get(ctx, storage.KeyLanguage)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Warn("Failed to read language", "error", err)
		}
		return DefaultLanguage
	}
	code, err := Canonicalize(v)
	if err != nil {
		l.logger.Warn("Ignoring stored language", "value", v, "error", err)
		return DefaultLanguage
	}
	return code
}

// Set stores the language named by code and publishes a languageChange
// event carrying the canonical code.
func (l *LanguageService) Set(ctx context.Context, code string) (string, error) {
	canonical, err := Canonicalize(code)
	if err != nil {
		return "", err
	}
	if err := l.store.Set(ctx, storage.KeyLanguage, canonical); err != nil {
		return "", NewPreferencesError("set language", err)
	}

	l.notifier.Publish(notify.EventLanguageChange, notify.LanguageChange{Language: canonical})
	l.logger.Info("Language changed", "language", canonical)
	return canonical, nil
}

// Canonicalize maps a BCP 47 tag such as "fr-CA" onto the supported
// language it best matches ("fr").
func Canonicalize(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return supportedLanguages[index].String(), nil
}
