package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"github.com/ytget/imgqueue/internal/model"
	"github.com/ytget/imgqueue/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir          = "output_directory"
	KeyOutputFormat       = "output_format"
	KeyNameTemplate       = "name_template"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "reveal_on_complete"
)

// Default values
const (
	DefaultOutputFormat       = model.FormatPNG
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the directory converted files are written to
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.DefaultOutputDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), platform.OutputFolderName)
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetOutputFormat returns the last selected output format
func (s *Settings) GetOutputFormat() model.Format {
	format, err := model.ParseFormat(s.app.Preferences().String(KeyOutputFormat))
	if err != nil {
		s.SetOutputFormat(DefaultOutputFormat)
		return DefaultOutputFormat
	}
	return format
}

// SetOutputFormat sets the output format
func (s *Settings) SetOutputFormat(format model.Format) {
	s.app.Preferences().SetString(KeyOutputFormat, string(format))
}

// GetNameTemplate returns the last used output name. Empty means the
// default base name.
func (s *Settings) GetNameTemplate() string {
	return s.app.Preferences().String(KeyNameTemplate)
}

// SetNameTemplate stores the output name
func (s *Settings) SetNameTemplate(template string) {
	s.app.Preferences().SetString(KeyNameTemplate, template)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetFormatOptions returns the selectable output formats
func (s *Settings) GetFormatOptions() []model.Format {
	return model.Formats()
}

// GetAutoRevealOnComplete returns whether to reveal the output folder after a batch
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the output folder after a batch
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
