package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/ytget/imgqueue/internal/model"
	"github.com/ytget/imgqueue/internal/platform"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	dir := settings.GetOutputDirectory()
	if filepath.Base(dir) != platform.OutputFolderName {
		t.Errorf("Expected default to end with %q, got %s", platform.OutputFolderName, dir)
	}
	if app.Preferences().String(KeyOutputDir) != dir {
		t.Error("Default output directory should be persisted on first read")
	}

	customDir := "/custom/images"
	settings.SetOutputDirectory(customDir)
	if got := settings.GetOutputDirectory(); got != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, got)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		stored string
		want   model.Format
	}{
		{"", DefaultOutputFormat},
		{"bmp", DefaultOutputFormat},
		{"jpeg", model.FormatJPEG},
		{"jpg", model.FormatJPEG},
		{"webp", model.FormatWEBP},
	}

	for _, tt := range tests {
		app := test.NewApp()
		settings := NewSettings(app)
		app.Preferences().SetString(KeyOutputFormat, tt.stored)

		if got := settings.GetOutputFormat(); got != tt.want {
			t.Errorf("Stored %q: expected %s, got %s", tt.stored, tt.want, got)
		}
	}
}

func TestNameTemplate(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetNameTemplate(); got != "" {
		t.Errorf("Expected empty default template, got %q", got)
	}

	settings.SetNameTemplate("Holiday")
	if got := settings.GetNameTemplate(); got != "Holiday" {
		t.Errorf("Expected template Holiday, got %q", got)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("pt")
	if lang := settings.GetLanguage(); lang != "pt" {
		t.Errorf("Expected language 'pt', got %s", lang)
	}
}

func TestAutoRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoRevealOnComplete() != DefaultAutoRevealComplete {
		t.Error("Expected default auto-reveal value")
	}
	settings.SetAutoRevealOnComplete(true)
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto-reveal enabled")
	}
}

func TestGetFormatOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	options := settings.GetFormatOptions()
	expected := []model.Format{model.FormatPNG, model.FormatJPEG, model.FormatWEBP}
	if len(options) != len(expected) {
		t.Fatalf("Expected %d format options, got %d", len(expected), len(options))
	}
	for i, want := range expected {
		if options[i] != want {
			t.Errorf("Format option %d: expected %s, got %s", i, want, options[i])
		}
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	options := settings.GetLanguageOptions()
	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}
	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
