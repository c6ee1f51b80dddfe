package ui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func pickerFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", ".hidden.png", "c.webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "album"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "album", "d.jpeg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func entryNames(p *FilePicker) []string {
	var names []string
	for _, e := range p.entries {
		names = append(names, e.Name)
	}
	return names
}

func TestFilePicker_Listing(t *testing.T) {
	test.NewApp()
	dir := pickerFixture(t)
	p := NewFilePicker(dir, UploadExtensions, NewLocalization())

	got := entryNames(p)
	want := []string{"album", "a.JPG", "b.png", "c.webp"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFilePicker_MultiSelectAcrossFolders(t *testing.T) {
	test.NewApp()
	dir := pickerFixture(t)
	p := NewFilePicker(dir, UploadExtensions, NewLocalization())

	p.Open(2) // b.png
	p.Open(1) // a.JPG
	p.Open(0) // album
	if p.Location() != filepath.Join(dir, "album") {
		t.Fatalf("Expected to enter album, at %s", p.Location())
	}
	p.Open(0) // d.jpeg

	want := []string{
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "album", "d.jpeg"),
	}
	got := p.Selected()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Selection %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if p.countLabel.Text != "3 selected" {
		t.Errorf("Unexpected count label %q", p.countLabel.Text)
	}

	if err := p.Up(); err != nil || p.Location() != dir {
		t.Fatalf("Up failed: %v, at %s", err, p.Location())
	}
	p.ToggleSelection(2) // b.png off
	if p.IsSelected(filepath.Join(dir, "b.png")) || len(p.Selected()) != 2 {
		t.Errorf("Expected b.png deselected, got %v", p.Selected())
	}
}

func TestFilePicker_SelectAllSkipsFolders(t *testing.T) {
	test.NewApp()
	dir := pickerFixture(t)
	p := NewFilePicker(dir, UploadExtensions, NewLocalization())

	p.ToggleSelection(0) // folder rows are not selectable
	p.ToggleSelection(3) // c.webp
	p.SelectAll()

	got := p.Selected()
	if len(got) != 3 || got[0] != filepath.Join(dir, "c.webp") {
		t.Errorf("Expected c.webp first then the rest once, got %v", got)
	}
}

func TestFilePicker_MissingStartFolder(t *testing.T) {
	test.NewApp()
	p := NewFilePicker(filepath.Join(t.TempDir(), "missing"), UploadExtensions, NewLocalization())
	if p.Location() == "" {
		t.Skip("no home directory in this environment")
	}
	if p.Content() == nil {
		t.Error("Expected picker content")
	}
}
