package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// pickerEntry is one row of the picker listing
type pickerEntry struct {
	Name  string
	Path  string
	IsDir bool
}

// FilePicker is a multi-select image picker. Selection survives folder
// changes so one pick can gather files from several folders; the picked
// paths are returned in the order they were selected.
type FilePicker struct {
	location   string
	extensions map[string]bool
	entries    []pickerEntry
	selected   []string
	localizer  *Localization

	list          *widget.List
	locationLabel *widget.Label
	countLabel    *widget.Label
}

// NewFilePicker creates a picker listing startDir, showing folders and files
// with one of the given extensions
func NewFilePicker(startDir string, extensions []string, localization *Localization) *FilePicker {
	p := &FilePicker{
		extensions: make(map[string]bool, len(extensions)),
		localizer:  localization,
	}
	for _, ext := range extensions {
		p.extensions[strings.ToLower(ext)] = true
	}

	p.createUI()
	if err := p.SetLocation(startDir); err != nil {
		log.Printf("Picker start folder %s unavailable: %v", startDir, err)
		if home, herr := os.UserHomeDir(); herr == nil {
			p.SetLocation(home)
		}
	}
	return p
}

// ShowFilePicker opens the picker in a dialog; onPicked receives the
// selected paths when the user confirms a non-empty selection
func ShowFilePicker(window fyne.Window, startDir string, extensions []string, localization *Localization, onPicked func([]string)) *FilePicker {
	p := NewFilePicker(startDir, extensions, localization)
	d := dialog.NewCustomConfirm(
		localization.GetText(KeyPickImages),
		localization.GetText(KeyAddSelected),
		localization.GetText(KeyCancel),
		p.Content(),
		func(ok bool) {
			if ok && len(p.Selected()) > 0 {
				onPicked(p.Selected())
			}
		},
		window,
	)
	d.Resize(fyne.NewSize(PickerDialogWidth, PickerDialogHeight))
	d.Show()
	return p
}

// Location returns the listed folder
func (p *FilePicker) Location() string {
	return p.location
}

// SetLocation lists dir: folders first, then matching files, each group
// sorted by name. Hidden entries are skipped.
func (p *FilePicker) SetLocation(dir string) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	entries := make([]pickerEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := de.IsDir()
		if !isDir && !p.extensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		entries = append(entries, pickerEntry{Name: name, Path: filepath.Join(dir, name), IsDir: isDir})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	p.location = dir
	p.entries = entries
	p.refresh()
	return nil
}

// Up moves to the parent folder
func (p *FilePicker) Up() error {
	parent := filepath.Dir(p.location)
	if parent == p.location {
		return nil
	}
	return p.SetLocation(parent)
}

// Open enters a folder row or toggles a file row
func (p *FilePicker) Open(index int) {
	if index < 0 || index >= len(p.entries) {
		return
	}
	entry := p.entries[index]
	if entry.IsDir {
		if err := p.SetLocation(entry.Path); err != nil {
			log.Printf("Cannot open folder: %v", err)
		}
		return
	}
	p.ToggleSelection(index)
}

// ToggleSelection selects or deselects a file row; folder rows are ignored
func (p *FilePicker) ToggleSelection(index int) {
	if index < 0 || index >= len(p.entries) || p.entries[index].IsDir {
		return
	}
	path := p.entries[index].Path
	for i, sel := range p.selected {
		if sel == path {
			p.selected = append(p.selected[:i], p.selected[i+1:]...)
			p.refresh()
			return
		}
	}
	p.selected = append(p.selected, path)
	p.refresh()
}

// SelectAll adds every file of the current folder, in listing order
func (p *FilePicker) SelectAll() {
	for _, entry := range p.entries {
		if !entry.IsDir && !p.IsSelected(entry.Path) {
			p.selected = append(p.selected, entry.Path)
		}
	}
	p.refresh()
}

// IsSelected reports whether path is part of the selection
func (p *FilePicker) IsSelected(path string) bool {
	for _, sel := range p.selected {
		if sel == path {
			return true
		}
	}
	return false
}

// Selected returns the selected paths in selection order
func (p *FilePicker) Selected() []string {
	return append([]string(nil), p.selected...)
}

// Content returns the picker widget tree
func (p *FilePicker) Content() fyne.CanvasObject {
	l := p.localizer
	upBtn := widget.NewButtonWithIcon(l.GetText(KeyParentFolder), theme.MoveUpIcon(), func() {
		if err := p.Up(); err != nil {
			log.Printf("Cannot open parent folder: %v", err)
		}
	})
	selectAllBtn := widget.NewButton(l.GetText(KeySelectAll), p.SelectAll)

	top := container.NewBorder(nil, nil, upBtn, selectAllBtn, p.locationLabel)
	return container.NewBorder(top, p.countLabel, nil, nil, p.list)
}

func (p *FilePicker) createUI() {
	p.locationLabel = widget.NewLabel("")
	p.locationLabel.Truncation = fyne.TextTruncateEllipsis
	p.countLabel = widget.NewLabel("")

	p.list = widget.NewList(
		func() int { return len(p.entries) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.CheckButtonIcon()), widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(p.entries) {
				return
			}
			row := obj.(*fyne.Container)
			icon := row.Objects[0].(*widget.Icon)
			label := row.Objects[1].(*widget.Label)

			entry := p.entries[id]
			label.SetText(entry.Name)
			switch {
			case entry.IsDir:
				icon.SetResource(theme.FolderIcon())
			case p.IsSelected(entry.Path):
				icon.SetResource(theme.CheckButtonCheckedIcon())
			default:
				icon.SetResource(theme.CheckButtonIcon())
			}
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		p.list.Unselect(id)
		p.Open(id)
	}
}

func (p *FilePicker) refresh() {
	p.locationLabel.SetText(p.location)
	p.countLabel.SetText(fmt.Sprintf(p.localizer.GetText(KeySelectedCount), len(p.selected)))
	p.list.Refresh()
}
