package ui

import (
	"fmt"
	"image"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/imgqueue/internal/config"
	"github.com/ytget/imgqueue/internal/convert"
	"github.com/ytget/imgqueue/internal/download"
	"github.com/ytget/imgqueue/internal/model"
	"github.com/ytget/imgqueue/internal/platform"
	"github.com/ytget/imgqueue/internal/preview"
	"github.com/ytget/imgqueue/internal/queue"
)

// UploadExtensions filters the upload dialog
var UploadExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// RootUI represents the main UI structure. Its queue.View methods may be
// called from any goroutine and hop to the main thread with fyne.Do.
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	controller   *queue.Controller
	deliverer    download.Deliverer
	pickerDir    string

	uploadBtn    *widget.Button
	convertBtn   *widget.Button
	revealBtn    *widget.Button
	formatLabel  *widget.Label
	formatSelect *widget.Select
	nameEntry    *widget.Entry

	// queue panel, hidden while the queue is empty
	queuePanel *fyne.Container
	queueList  *widget.List
	entries    []queue.Entry
	thumbnails map[string]image.Image
	hasItems   bool

	preview     *PreviewPane
	dropOverlay *fyne.Container
	dropLabel   *widget.Label

	// results of the latest ConvertAll
	resultsList *widget.List
	results     []*model.ConversionTask
	resultIndex map[string]int

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

var _ queue.View = (*RootUI)(nil)

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, converter convert.Converter, deliverer download.Deliverer, previewer preview.Previewer) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Printf("Failed to create output directory %s: %v", outputDir, err)
	}
	deliverer.SetOutputDirectory(outputDir)

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		deliverer:    deliverer,
		thumbnails:   make(map[string]image.Image),
		resultIndex:  make(map[string]int),
		pickerDir:    defaultPickerDir(),
	}
	ui.controller = queue.NewController(ui, previewer, converter)
	ui.controller.SetTaskListener(ui.onTaskUpdate)

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	window.SetOnDropped(ui.onDropped)
	window.Canvas().SetOnTypedKey(ui.onTypedKey)

	log.Printf("RootUI initialized, output directory=%s", outputDir)
	return ui
}

func defaultPickerDir() string {
	if dir, err := platform.GetHomeDownloadsDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return home
}

func (ui *RootUI) setupUI() {
	ui.createMenu()
	l := ui.localization

	ui.uploadBtn = widget.NewButtonWithIcon(l.GetText(KeyUpload), theme.UploadIcon(), ui.onUploadClick)
	ui.uploadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.revealBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyShowOutput), ui.onRevealOutput)
	ui.revealBtn.Importance = widget.LowImportance

	leading := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		leading = container.NewHBox(logoImage, settingsBtn)
	}
	header := container.NewBorder(nil, nil, leading, ui.revealBtn, ui.uploadBtn)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// conversion controls
	var formats []string
	for _, f := range ui.settings.GetFormatOptions() {
		formats = append(formats, string(f))
	}
	ui.formatLabel = widget.NewLabel(l.GetText(KeyFormat))
	ui.formatSelect = widget.NewSelect(formats, nil)
	ui.formatSelect.SetSelected(string(ui.settings.GetOutputFormat()))

	ui.nameEntry = widget.NewEntry()
	ui.nameEntry.SetPlaceHolder(l.GetText(KeyFileName))
	ui.nameEntry.SetText(ui.settings.GetNameTemplate())
	ui.nameEntry.OnSubmitted = func(string) { ui.onConvertClick() }

	ui.convertBtn = widget.NewButtonWithIcon(l.GetText(KeyConvert), theme.MediaPlayIcon(), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance

	controls := container.NewBorder(nil, nil,
		container.NewHBox(ui.formatLabel, ui.formatSelect),
		ui.convertBtn,
		ui.nameEntry,
	)

	ui.queueList = widget.NewList(
		func() int { return len(ui.entries) },
		func() fyne.CanvasObject { return ui.createQueueRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateQueueRow(id, obj) },
	)
	ui.queuePanel = container.NewStack(ui.queueList)
	ui.queuePanel.Hide()

	ui.preview = NewPreviewPane(l.GetText(KeyNoPreview))

	ui.resultsList = widget.NewList(
		func() int { return len(ui.results) },
		func() fyne.CanvasObject { return ui.createResultRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateResultRow(id, obj) },
	)

	right := container.NewVSplit(ui.preview.Container(), ui.resultsList)
	right.Offset = PreviewOffset
	center := container.NewHSplit(ui.queuePanel, right)
	center.Offset = QueuePanelOffset

	content := container.NewBorder(
		container.NewVBox(header, ui.notificationContainer),
		controls,
		nil,
		nil,
		center,
	)

	ui.dropLabel = widget.NewLabelWithStyle(l.GetText(KeyDropHere), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	overlayBackground := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	ui.dropOverlay = container.NewStack(overlayBackground, container.NewCenter(ui.dropLabel))
	ui.dropOverlay.Hide()

	ui.window.SetContent(container.NewStack(content, ui.dropOverlay))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	uploadItem := fyne.NewMenuItem(ui.localization.GetText(KeyUpload), ui.onUploadClick)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), uploadItem, settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
	ui.controller.Render()
}

func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.uploadBtn.SetText(ui.uploadLabel())
	ui.convertBtn.SetText(l.GetText(KeyConvert))
	ui.revealBtn.SetText(IconFolder + " " + l.GetText(KeyShowOutput))
	ui.formatLabel.SetText(l.GetText(KeyFormat))
	ui.nameEntry.SetPlaceHolder(l.GetText(KeyFileName))
	ui.dropLabel.SetText(l.GetText(KeyDropHere))
	ui.preview.SetPlaceholder(l.GetText(KeyNoPreview))
	ui.queueList.Refresh()
	ui.resultsList.Refresh()
}

func (ui *RootUI) uploadLabel() string {
	if ui.hasItems {
		return ui.localization.GetText(KeyUploadMore)
	}
	return ui.localization.GetText(KeyUpload)
}

// queue.View

// RenderQueue replaces the list contents
func (ui *RootUI) RenderQueue(entries []queue.Entry) {
	entries = append([]queue.Entry(nil), entries...)
	fyne.Do(func() {
		ui.entries = entries
		live := make(map[string]bool, len(entries))
		for _, e := range entries {
			live[e.ItemID] = true
		}
		for id := range ui.thumbnails {
			if !live[id] {
				delete(ui.thumbnails, id)
			}
		}

		if len(entries) == 0 {
			ui.queuePanel.Hide()
		} else {
			ui.queuePanel.Show()
		}
		ui.queueList.Refresh()
	})
}

// SetThumbnail fills the thumbnail of a rendered row
func (ui *RootUI) SetThumbnail(itemID string, img image.Image) {
	fyne.Do(func() {
		for _, e := range ui.entries {
			if e.ItemID == itemID {
				ui.thumbnails[itemID] = img
				ui.queueList.Refresh()
				return
			}
		}
	})
}

// ShowPreview swaps the preview image
func (ui *RootUI) ShowPreview(img image.Image, fade bool) {
	fyne.Do(func() {
		ui.preview.Show(img, fade)
	})
}

// ClearPreview empties the preview
func (ui *RootUI) ClearPreview() {
	fyne.Do(func() {
		ui.preview.Clear()
	})
}

// SetHasItems switches the upload button label
func (ui *RootUI) SetHasItems(hasItems bool) {
	fyne.Do(func() {
		ui.hasItems = hasItems
		ui.uploadBtn.SetText(ui.uploadLabel())
	})
}

// SetDragOverlay shows or hides the drop overlay
func (ui *RootUI) SetDragOverlay(visible bool) {
	fyne.Do(func() {
		if visible {
			ui.dropOverlay.Show()
		} else {
			ui.dropOverlay.Hide()
		}
	})
}

// Alert shows a modal information dialog
func (ui *RootUI) Alert(alert queue.Alert) {
	message := ui.localization.AlertText(alert)
	log.Printf("Alert: %s", message)
	fyne.Do(func() {
		dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), message, ui.window)
	})
}

// queue rows

func (ui *RootUI) createQueueRow() fyne.CanvasObject {
	row := NewQueueRow()
	row.SetCallbacks(ui.onRemoveItem, ui.onHoverIn, ui.onHoverOut)
	return row
}

func (ui *RootUI) updateQueueRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(ui.entries) {
		return
	}
	row, ok := obj.(*QueueRow)
	if !ok {
		return
	}
	entry := ui.entries[id]
	row.SetEntry(entry, ui.thumbnails[entry.ItemID])
}

func (ui *RootUI) onRemoveItem(itemID string) {
	if err := ui.controller.Remove(itemID); err != nil {
		log.Printf("Remove failed: %v", err)
	}
}

func (ui *RootUI) onHoverIn(entry queue.Entry) {
	if err := ui.controller.HoverEnter(entry.ItemID); err != nil {
		log.Printf("Hover on %s ignored: %v", entry.ItemID, err)
		return
	}
	ui.preview.SetCaption(entry.FullName)
}

func (ui *RootUI) onHoverOut(entry queue.Entry) {
	ui.controller.HoverLeave(entry.ItemID)
	ui.preview.SetCaption("")
}

// intake

func (ui *RootUI) onUploadClick() {
	var picker *FilePicker
	picker = ShowFilePicker(ui.window, ui.pickerDir, UploadExtensions, ui.localization, func(paths []string) {
		ui.pickerDir = picker.Location()
		ui.intake(paths, false)
	})
}

func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		paths = append(paths, u.Path())
	}
	ui.intake(paths, true)
}

// intake enqueues one picked or dropped batch. Unreadable members stay in
// the batch untyped, so a batch of only folders is rejected with an alert.
func (ui *RootUI) intake(paths []string, dropped bool) {
	if len(paths) == 0 {
		return
	}
	files := platform.LoadBatch(paths)

	var err error
	if dropped {
		_, err = ui.controller.Drop(files)
	} else {
		_, err = ui.controller.Enqueue(files)
	}
	if err != nil {
		log.Printf("Intake of %d path(s) rejected: %v", len(paths), err)
	}
}

func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		ui.controller.Escape()
	}
}

// conversion

func (ui *RootUI) onConvertClick() {
	format, err := model.ParseFormat(ui.formatSelect.Selected)
	if err != nil {
		format = ui.settings.GetOutputFormat()
	}
	name := ui.nameEntry.Text

	outputDir := ui.deliverer.OutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	tasks, err := ui.controller.ConvertAll(format, name)
	if err != nil {
		log.Printf("Convert rejected: %v", err)
		return
	}

	ui.settings.SetOutputFormat(format)
	ui.settings.SetNameTemplate(name)
	ui.beginBatch(tasks)
}

func (ui *RootUI) beginBatch(tasks []*model.ConversionTask) {
	ui.results = tasks
	ui.resultIndex = make(map[string]int, len(tasks))
	for i, task := range tasks {
		ui.resultIndex[task.ID] = i
	}
	ui.resultsList.Refresh()
	ui.showNotification(fmt.Sprintf(ui.localization.GetText(KeyConverting), len(tasks)), true)
}

// onTaskUpdate receives conversion updates from worker goroutines
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	fyne.Do(func() {
		i, ok := ui.resultIndex[task.ID]
		if !ok {
			return
		}
		ui.results[i] = task
		ui.resultsList.RefreshItem(i)

		if !task.Status.IsFinished() {
			return
		}
		done, converted := 0, 0
		for _, t := range ui.results {
			if t.Status.IsFinished() {
				done++
			}
			if t.Status == model.TaskStatusCompleted {
				converted++
			}
		}
		if done < len(ui.results) {
			return
		}

		ui.showNotification(fmt.Sprintf(ui.localization.GetText(KeyBatchDone), converted, len(ui.results)), false)
		if converted > 0 && ui.settings.GetAutoRevealOnComplete() {
			ui.onRevealOutput()
		}
	})
}

func (ui *RootUI) createResultRow() fyne.CanvasObject {
	row := NewResultRow(ui.localization)
	row.SetCallbacks(ui.onRevealFile, ui.onOpenFile)
	return row
}

func (ui *RootUI) updateResultRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(ui.results) {
		return
	}
	if row, ok := obj.(*ResultRow); ok {
		row.UpdateTask(ui.results[id])
	}
}

func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Failed to reveal %s: %v", filePath, err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Failed to open %s: %v", filePath, err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

func (ui *RootUI) onRevealOutput() {
	dir := ui.deliverer.OutputDirectory()
	if err := platform.OpenDirectory(dir); err != nil {
		log.Printf("Failed to open output directory %s: %v", dir, err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// settings

func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		dir := ui.settings.GetOutputDirectory()
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			log.Printf("Failed to create output directory %s: %v", dir, err)
		}
		ui.deliverer.SetOutputDirectory(dir)
		ui.formatSelect.SetSelected(string(ui.settings.GetOutputFormat()))

		if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
			ui.onLanguageChange(lang)
		}
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// notifications

// showNotification displays a message under the header. When spinning is
// true a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}
