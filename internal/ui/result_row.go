package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/imgqueue/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// ResultRow shows the outcome of one conversion task
type ResultRow struct {
	widget.BaseWidget

	task         *model.ConversionTask
	localization *Localization

	titleLabel  *widget.Label
	statusLabel *widget.Label
	detailLabel *widget.Label

	revealBtn *widget.Button // reveal in file manager
	openBtn   *widget.Button // open with default viewer

	onReveal func(filePath string)
	onOpen   func(filePath string)
}

// NewResultRow creates an empty result row
func NewResultRow(localization *Localization) *ResultRow {
	rr := &ResultRow{
		task:         &model.ConversionTask{},
		localization: localization,
	}
	rr.ExtendBaseWidget(rr)
	rr.createUI()
	return rr
}

// SetCallbacks sets the action callbacks
func (rr *ResultRow) SetCallbacks(onReveal, onOpen func(filePath string)) {
	rr.onReveal = onReveal
	rr.onOpen = onOpen
}

// UpdateTask updates the row with new task data
func (rr *ResultRow) UpdateTask(task *model.ConversionTask) {
	if task == nil {
		return
	}
	rr.task = task
	rr.updateFromTask()
}

func (rr *ResultRow) createUI() {
	rr.titleLabel = widget.NewLabel("")
	rr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	rr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	rr.statusLabel = widget.NewLabel("")
	rr.statusLabel.Alignment = fyne.TextAlignTrailing

	rr.detailLabel = widget.NewLabel("")
	rr.detailLabel.TextStyle = fyne.TextStyle{Monospace: true}

	rr.revealBtn = widget.NewButton(rr.localization.GetText(KeyReveal), func() {
		if rr.onReveal != nil && rr.task.OutputPath != "" {
			rr.onReveal(rr.task.OutputPath)
		}
	})
	rr.openBtn = widget.NewButton(rr.localization.GetText(KeyOpen), func() {
		if rr.onOpen != nil && rr.task.OutputPath != "" {
			rr.onOpen(rr.task.OutputPath)
		}
	})
}

func (rr *ResultRow) updateFromTask() {
	rr.titleLabel.SetText(rr.task.GetDisplayTitle())

	switch status := rr.task.Status; {
	case status == model.TaskStatusError:
		rr.statusLabel.Importance = widget.DangerImportance
		rr.statusLabel.SetText(IconError + " " + status.String())
	case status == model.TaskStatusSkipped:
		rr.statusLabel.Importance = widget.WarningImportance
		rr.statusLabel.SetText(IconSkipped + " " + status.String())
	case status == model.TaskStatusCompleted:
		rr.statusLabel.Importance = widget.SuccessImportance
		rr.statusLabel.SetText(IconDone + " " + status.String())
	case status.IsActive():
		rr.statusLabel.Importance = widget.HighImportance
		rr.statusLabel.SetText(IconWorking + " " + rr.task.Status.String())
	default:
		rr.statusLabel.Importance = widget.MediumImportance
		rr.statusLabel.SetText(IconPending + " " + rr.task.Status.String())
	}

	rr.detailLabel.SetText(rr.detailText())

	rr.revealBtn.SetText(rr.localization.GetText(KeyReveal))
	rr.openBtn.SetText(rr.localization.GetText(KeyOpen))
	if rr.task.Status == model.TaskStatusCompleted && rr.task.OutputPath != "" {
		rr.revealBtn.Enable()
		rr.openBtn.Enable()
	} else {
		rr.revealBtn.Disable()
		rr.openBtn.Disable()
	}
}

// detailText is "source · WxH · size · duration" or the failure reason
func (rr *ResultRow) detailText() string {
	var parts []string
	if rr.task.SourceName != "" {
		parts = append(parts, rr.task.SourceName)
	}

	switch rr.task.Status {
	case model.TaskStatusError, model.TaskStatusSkipped:
		if rr.task.LastError != "" {
			parts = append(parts, rr.task.LastError)
		}
	case model.TaskStatusCompleted:
		if rr.task.Width > 0 && rr.task.Height > 0 {
			parts = append(parts, fmt.Sprintf(DimensionsFormat, rr.task.Width, rr.task.Height))
		}
		if rr.task.OutputSize > 0 {
			parts = append(parts, formatFileSize(rr.task.OutputSize))
		}
		if d := rr.task.Duration(); d > 0 {
			parts = append(parts, d.Round(time.Millisecond).String())
		}
	}

	if len(parts) == 0 {
		return DashPlaceholder
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// CreateRenderer lays the row out as title/detail on the left and
// status/actions on the right
func (rr *ResultRow) CreateRenderer() fyne.WidgetRenderer {
	text := container.NewVBox(rr.titleLabel, rr.detailLabel)
	actions := container.NewHBox(rr.statusLabel, rr.revealBtn, rr.openBtn)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, actions, text))
}

// MinSize keeps rows readable in a narrow results pane
func (rr *ResultRow) MinSize() fyne.Size {
	size := rr.BaseWidget.MinSize()
	return fyne.NewSize(fyne.Max(size.Width, ResultRowMinW), fyne.Max(size.Height, ResultRowMinH))
}
