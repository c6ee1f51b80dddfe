package ui

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/imgqueue/internal/queue"
)

// QueueRow is one hoverable entry of the queue list: position, thumbnail,
// truncated name and a remove button
type QueueRow struct {
	widget.BaseWidget

	entry   queue.Entry
	hovered bool

	background    *canvas.Rectangle
	thumbnail     *canvas.Image
	positionLabel *widget.Label
	nameLabel     *widget.Label
	removeBtn     *widget.Button

	onRemove   func(itemID string)
	onHoverIn  func(entry queue.Entry)
	onHoverOut func(entry queue.Entry)
}

var _ desktop.Hoverable = (*QueueRow)(nil)

// NewQueueRow creates an empty row; the list fills it with SetEntry
func NewQueueRow() *QueueRow {
	row := &QueueRow{}
	row.ExtendBaseWidget(row)

	row.background = canvas.NewRectangle(color.Transparent)

	row.thumbnail = canvas.NewImageFromImage(nil)
	row.thumbnail.FillMode = canvas.ImageFillContain
	row.thumbnail.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))

	row.positionLabel = widget.NewLabel("")
	row.positionLabel.TextStyle = fyne.TextStyle{Monospace: true}

	row.nameLabel = widget.NewLabel("")
	row.nameLabel.Truncation = fyne.TextTruncateEllipsis

	row.removeBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if row.onRemove != nil && row.entry.ItemID != "" {
			row.onRemove(row.entry.ItemID)
		}
	})
	row.removeBtn.Importance = widget.LowImportance

	return row
}

// SetCallbacks sets the remove and hover callbacks
func (r *QueueRow) SetCallbacks(onRemove func(string), onHoverIn, onHoverOut func(queue.Entry)) {
	r.onRemove = onRemove
	r.onHoverIn = onHoverIn
	r.onHoverOut = onHoverOut
}

// SetEntry binds the row to entry; thumb may be nil while it is decoding
func (r *QueueRow) SetEntry(entry queue.Entry, thumb image.Image) {
	if r.entry.ItemID != entry.ItemID {
		r.setHovered(false)
	}
	r.entry = entry
	r.positionLabel.SetText(fmt.Sprintf(PositionFormat, entry.Position))
	r.nameLabel.SetText(entry.Label)
	r.thumbnail.Image = thumb
	r.thumbnail.Refresh()
}

// Entry returns the entry currently shown
func (r *QueueRow) Entry() queue.Entry {
	return r.entry
}

// MouseIn pauses the slideshow on this row's image
func (r *QueueRow) MouseIn(*desktop.MouseEvent) {
	r.setHovered(true)
	if r.onHoverIn != nil && r.entry.ItemID != "" {
		r.onHoverIn(r.entry)
	}
}

// MouseMoved is required by desktop.Hoverable
func (r *QueueRow) MouseMoved(*desktop.MouseEvent) {}

// MouseOut lets the slideshow resume
func (r *QueueRow) MouseOut() {
	r.setHovered(false)
	if r.onHoverOut != nil && r.entry.ItemID != "" {
		r.onHoverOut(r.entry)
	}
}

func (r *QueueRow) setHovered(hovered bool) {
	r.hovered = hovered
	if hovered {
		r.background.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.background.FillColor = color.Transparent
	}
	r.background.Refresh()
}

// CreateRenderer lays the row out as position, thumbnail, name, remove
func (r *QueueRow) CreateRenderer() fyne.WidgetRenderer {
	left := container.NewHBox(
		container.NewGridWrap(fyne.NewSize(PositionWidth, QueueRowHeight), r.positionLabel),
		container.NewCenter(r.thumbnail),
	)
	body := container.NewBorder(nil, nil, left, container.NewCenter(r.removeBtn), r.nameLabel)
	return widget.NewSimpleRenderer(container.NewStack(r.background, body))
}
