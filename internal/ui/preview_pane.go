package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/imgqueue/internal/queue"
)

// PreviewPane shows the slideshow image. A faded swap runs two legs of
// queue.FadeDuration: fade out, swap the image, fade in. Every call bumps
// token so legs of a superseded swap stop touching the image.
// Must be used on the main thread.
type PreviewPane struct {
	image       *canvas.Image
	placeholder *widget.Label
	caption     *widget.Label
	content     *fyne.Container

	anim  *fyne.Animation
	token uint64
}

// NewPreviewPane creates an empty preview with a placeholder text
func NewPreviewPane(placeholder string) *PreviewPane {
	p := &PreviewPane{}

	p.image = canvas.NewImageFromImage(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.ScaleMode = canvas.ImageScaleSmooth
	p.image.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	p.image.Hide()

	p.placeholder = widget.NewLabel(placeholder)
	p.placeholder.Alignment = fyne.TextAlignCenter
	p.placeholder.Wrapping = fyne.TextWrapWord

	p.caption = widget.NewLabel("")
	p.caption.Alignment = fyne.TextAlignCenter
	p.caption.Truncation = fyne.TextTruncateEllipsis

	p.content = container.NewBorder(nil, p.caption, nil, nil,
		container.NewStack(container.NewCenter(p.placeholder), p.image))
	return p
}

// Container returns the pane's canvas object
func (p *PreviewPane) Container() fyne.CanvasObject {
	return p.content
}

// Show displays img, cross-fading from the current image when fade is set
func (p *PreviewPane) Show(img image.Image, fade bool) {
	p.stop()
	p.token++
	p.placeholder.Hide()
	p.image.Show()

	if !fade || p.image.Image == nil {
		p.swap(img, 0)
		return
	}

	token := p.token
	out := fyne.NewAnimation(queue.FadeDuration, func(v float32) {
		if p.token != token {
			return
		}
		p.image.Translucency = float64(v)
		p.image.Refresh()
		if v < 1 {
			return
		}
		p.swap(img, 1)
		in := fyne.NewAnimation(queue.FadeDuration, func(v float32) {
			if p.token != token {
				return
			}
			p.image.Translucency = float64(1 - v)
			p.image.Refresh()
		})
		in.Curve = fyne.AnimationLinear
		p.anim = in
		in.Start()
	})
	out.Curve = fyne.AnimationLinear
	p.anim = out
	out.Start()
}

// Clear empties the preview and shows the placeholder
func (p *PreviewPane) Clear() {
	p.stop()
	p.token++
	p.image.Image = nil
	p.image.Translucency = 0
	p.image.Hide()
	p.caption.SetText("")
	p.placeholder.Show()
}

// SetCaption shows text under the image
func (p *PreviewPane) SetCaption(text string) {
	p.caption.SetText(text)
}

// SetPlaceholder updates the empty-state text
func (p *PreviewPane) SetPlaceholder(text string) {
	p.placeholder.SetText(text)
}

// Image returns the image currently displayed
func (p *PreviewPane) Image() image.Image {
	return p.image.Image
}

func (p *PreviewPane) swap(img image.Image, translucency float64) {
	p.image.Image = img
	p.image.Translucency = translucency
	p.image.Refresh()
}

func (p *PreviewPane) stop() {
	if p.anim != nil {
		p.anim.Stop()
		p.anim = nil
	}
}
