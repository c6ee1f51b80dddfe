// Package ui contains the Fyne desktop front end. RootUI implements the
// queue controller's View: it renders the queue list with hoverable rows,
// the fading preview, the drop overlay and the conversion results, and
// forwards uploads, drops, hovers and clicks to the controller. All UI
// strings are localized via Localization.
package ui
