package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "imgqueue.png"
)

// LoadLogoResource loads the logo next to the executable; the header falls
// back to no logo when it is missing
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
