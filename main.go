package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/imgqueue/internal/convert"
	"github.com/ytget/imgqueue/internal/download"
	"github.com/ytget/imgqueue/internal/encoder"
	"github.com/ytget/imgqueue/internal/preview"
	"github.com/ytget/imgqueue/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.imgqueue"
	AppName = "Image Queue Converter"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))

	registry := encoder.NewRegistry()
	log.Printf("Image %s", registry)

	// the output directory is applied from settings by the UI
	deliverer := download.NewService("")
	convertSvc := convert.NewService(registry, deliverer)
	previewSvc := preview.NewService(preview.DefaultCacheSize)

	ui.NewRootUI(myWindow, myApp, convertSvc, deliverer, previewSvc)

	myWindow.ShowAndRun()
}
