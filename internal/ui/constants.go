package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconError    = "❌"
	IconSkipped  = "⏭"
	IconPending  = "⏳"
	IconWorking  = "⚙"
	IconDone     = "✔"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	DimensionsFormat   = "%d×%d"
	PositionFormat     = "%d."
)

// Layout sizing
const (
	WindowWidth  float32 = 960
	WindowHeight float32 = 640

	QueuePanelOffset = 0.35
	PreviewOffset    = 0.7

	QueueRowHeight   float32 = 72
	ThumbnailSize    float32 = 64
	PositionWidth    float32 = 28
	ResultRowMinW    float32 = 320
	ResultRowMinH    float32 = 40
	PreviewMinWidth  float32 = 320
	PreviewMinHeight float32 = 240
	LogoSize         float32 = 32
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 360
	PickerDialogWidth    float32 = 640
	PickerDialogHeight   float32 = 480
)

// OverlayAlpha is the opacity of the drop overlay background
const OverlayAlpha = 0xB0
