package common

const (
	// TPS is the fixed simulation rate.
	TPS = 60

	// AspectX and AspectY give the default 4:3 arena ratio.
	AspectX = 4
	AspectY = 3

	// BaseWidth and BaseHeight size the window when the monitor size is unknown.
	BaseWidth  = 960
	BaseHeight = 720
)
