package wl

// OutputInfo describes an output as its wl_output events report it.
type OutputInfo struct {
	X, Y                          int32
	PhysicalWidth, PhysicalHeight int32
	Subpixel                      OutputSubpixel
	Make, Model                   string
	Transform                     OutputTransform

	// Width, Height, and Refresh are those of the current mode.
	Width, Height, Refresh int32

	Scale       int32
	Name        string
	Description string
}

// OutputInfoListener is an OutputListener that accumulates events
// into Info. Outputs of version 2 and later send done after each
// batch of changes, at which point OnDone, if it is not nil, is
// called with a copy of Info.
type OutputInfoListener struct {
	Info   OutputInfo
	OnDone func(OutputInfo)
}

func (lis *OutputInfoListener) Geometry(x, y, physicalWidth, physicalHeight int32, subpixel OutputSubpixel, make, model string, transform OutputTransform) {
	lis.Info.X, lis.Info.Y = x, y
	lis.Info.PhysicalWidth, lis.Info.PhysicalHeight = physicalWidth, physicalHeight
	lis.Info.Subpixel = subpixel
	lis.Info.Make, lis.Info.Model = make, model
	lis.Info.Transform = transform
}

func (lis *OutputInfoListener) Mode(flags OutputMode, width, height, refresh int32) {
	if !flags.Has(OutputModeCurrent) {
		return
	}
	lis.Info.Width, lis.Info.Height, lis.Info.Refresh = width, height, refresh
}

func (lis *OutputInfoListener) Done() {
	if lis.OnDone != nil {
		lis.OnDone(lis.Info)
	}
}

func (lis *OutputInfoListener) Scale(factor int32) {
	lis.Info.Scale = factor
}

func (lis *OutputInfoListener) Name(name string) {
	lis.Info.Name = name
}

func (lis *OutputInfoListener) Description(description string) {
	lis.Info.Description = description
}
