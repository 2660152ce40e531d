package wl

// Then sets f to be called with the callback's data when the callback
// is done. The callback is deleted afterwards.
func (c *Callback) Then(f func(data uint32)) {
	c.Listener = callbackListener(f)
}

type callbackListener func(uint32)

func (lis callbackListener) Done(data uint32) {
	lis(data)
}

// Sync calls f once the server has processed every request enqueued
// before it.
func (state *State) Sync(f func()) {
	state.Display().Sync().Then(func(uint32) { f() })
}
