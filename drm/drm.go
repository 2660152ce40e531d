// Package drm contains client bindings for the wl_drm protocol that
// Mesa uses to share GPU buffers with the compositor.
package drm

//go:generate go run deedles.dev/wayland/cmd/wlgen -client -pkg drm -out protocol.go -xml ../protocol/wayland-drm.xml -import wl=deedles.dev/wayland/client:wl_
