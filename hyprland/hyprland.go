// Package hyprland contains client bindings for Hyprland's color
// transform matrix protocol.
package hyprland

//go:generate go run deedles.dev/wayland/cmd/wlgen -client -pkg hyprland -prefix hyprland_ -out protocol.go -xml ../protocol/hyprland-ctm-control-v1.xml -import wl=deedles.dev/wayland/client:wl_
