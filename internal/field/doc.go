// Package field implements the animated particle field: a population of
// drifting shapes that react to the pointer, bounce off the surface edges and
// are joined by faint lines when they come close to each other.
//
// The package is host-agnostic:
//
//   - [Surface]: borrowed 2D drawing context (terminal canvas, window, SVG)
//   - [Host]: viewport, theme, event listeners and frame scheduling
//   - [Loop]: single-threaded listener/frame queue embedded by hosts
//   - [Controller]: owns the population and drives the per-frame loop
//
// # Example
//
//	host := sim.NewHeadless(1920, 1080, field.ThemeDark)
//	ctrl := field.NewController(host, field.WithRand(rand.New(rand.NewSource(1))))
//	ctrl.Initialize(export.NewSVG())
//	host.RunFrames(600)
//	ctrl.Destroy()
//
// # Thread Safety
//
// Nothing here is thread-safe. Hosts must dispatch events and run frames
// from a single goroutine.
package field
