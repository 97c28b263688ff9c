// Package docgenpdf provides the headless-Chromium rasterizer for go-docgen.
//
// ChromiumEngine keeps one shared browser process and opens a tab per
// render. Register it as the runner's rasterizer:
//
//	runner.Rasterizer = &docgenpdf.ChromiumEngine{Headless: true}
package docgenpdf
