// Package raster expands a planned code's finished module matrices into the pixel Bitmap the
// codec hands back to its caller, and lays out docked multi-symbol codes on one shared canvas,
// per original_source/src/jabcodeWriter/jabwriter.c's bitmap-emission path and image.c.
package raster

import (
	"github.com/jabcode/jabcode/jabcode/colorspace"
	"github.com/jabcode/jabcode/jabcode/symbol"
)

// QuietZoneModules is the number of blank white modules left around a rendered code, matching
// the reference writer's default quiet zone.
const QuietZoneModules = 2

// Layout resolves the module-grid position of every symbol in a code relative to a shared
// top-left origin, by walking the docking plan outward from the master.
type Layout struct {
	OriginX, OriginY []int // per symbol index, module offset from the canvas's top-left
	WidthModules      int
	HeightModules     int
}

// PlaceSymbols computes the relative module-grid layout of syms given their resolved docking
// plan, including the master's own symbol at index 0.
func PlaceSymbols(syms []*symbol.Symbol, plan *symbol.DockPlan) Layout {
	n := len(syms)
	originX := make([]int, n)
	originY := make([]int, n)
	visited := make([]bool, n)
	visited[0] = true

	queue := []int{0}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		hsx, hsy := syms[h].Version.SideSize()
		for dir := 0; dir < 4; dir++ {
			idx := plan.Slaves[h][dir]
			if idx == 0 || visited[idx] {
				continue
			}
			ssx, ssy := syms[idx].Version.SideSize()
			switch dir {
			case 0: // north
				originX[idx] = originX[h]
				originY[idx] = originY[h] - ssy
			case 1: // south
				originX[idx] = originX[h]
				originY[idx] = originY[h] + hsy
			case 2: // west
				originX[idx] = originX[h] - ssx
				originY[idx] = originY[h]
			case 3: // east
				originX[idx] = originX[h] + hsx
				originY[idx] = originY[h]
			}
			visited[idx] = true
			queue = append(queue, idx)
		}
	}

	minX, minY, maxX, maxY := originX[0], originY[0], 0, 0
	for i, sym := range syms {
		sx, sy := sym.Version.SideSize()
		if originX[i] < minX {
			minX = originX[i]
		}
		if originY[i] < minY {
			minY = originY[i]
		}
		if originX[i]+sx > maxX {
			maxX = originX[i] + sx
		}
		if originY[i]+sy > maxY {
			maxY = originY[i] + sy
		}
	}
	for i := range originX {
		originX[i] -= minX
		originY[i] -= minY
	}
	return Layout{OriginX: originX, OriginY: originY, WidthModules: maxX - minX, HeightModules: maxY - minY}
}

// Render expands syms' module matrices into one pixel Bitmap at moduleSize pixels per module,
// arranged per layout and surrounded by a quiet zone of blank white modules.
func Render(syms []*symbol.Symbol, palettes []*colorspace.Palette, moduleSize int, layout Layout) *colorspace.Bitmap {
	widthModules := layout.WidthModules + 2*QuietZoneModules
	heightModules := layout.HeightModules + 2*QuietZoneModules
	bmp := colorspace.NewBitmap(widthModules*moduleSize, heightModules*moduleSize)

	white := colorspace.RGB{R: 255, G: 255, B: 255}
	fillRect(bmp, 0, 0, bmp.Width, bmp.Height, white)

	for i, sym := range syms {
		ox := (layout.OriginX[i] + QuietZoneModules) * moduleSize
		oy := (layout.OriginY[i] + QuietZoneModules) * moduleSize
		palette := palettes[i]
		for y, row := range sym.ModuleMatrix {
			for x, colorIdx := range row {
				c := palette.Colors[colorIdx%len(palette.Colors)]
				fillRect(bmp, ox+x*moduleSize, oy+y*moduleSize, moduleSize, moduleSize, c)
			}
		}
	}
	return bmp
}

func fillRect(bmp *colorspace.Bitmap, x0, y0, w, h int, c colorspace.RGB) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			bmp.Set(x, y, c.R, c.G, c.B, 255)
		}
	}
}
