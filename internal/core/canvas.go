package core

import (
	"math"
	"unicode/utf8"
)

// ImageID references one bitmap in a BitmapSource.
type ImageID int

// Bitmap is a rectangular grid of glyphs that DrawImage scales into a box.
// A space glyph is transparent.
type Bitmap interface {
	Size() (w, h int)
	At(x, y int) (rune, Color)
}

// BitmapSource resolves image IDs to bitmaps.
type BitmapSource interface {
	Bitmap(id ImageID) (Bitmap, bool)
}

type translation struct {
	dx, dy float64
}

// Canvas is a pixel-addressed drawing surface backed by a Screen.
// Each terminal cell covers cellW x cellH pixels; a cell is painted when its
// center lies inside the drawn shape.
type Canvas struct {
	screen *Screen
	cellW  float64
	cellH  float64
	images BitmapSource

	cur   translation
	saved []translation
}

// NewCanvas creates a canvas over screen. Non-positive cell sizes fall back
// to one pixel per cell.
func NewCanvas(screen *Screen, cellW, cellH float64, images BitmapSource) *Canvas {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Canvas{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		images: images,
	}
}

// Screen returns the backing cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Size returns the viewport size in pixels.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.screen.Width()) * c.cellW, float64(c.screen.Height()) * c.cellH
}

// Clear blanks every cell. The transform stack is untouched.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// Save pushes the current transform.
func (c *Canvas) Save() {
	c.saved = append(c.saved, c.cur)
}

// Restore pops the last saved transform. Restore without Save is a no-op.
func (c *Canvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.cur = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

// Translate shifts all subsequent drawing by (dx, dy) pixels.
func (c *Canvas) Translate(dx, dy float64) {
	c.cur.dx += dx
	c.cur.dy += dy
}

// FillRect paints the background of every cell covered by the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	r := c.project(x, y, w, h)
	c.eachCell(r, func(col, row int, _, _ float64) {
		c.screen.SetCell(col, row, Cell{Rune: ' ', Bg: color})
	})
}

// DrawImage scales the bitmap into the rectangle using nearest-neighbour
// sampling. Unknown IDs draw nothing.
func (c *Canvas) DrawImage(id ImageID, x, y, w, h float64) {
	if c.images == nil || w <= 0 || h <= 0 {
		return
	}
	bmp, ok := c.images.Bitmap(id)
	if !ok {
		return
	}
	bw, bh := bmp.Size()
	if bw <= 0 || bh <= 0 {
		return
	}

	r := c.project(x, y, w, h)
	c.eachCell(r, func(col, row int, u, v float64) {
		bx := Clamp(int(u*float64(bw)), 0, bw-1)
		by := Clamp(int(v*float64(bh)), 0, bh-1)
		glyph, fg := bmp.At(bx, by)
		if glyph == ' ' {
			return
		}
		cell := c.screen.GetCell(col, row)
		cell.Rune = glyph
		cell.Fg = fg
		c.screen.SetCell(col, row, cell)
	})
}

// FillTextCentered writes text centered horizontally on x, on the row that
// contains y.
func (c *Canvas) FillTextCentered(text string, x, y float64, color Color) {
	px := x + c.cur.dx
	py := y + c.cur.dy
	col := int(math.Floor(px / c.cellW))
	row := int(math.Floor(py / c.cellH))
	c.screen.DrawText(col-utf8.RuneCountInString(text)/2, row, text, color)
}

// project applies the current transform.
func (c *Canvas) project(x, y, w, h float64) RectF {
	return NewRectF(x+c.cur.dx, y+c.cur.dy, w, h)
}

// eachCell calls fn for every on-screen cell whose center lies in r, with
// the center's normalized position inside r.
func (c *Canvas) eachCell(r RectF, fn func(col, row int, u, v float64)) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	row0 := Max(int(math.Floor(r.Y/c.cellH)), 0)
	row1 := Min(int(math.Ceil(r.Bottom()/c.cellH)), c.screen.Height())
	col0 := Max(int(math.Floor(r.X/c.cellW)), 0)
	col1 := Min(int(math.Ceil(r.Right()/c.cellW)), c.screen.Width())

	for row := row0; row < row1; row++ {
		cy := (float64(row) + 0.5) * c.cellH
		for col := col0; col < col1; col++ {
			cx := (float64(col) + 0.5) * c.cellW
			if !r.ContainsPoint(cx, cy) {
				continue
			}
			fn(col, row, (cx-r.X)/r.W, (cy-r.Y)/r.H)
		}
	}
}
