// Package asset provides the embedded sprite atlas drawn by the canvas.
package asset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stackcats/internal/core"
)

//go:embed sprites
var spriteFS embed.FS

// ErrEmptyAtlas is returned when a manifest lists no sprites.
var ErrEmptyAtlas = errors.New("asset: atlas has no sprites")

const manifestName = "atlas.yaml"

type manifest struct {
	Sprites []struct {
		Name  string `yaml:"name"`
		File  string `yaml:"file"`
		Color string `yaml:"color"`
	} `yaml:"sprites"`
}

// Sprite is a glyph bitmap with a single foreground color.
type Sprite struct {
	Name  string
	Color core.Color
	rows  [][]rune
	width int
}

// ParseSprite builds a sprite from text art. Rows are padded to the widest
// row; trailing blank lines are dropped.
func ParseSprite(name string, art []byte, color core.Color) (*Sprite, error) {
	lines := strings.Split(strings.ReplaceAll(string(art), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("asset: sprite %q is empty", name)
	}

	s := &Sprite{Name: name, Color: color}
	for _, line := range lines {
		row := []rune(line)
		s.width = core.Max(s.width, len(row))
		s.rows = append(s.rows, row)
	}
	for i, row := range s.rows {
		for len(row) < s.width {
			row = append(row, ' ')
		}
		s.rows[i] = row
	}
	return s, nil
}

// Size returns the bitmap size in glyphs.
func (s *Sprite) Size() (w, h int) {
	return s.width, len(s.rows)
}

// At returns the glyph and color at (x, y).
func (s *Sprite) At(x, y int) (rune, core.Color) {
	if y < 0 || y >= len(s.rows) || x < 0 || x >= s.width {
		return ' ', s.Color
	}
	return s.rows[y][x], s.Color
}

// Atlas is an ordered set of sprites addressed by core.ImageID.
type Atlas struct {
	sprites []*Sprite
}

// Load reads the embedded atlas.
func Load() (*Atlas, error) {
	return LoadFS(spriteFS, "sprites")
}

// LoadFS reads dir/atlas.yaml and the sprite files it lists from fsys.
func LoadFS(fsys fs.FS, dir string) (*Atlas, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("asset: failed to read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("asset: failed to parse manifest: %w", err)
	}
	if len(m.Sprites) == 0 {
		return nil, ErrEmptyAtlas
	}

	a := &Atlas{sprites: make([]*Sprite, 0, len(m.Sprites))}
	for _, entry := range m.Sprites {
		art, err := fs.ReadFile(fsys, path.Join(dir, entry.File))
		if err != nil {
			return nil, fmt.Errorf("asset: sprite %q: %w", entry.Name, err)
		}
		s, err := ParseSprite(entry.Name, art, core.ParseColor(entry.Color))
		if err != nil {
			return nil, err
		}
		a.sprites = append(a.sprites, s)
	}
	return a, nil
}

// Len returns the number of sprites.
func (a *Atlas) Len() int {
	return len(a.sprites)
}

// Sprite returns the sprite for id.
func (a *Atlas) Sprite(id core.ImageID) (*Sprite, bool) {
	if id < 0 || int(id) >= len(a.sprites) {
		return nil, false
	}
	return a.sprites[id], true
}

// Bitmap implements core.BitmapSource.
func (a *Atlas) Bitmap(id core.ImageID) (core.Bitmap, bool) {
	s, ok := a.Sprite(id)
	if !ok {
		return nil, false
	}
	return s, true
}
