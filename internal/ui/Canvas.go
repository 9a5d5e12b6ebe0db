package ui

import (
	"math"
	"strings"

	"github.com/Mshel/urkusteps/internal/game"
	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	color string
}

// Canvas rasterises the game surface onto a grid of terminal cells.
type Canvas struct {
	cols          int
	rows          int
	surfaceWidth  float64
	surfaceHeight float64
	cells         [][]cell
}

func NewCanvas(cols, rows int, surfaceWidth, surfaceHeight float64) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	c := &Canvas{
		cols:          cols,
		rows:          rows,
		surfaceWidth:  surfaceWidth,
		surfaceHeight: surfaceHeight,
		cells:         make([][]cell, rows),
	}
	for row := range c.cells {
		c.cells[row] = make([]cell, cols)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for row := range c.cells {
		for col := range c.cells[row] {
			c.cells[row][col] = cell{r: ' ', color: voidColor}
		}
	}
}

// DrawImage stretches asset over dst, anything outside the surface is clipped.
func (c *Canvas) DrawImage(asset *game.Asset, dst game.Rect) {
	if asset == nil || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	cellW := c.surfaceWidth / float64(c.cols)
	cellH := c.surfaceHeight / float64(c.rows)

	firstCol := max(int(math.Floor(dst.X/cellW)), 0)
	lastCol := min(int(math.Ceil(dst.Right()/cellW)), c.cols)
	firstRow := max(int(math.Floor(dst.Y/cellH)), 0)
	lastRow := min(int(math.Ceil(dst.Bottom()/cellH)), c.rows)

	for row := firstRow; row < lastRow; row++ {
		v := ((float64(row)+0.5)*cellH - dst.Y) / dst.Height
		if v < 0 || v >= 1 {
			continue
		}
		for col := firstCol; col < lastCol; col++ {
			u := ((float64(col)+0.5)*cellW - dst.X) / dst.Width
			if u < 0 || u >= 1 {
				continue
			}
			r := asset.Sample(u, v)
			if r == ' ' {
				continue
			}
			c.cells[row][col] = cell{r: r, color: asset.Color}
		}
	}
}

// At is the rune drawn at a cell, used by tests.
func (c *Canvas) At(col, row int) rune {
	return c.cells[row][col].r
}

// Render joins runs of same coloured cells so each run is styled once.
func (c *Canvas) Render() string {
	var sb strings.Builder
	for row, cells := range c.cells {
		start := 0
		for col := 1; col <= len(cells); col++ {
			if col < len(cells) && cells[col].color == cells[start].color {
				continue
			}
			var run strings.Builder
			for _, cl := range cells[start:col] {
				run.WriteRune(cl.r)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(cells[start].color)).
				Background(lipgloss.Color(voidColor))
			sb.WriteString(style.Render(run.String()))
			start = col
		}
		if row < len(c.cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
