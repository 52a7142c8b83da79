package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a frame image stretched to any size while keeping its corners.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [4][2]float64
}

// NewFrame builds a 9x9 bordered tile, 3 pixel corners, tinted with c.
func NewFrame(c GameColor, fill color.Color) (*Nine, error) {
	src := image.NewRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			switch {
			case x == 1 || y == 1 || x == 7 || y == 7:
				src.Set(x, y, color.White)
			case x > 1 && x < 7 && y > 1 && y < 7:
				src.Set(x, y, fill)
			}
		}
	}
	img, err := ebiten.NewImageFromImage(src, ebiten.FilterNearest)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: img,
		alpha:  1,
		R:      c.r, G: c.g, B: c.b, Scale: 1,
		positions: [4][2]int{{0, 0}, {3, 3}, {6, 6}, {9, 9}},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

// Draw renders the nine slices, column by column within each band.
func (n *Nine) Draw(screen *ebiten.Image) {
	scalesX := [3]float64{n.Scale, n.scaleCenterWidth, n.Scale}
	scalesY := [3]float64{n.Scale, n.scaleCenterHeight, n.Scale}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scalesX[col], scalesY[row])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			part := n.images.SubImage(image.Rect(
				n.positions[col][0], n.positions[row][1],
				n.positions[col+1][0], n.positions[row+1][1])).(*ebiten.Image)
			screen.DrawImage(part, op)
		}
	}
}
