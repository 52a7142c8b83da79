package main

import (
	"image/color"

	"github.com/IoannouAndreas/CV-Os/model"
)

func HexToF32(u uint32, id int) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b, id}
}

type GameColor struct {
	r  float64
	g  float64
	b  float64
	id int
}

// RGBA returns the color with alpha a in 0..1.
func (c GameColor) RGBA(a float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.r * 255),
		G: uint8(c.g * 255),
		B: uint8(c.b * 255),
		A: uint8(a * 255),
	}
}

var (
	COLOR_BACKGROUND = HexToF32(0x020b04, 0)
	COLOR_GRID       = HexToF32(0x0d3b16, 0)
	COLOR_TEXT       = HexToF32(0x7dff9a, 0)
	COLOR_OVERLAY    = HexToF32(0x000000, 0)
)

// trail and head colors per owner
var COLORS = map[model.Cell][2]GameColor{
	model.Agent1: {HexToF32(0x00b34a, 1), HexToF32(0xb6ffcb, 1)},
	model.Agent2: {HexToF32(0xc2185b, 2), HexToF32(0xff9ecb, 2)},
}
