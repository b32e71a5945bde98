package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as 0xRRGGBB.
func (c RGB) Hex() int32 {
	return int32(c.R)<<16 | int32(c.G)<<8 | int32(c.B)
}

// Palette holds the colours shared by every frontend.
var Palette = struct {
	Background RGB
	Grid       RGB
	Body       RGB
	Head       RGB
	Food       RGB
}{
	Background: RGB{R: 0x00, G: 0x00, B: 0x00},
	Grid:       RGB{R: 0x22, G: 0x22, B: 0x22},
	Body:       RGB{R: 0xcc, G: 0xef, B: 0xef},
	Head:       RGB{R: 0xff, G: 0xff, B: 0xff},
	Food:       RGB{R: 0xef, G: 0x6f, B: 0x4c},
}
