package daemon

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// calendarIcon returns a 16x16 32-bit ICO: a green page with a dark header strip
func calendarIcon() []byte {
	var (
		header      = [4]byte{0x37, 0x41, 0x1f, 0xff} // BGRA
		page        = [4]byte{0x4a, 0xa3, 0x16, 0xff}
		transparent = [4]byte{}
	)

	pixels := make([]byte, 0, iconSize*iconSize*4)
	// rows are stored bottom-up
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			switch {
			case x == 0 || x == iconSize-1 || y == iconSize-1:
				pixels = append(pixels, transparent[:]...)
			case y < 5:
				pixels = append(pixels, header[:]...)
			default:
				pixels = append(pixels, page[:]...)
			}
		}
	}
	mask := make([]byte, iconSize*4) // 1bpp rows padded to 32 bits, all opaque

	imageSize := 40 + len(pixels) + len(mask)

	var buf bytes.Buffer
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{iconSize, iconSize, 0, 0})
	binary.Write(&buf, binary.LittleEndian, []uint16{1, 32})
	binary.Write(&buf, binary.LittleEndian, []uint32{uint32(imageSize), 6 + 16})
	// BITMAPINFOHEADER, height doubled for the AND mask
	binary.Write(&buf, binary.LittleEndian, []uint32{40, iconSize, iconSize * 2})
	binary.Write(&buf, binary.LittleEndian, []uint16{1, 32})
	binary.Write(&buf, binary.LittleEndian, []uint32{0, uint32(len(pixels) + len(mask)), 0, 0, 0, 0})
	buf.Write(pixels)
	buf.Write(mask)

	return buf.Bytes()
}
