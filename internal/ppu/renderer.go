package ppu

// shades maps a 2-bit palette colour to its grey level.
var shades = [4]uint8{0xFF, 0xC0, 0x60, 0x00}

// maxSpritesPerLine is the hardware limit on sprites drawn on
// one scanline. Further sprites in OAM order are dropped.
const maxSpritesPerLine = 10

// renderScanline composites the background, window and sprite
// pixels of the current scanline into the framebuffer row.
// Called once per visible line, on the transition to H-Blank.
func (p *PPU) renderScanline() {
	if p.lcdc&BGEnable != 0 {
		p.renderTiles()
	} else {
		// background disabled: the row is white and carries no
		// sprite masking priority
		for x := 0; x < ScreenWidth; x++ {
			p.bgLine[x] = 0
			p.setPixel(x, shades[0])
		}
	}
	if p.lcdc&OBJEnable != 0 {
		p.renderSprites()
	}
}

// renderTiles draws the background and, where it covers the
// line, the window.
func (p *PPU) renderTiles() {
	windowX := p.wx - 7
	usingWindow := p.lcdc&WindowEnable != 0 && p.wy <= p.ly

	// tile data at 0x8000 indexes tiles unsigned, tile data at
	// 0x8800 indexes them signed around 0x9000
	unsigned := p.lcdc&TileData != 0

	for pixel := uint8(0); pixel < ScreenWidth; pixel++ {
		inWindow := usingWindow && pixel >= windowX

		var xPos, yPos uint8
		var tileMap uint16
		if inWindow {
			xPos = pixel - windowX
			yPos = p.ly - p.wy
			tileMap = p.tileMapBase(WindowTileMap)
		} else {
			xPos = pixel + p.scx
			yPos = p.ly + p.scy
			tileMap = p.tileMapBase(BGTileMap)
		}

		tileAddr := tileMap + uint16(yPos/8)*32 + uint16(xPos/8)
		tileNum := p.vram[tileAddr-0x8000]

		var tileLocation uint16
		if unsigned {
			tileLocation = 0x8000 + uint16(tileNum)*16
		} else {
			tileLocation = uint16(0x9000 + int32(int8(tileNum))*16)
		}

		line := uint16(yPos%8) * 2
		data1 := p.vram[tileLocation+line-0x8000]
		data2 := p.vram[tileLocation+line+1-0x8000]

		colourBit := 7 - xPos%8
		colourNum := (data2>>colourBit)&0x01<<1 | (data1>>colourBit)&0x01

		p.bgLine[pixel] = colourNum
		p.setPixel(int(pixel), shades[p.bgp>>(colourNum*2)&0x03])
	}
}

// renderSprites draws the sprites overlapping the current
// scanline. OAM order decides both which sprites survive the
// 10 sprite limit and which pixel wins an overlap, so the
// selected sprites are drawn back to front.
func (p *PPU) renderSprites() {
	ysize := uint8(8)
	if p.lcdc&OBJSize != 0 {
		ysize = 16
	}

	// OAM scan: the first 10 sprites covering this line
	var visible []uint8
	for sprite := uint8(0); sprite < 40 && len(visible) < maxSpritesPerLine; sprite++ {
		yPos := p.oam[sprite*4] - 16
		if p.ly-yPos < ysize {
			visible = append(visible, sprite)
		}
	}

	for i := len(visible) - 1; i >= 0; i-- {
		index := visible[i] * 4
		yPos := p.oam[index] - 16
		xPos := p.oam[index+1] - 8
		tile := p.oam[index+2]
		attributes := p.oam[index+3]

		behindBG := attributes&0x80 != 0
		yFlip := attributes&0x40 != 0
		xFlip := attributes&0x20 != 0

		line := p.ly - yPos
		if yFlip {
			line = ysize - 1 - line
		}
		if ysize == 16 {
			tile &= 0xFE // 8x16 sprites ignore the low bit
		}

		dataAddr := uint16(tile)*16 + uint16(line)*2
		data1 := p.vram[dataAddr]
		data2 := p.vram[dataAddr+1]

		for tilePixel := uint8(0); tilePixel < 8; tilePixel++ {
			colourBit := 7 - tilePixel
			if xFlip {
				colourBit = tilePixel
			}
			colourNum := (data2>>colourBit)&0x01<<1 | (data1>>colourBit)&0x01
			if colourNum == 0 {
				continue // colour 0 is transparent for sprites
			}

			pixel := xPos + tilePixel
			if pixel >= ScreenWidth {
				continue
			}
			if behindBG && p.bgLine[pixel] != 0 {
				continue
			}

			palette := p.obp0
			if attributes&0x10 != 0 {
				palette = p.obp1
			}
			p.setPixel(int(pixel), shades[palette>>(colourNum*2)&0x03])
		}
	}
}

func (p *PPU) tileMapBase(selectBit uint8) uint16 {
	if p.lcdc&selectBit != 0 {
		return 0x9C00
	}
	return 0x9800
}

func (p *PPU) setPixel(x int, shade uint8) {
	p.frame[p.ly][x][0] = shade
	p.frame[p.ly][x][1] = shade
	p.frame[p.ly][x][2] = shade
}
