package ppu

import "nesgo/internal/palette"

// preRenderScanline implements scanline -1 of spec.md §4.3: flag clears at
// dot 1, the identical background fetch pipeline as a visible scanline,
// the vert(v)=vert(t) copy at dots 280-304, and the odd-frame dot skip
// (handled by advanceDot).
func (p *PPU) preRenderScanline() {
	if p.cycle == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
	}
	p.runBackgroundPipeline()
	if p.cycle >= 280 && p.cycle <= 304 {
		p.copyVertV()
	}
}

// visibleScanline implements scanlines 0-239: the background pipeline,
// sprite evaluation/fetch, and pixel output.
func (p *PPU) visibleScanline() {
	if p.cycle == 1 {
		p.clearSecondaryOAM()
	}
	if p.cycle >= 65 && p.cycle <= 256 {
		if p.cycle == 65 {
			p.evaluateSprites()
		}
	}
	if p.cycle == 257 {
		p.fetchSprites()
	}

	p.runBackgroundPipeline()

	if p.cycle >= 1 && p.cycle <= 256 {
		p.composePixel(p.cycle)
		p.shiftSpriteRegisters()
	}
}

// runBackgroundPipeline performs the fetch windows (1-256, 321-336), the
// fine-Y increment at dot 256, and the horizontal-bits copy + reload at
// dot 257 — identical on the pre-render and visible scanlines.
func (p *PPU) runBackgroundPipeline() {
	c := p.cycle
	inWindow := (c >= 1 && c <= 256) || (c >= 321 && c <= 336)
	if inWindow {
		if p.renderingEnabled() {
			p.shiftBackgroundRegisters()
		}
		p.backgroundFetchStep(c)
	}
	if c == 256 {
		p.incFineY()
	}
	if c == 257 {
		p.copyHoriV()
		p.reloadBackgroundShiftRegisters()
	}
}

// backgroundFetchStep performs the per-sub-cycle fetch actions of
// spec.md §4.3's 8-dot window table.
func (p *PPU) backgroundFetchStep(c int) {
	phase := (c - 1) % 8
	if phase == 0 && c != 1 {
		p.reloadBackgroundShiftRegisters()
	}
	switch phase {
	case 1:
		p.nextTileID = p.ppuRead(0x2000 | (p.v & 0x0FFF))
	case 3:
		addr := uint16(0x23C0) | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		attrByte := p.ppuRead(addr)
		shift := ((p.v & 0x0002) >> 0) | ((p.v & 0x0040) >> 4)
		p.nextAttr = (attrByte >> shift) & 0x03
	case 5:
		fineY := (p.v >> 12) & 0x7
		bgTable := uint16((p.ctrl >> 4) & 1)
		addr := bgTable<<12 | uint16(p.nextTileID)<<4 | fineY
		p.nextPatternLow = p.ppuRead(addr)
	case 7:
		fineY := (p.v >> 12) & 0x7
		bgTable := uint16((p.ctrl >> 4) & 1)
		addr := bgTable<<12 | uint16(p.nextTileID)<<4 | 8 | fineY
		p.nextPatternHigh = p.ppuRead(addr)
		p.incCoarseX()
	}
}

func (p *PPU) reloadBackgroundShiftRegisters() {
	p.bgShiftLow = (p.bgShiftLow & 0xFF00) | uint16(p.nextPatternLow)
	p.bgShiftHigh = (p.bgShiftHigh & 0xFF00) | uint16(p.nextPatternHigh)
	var lo, hi uint16
	if p.nextAttr&0x01 != 0 {
		lo = 0x00FF
	}
	if p.nextAttr&0x02 != 0 {
		hi = 0x00FF
	}
	p.bgAttrShiftLow = (p.bgAttrShiftLow & 0xFF00) | lo
	p.bgAttrShiftHigh = (p.bgAttrShiftHigh & 0xFF00) | hi
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgShiftLow <<= 1
	p.bgShiftHigh <<= 1
	p.bgAttrShiftLow <<= 1
	p.bgAttrShiftHigh <<= 1
}

func (p *PPU) incCoarseX() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incFineY() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHoriV() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVertV() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// composePixel produces the pixel for (cycle-1, scanline): background and
// sprite pixel extraction, priority multiplex, sprite-0-hit detection, and
// the final palette lookup, per spec.md §4.3's pixel multiplexer.
func (p *PPU) composePixel(c int) {
	x := c - 1

	var bgPixel, bgPalette uint8
	if p.mask&maskShowBG != 0 && (x > 7 || p.mask&maskShowBGLeft != 0) {
		bit := uint(15 - p.fineX)
		lo := uint8((p.bgShiftLow >> bit) & 1)
		hi := uint8((p.bgShiftHigh >> bit) & 1)
		bgPixel = hi<<1 | lo
		a0 := uint8((p.bgAttrShiftLow >> bit) & 1)
		a1 := uint8((p.bgAttrShiftHigh >> bit) & 1)
		bgPalette = a1<<1 | a0
	}

	var sprPixel, sprPalette, sprPriority uint8
	sprPriority = 1
	var sprIsZero bool
	if p.mask&maskShowSprites != 0 && (x > 7 || p.mask&maskShowSprLeft != 0) {
		for i := 0; i < p.spriteCount; i++ {
			s := &p.sprites[i]
			if s.xCounter != 0 {
				continue
			}
			px := (s.patternHigh>>7)&1<<1 | (s.patternLow>>7)&1
			if px == 0 {
				continue
			}
			sprPixel = px
			sprPalette = (s.attributes & 0x03) + 4
			sprPriority = (s.attributes >> 5) & 1
			sprIsZero = s.isSprite0
			break
		}
	}

	var paletteIdx uint8
	switch {
	case bgPixel == 0 && sprPixel == 0:
		paletteIdx = 0
	case bgPixel == 0:
		paletteIdx = sprPalette<<2 | sprPixel
	case sprPixel == 0:
		paletteIdx = bgPalette<<2 | bgPixel
	default:
		bothLeftEnabled := p.mask&maskShowBGLeft != 0 && p.mask&maskShowSprLeft != 0
		if sprIsZero && c != 256 && (x >= 8 || bothLeftEnabled) {
			p.status |= statusSprite0Hit
		}
		if sprPriority == 0 {
			paletteIdx = sprPalette<<2 | sprPixel
		} else {
			paletteIdx = bgPalette<<2 | bgPixel
		}
	}

	color := p.paletteRead(0x3F00 | uint16(paletteIdx))
	if p.mask&maskGreyscale != 0 {
		color &= 0x30
	}
	p.frameBuffer[p.scanline*256+x] = palette.Lookup(color)
}
