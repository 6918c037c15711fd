package ppu

// clearSecondaryOAM resets secondary OAM to 0xFF, matching the real 2C02's
// behavior during dots 1-64 of each visible scanline.
func (p *PPU) clearSecondaryOAM() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
}

// evaluateSprites scans primary OAM for the up to 8 sprites that intersect
// the current scanline, copying them into secondary OAM. Once 8 are found,
// the scan continues in the hardware's buggy mode: the OAM index and the
// sub-byte index it reads from are incremented together instead of only
// the index, producing the documented diagonal-scan false
// positives/negatives in the sprite-overflow flag.
func (p *PPU) evaluateSprites() {
	height := 8
	if p.ctrl&ctrlSpriteSize16 != 0 {
		height = 16
	}

	count := 0
	p.sprite0OnScanline = false
	n := 0
	for n < 64 {
		y := p.oam[n*4]
		row := p.scanline - int(y)
		if row >= 0 && row < height {
			copy(p.secondaryOAM[count*4:count*4+4], p.oam[n*4:n*4+4])
			if n == 0 {
				p.sprite0OnScanline = true
			}
			count++
		}
		n++
		if count == 8 {
			break
		}
	}
	p.spriteCount = count

	if n < 64 && count == 8 {
		m := 0
		for n < 64 {
			y := p.oam[n*4+m]
			row := p.scanline - int(y)
			if row >= 0 && row < height {
				p.status |= statusSpriteOverflow
				break
			}
			m = (m + 1) % 4
			n++
		}
	}
}

// fetchSprites loads the pattern bytes, attributes, and x-counters for the
// sprites secondary OAM holds for the upcoming scanline (dots 257-320).
func (p *PPU) fetchSprites() {
	height := 8
	if p.ctrl&ctrlSpriteSize16 != 0 {
		height = 16
	}

	for i := 0; i < 8; i++ {
		if i >= p.spriteCount {
			p.sprites[i] = spriteUnit{}
			continue
		}
		y := p.secondaryOAM[i*4]
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		row := p.scanline - int(y)
		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var addr uint16
		if height == 16 {
			bank := uint16(tile & 1)
			half := uint16(tile &^ 1)
			if row >= 8 {
				half |= 1
				row -= 8
			}
			addr = bank<<12 | half<<4 | uint16(row&7)
		} else {
			spriteTable := uint16((p.ctrl >> 3) & 1)
			addr = spriteTable<<12 | uint16(tile)<<4 | uint16(row&7)
		}

		lo := p.ppuRead(addr)
		hi := p.ppuRead(addr + 8)
		if attr&0x40 != 0 {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.sprites[i] = spriteUnit{
			xCounter:    x,
			attributes:  attr,
			patternLow:  lo,
			patternHigh: hi,
			isSprite0:   i == 0 && p.sprite0OnScanline,
		}
	}
}

// shiftSpriteRegisters implements the per-dot sprite output rule of
// spec.md §4.3: a sprite whose x-counter has reached zero shifts its
// pattern registers each dot; otherwise the counter ticks down.
func (p *PPU) shiftSpriteRegisters() {
	for i := range p.sprites {
		s := &p.sprites[i]
		if s.xCounter > 0 {
			s.xCounter--
			continue
		}
		s.patternLow <<= 1
		s.patternHigh <<= 1
	}
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}
