package ppu

import "nesgo/internal/cartridge"

// busRead/busWrite implement the PPU's own 14-bit address bus: pattern
// tables via the cartridge, the 2KB nametable RAM with the cartridge's
// mirroring mode applied, and the 32-byte palette RAM.
func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		v, _ := p.cart.PPURead(addr)
		return v
	case addr < 0x3F00:
		return p.nametable[p.mirrorNametable(addr)]
	default:
		return p.paletteRead(addr)
	}
}

func (p *PPU) busWrite(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, value)
	case addr < 0x3F00:
		p.nametable[p.mirrorNametable(addr)] = value
	default:
		p.paletteWrite(addr, value)
	}
}

// ppuRead is the name the background/sprite pipeline uses at its fetch
// sites; it is the same 14-bit bus as busRead.
func (p *PPU) ppuRead(addr uint16) uint8 {
	return p.busRead(addr)
}

// mirrorNametable folds a $2000-$3EFF address down to an index into the
// console's 2KB of nametable RAM, applying the cartridge's mirroring mode
// per spec.md's corrected horizontal/vertical scheme: horizontal mirroring
// pairs $2000/$2400 and $2800/$2C00; vertical mirroring pairs $2000/$2800
// and $2400/$2C00.
func (p *PPU) mirrorNametable(addr uint16) uint16 {
	a := (addr - 0x2000) % 0x1000
	table := a / 0x400
	offset := a % 0x400

	var physical uint16
	if p.cart.Mirror() == cartridge.MirrorVertical {
		physical = table % 2
	} else {
		physical = table / 2
	}
	return physical*0x400 + offset
}

// paletteRead/paletteWrite implement the 32-byte palette RAM and its
// $3F10/$3F14/$3F18/$3F1C <-> $3F00/$3F04/$3F08/$3F0C mirror, kept
// consistent at write time so reads never need to resolve it.
func (p *PPU) paletteRead(addr uint16) uint8 {
	return p.paletteRAM[addr&0x1F]
}

func (p *PPU) paletteWrite(addr uint16, value uint8) {
	i := addr & 0x1F
	p.paletteRAM[i] = value
	if companion, ok := paletteMirrorCompanion(i); ok {
		p.paletteRAM[companion] = value
	}
}

func paletteMirrorCompanion(i uint16) (uint16, bool) {
	switch i {
	case 0x10, 0x14, 0x18, 0x1C:
		return i - 0x10, true
	case 0x00, 0x04, 0x08, 0x0C:
		return i + 0x10, true
	default:
		return 0, false
	}
}
