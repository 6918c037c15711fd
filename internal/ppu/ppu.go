// Package ppu implements the Ricoh 2C02 Picture Processing Unit: the
// per-dot background/sprite pipeline, the loopy v/t scroll registers, OAM,
// palette RAM, and the CPU-visible register file at $2000-$2007.
package ppu

import (
	"github.com/golang/glog"

	"nesgo/internal/cartridge"
)

// Cartridge is the PPU's view of the cartridge: pattern-table access and
// the mirroring scheme it should apply to nametable addresses.
type Cartridge interface {
	PPURead(addr uint16) (value uint8, handled bool)
	PPUWrite(addr uint16, value uint8) (handled bool)
	Mirror() cartridge.MirrorMode
}

// PPUCTRL/PPUMASK/PPUSTATUS bit masks.
const (
	ctrlNametableMask = 0x03
	ctrlIncrement32   = 0x04
	ctrlSpriteTable   = 0x08
	ctrlBGTable       = 0x10
	ctrlSpriteSize16  = 0x20
	ctrlNMIEnable     = 0x80

	maskGreyscale   = 0x01
	maskShowBGLeft  = 0x02
	maskShowSprLeft = 0x04
	maskShowBG      = 0x08
	maskShowSprites = 0x10

	statusSpriteOverflow = 0x20
	statusSprite0Hit     = 0x40
	statusVBlank         = 0x80
)

// spriteUnit is one of the eight sprite rendering slots loaded during
// dots 257-320 and shifted out during the next scanline's visible dots.
type spriteUnit struct {
	xCounter    uint8
	attributes  uint8
	patternLow  uint8
	patternHigh uint8
	isSprite0   bool
}

// PPU is the 2C02 core. Like the CPU, it is held by pointer by the console,
// and it never stores a pointer back to the console.
type PPU struct {
	// CPU-visible register file.
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// Loopy scroll registers.
	v       uint16
	t       uint16
	fineX   uint8
	w       bool
	readBuf uint8

	oam          [256]uint8
	secondaryOAM [32]uint8

	nametable  [2048]uint8
	paletteRAM [32]uint8

	cart Cartridge

	scanline int // -1..260
	cycle    int // 0..340
	oddFrame bool

	// Background pipeline.
	bgShiftLow, bgShiftHigh         uint16
	bgAttrShiftLow, bgAttrShiftHigh uint16
	nextTileID                      uint8
	nextAttr                        uint8
	nextPatternLow, nextPatternHigh uint8

	// Sprite pipeline.
	sprites           [8]spriteUnit
	spriteCount       int
	sprite0OnScanline bool

	frameBuffer   [256 * 240]uint32
	frameComplete bool
}

// New returns a PPU in its power-on state.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// AttachCartridge wires the cartridge the PPU delegates pattern-table
// access and mirroring queries to.
func (p *PPU) AttachCartridge(c Cartridge) {
	p.cart = c
}

// Reset clears the PPU's timing counters and sets the even-frame flag,
// per spec.md §3's reset lifecycle. Registers are cleared to their
// documented power-on state.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t = 0, 0
	p.fineX = 0
	p.w = false
	p.readBuf = 0
	p.scanline = -1
	p.cycle = 0
	p.oddFrame = false
	p.frameComplete = false
}

// Frame returns the current RGBA-packed (0xAARRGGBB) 256x240 frame buffer.
func (p *PPU) Frame() []uint32 {
	return p.frameBuffer[:]
}

// FrameComplete reports whether the pre-render scanline has been entered
// since the last ClearFrameComplete call.
func (p *PPU) FrameComplete() bool {
	return p.frameComplete
}

// ClearFrameComplete resets the frame_complete flag; the host calls this
// once it has consumed a frame.
func (p *PPU) ClearFrameComplete() {
	p.frameComplete = false
}

// NMILine reports the PPU's NMI output: vblank AND PPUCTRL's NMI-enable bit.
func (p *PPU) NMILine() bool {
	return p.status&statusVBlank != 0 && p.ctrl&ctrlNMIEnable != 0
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// Tick advances the PPU by exactly one dot.
func (p *PPU) Tick() {
	switch {
	case p.scanline == -1:
		p.preRenderScanline()
	case p.scanline >= 0 && p.scanline <= 239:
		p.visibleScanline()
	case p.scanline == 240:
		// post-render: idle
	case p.scanline >= 241 && p.scanline <= 260:
		if p.scanline == 241 && p.cycle == 1 {
			p.status |= statusVBlank
		}
	}

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	if p.scanline < -1 || p.scanline > 260 {
		glog.Fatalf("ppu: scanline %d out of range [-1,260]", p.scanline)
	}
	p.cycle++
	skipLastDot := p.scanline == -1 && p.oddFrame && p.renderingEnabled()
	maxCycle := 340
	if skipLastDot {
		maxCycle = 339
	}
	if p.cycle > maxCycle {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.oddFrame = !p.oddFrame
			p.frameComplete = true
		}
	}
}
