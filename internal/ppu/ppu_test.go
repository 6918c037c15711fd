package ppu

import (
	"testing"

	"nesgo/internal/cartridge"
)

// stubCart is a minimal Cartridge for PPU tests: flat CHR RAM-like array
// and a fixed mirroring mode.
type stubCart struct {
	chr    [0x2000]uint8
	mirror cartridge.MirrorMode
}

func (s *stubCart) PPURead(addr uint16) (uint8, bool) {
	return s.chr[addr&0x1FFF], true
}

func (s *stubCart) PPUWrite(addr uint16, value uint8) bool {
	s.chr[addr&0x1FFF] = value
	return true
}

func (s *stubCart) Mirror() cartridge.MirrorMode {
	return s.mirror
}

func newTestPPU() (*PPU, *stubCart) {
	p := New()
	cart := &stubCart{mirror: cartridge.MirrorHorizontal}
	p.AttachCartridge(cart)
	return p, cart
}

func TestStatusReadClearsVBlankAndWriteToggle(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusVBlank | statusSprite0Hit
	p.w = true

	v := p.ReadRegister(2)
	if v&statusVBlank == 0 {
		t.Fatalf("expected the read to report vblank was set, got %#02x", v)
	}
	if p.status&statusVBlank != 0 {
		t.Errorf("vblank should be cleared after reading PPUSTATUS")
	}
	if p.w {
		t.Errorf("write toggle should be cleared after reading PPUSTATUS")
	}
}

func TestPPUAddrWriteSequenceAndDataReadBuffering(t *testing.T) {
	p, cart := newTestPPU()
	cart.chr[0] = 0x11 // unused here; nametable path below
	p.nametable[0] = 0xAB

	p.WriteRegister(6, 0x20) // high byte
	p.WriteRegister(6, 0x00) // low byte -> v = 0x2000
	if p.v != 0x2000 {
		t.Fatalf("v = %#04x, want 0x2000", p.v)
	}

	first := p.ReadRegister(7) // primed read returns stale buffer (0)
	if first != 0 {
		t.Errorf("first PPUDATA read = %#02x, want 0 (stale buffer)", first)
	}
	second := p.ReadRegister(7)
	if second != 0xAB {
		t.Errorf("second PPUDATA read = %#02x, want 0xAB", second)
	}
	if p.v != 0x2002 {
		t.Errorf("v = %#04x, want 0x2002 after two PPUDATA reads", p.v)
	}
}

func TestOAMAddrWrapsOnDataWrite(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(3, 0xFF) // OAMADDR = 0xFF
	p.WriteRegister(4, 0x77) // OAMDATA write, increments OAMADDR
	if p.oamAddr != 0x00 {
		t.Errorf("oamAddr = %#02x, want 0x00 (wrapped)", p.oamAddr)
	}
	if p.oam[0xFF] != 0x77 {
		t.Errorf("oam[0xFF] = %#02x, want 0x77", p.oam[0xFF])
	}
}

func TestPaletteMirrorInvariant(t *testing.T) {
	p, _ := newTestPPU()
	p.paletteWrite(0x3F00, 0x0F)
	if p.paletteRead(0x3F10) != 0x0F {
		t.Errorf("0x3F10 should mirror a write to 0x3F00")
	}
	p.paletteWrite(0x3F14, 0x20)
	if p.paletteRead(0x3F04) != 0x20 {
		t.Errorf("0x3F04 should mirror a write to 0x3F14")
	}
}

func TestPPUBusAddressMaskedTo14Bits(t *testing.T) {
	p, cart := newTestPPU()
	cart.chr[0x0010] = 0x42
	if got := p.busRead(0x4010); got != 0x42 {
		t.Errorf("busRead(0x4010) = %#02x, want 0x42 (masked to 0x0010)", got)
	}
}

func TestResetClearsTimingState(t *testing.T) {
	p, _ := newTestPPU()
	p.scanline = 100
	p.cycle = 200
	p.status = 0xFF
	p.frameComplete = true

	p.Reset()

	if p.scanline != -1 || p.cycle != 0 {
		t.Errorf("scanline/cycle = %d/%d, want -1/0 after reset", p.scanline, p.cycle)
	}
	if p.status != 0 {
		t.Errorf("status = %#02x, want 0 after reset", p.status)
	}
	if p.FrameComplete() {
		t.Errorf("frame_complete should be false after reset")
	}
}

func TestNMILineFollowsVBlankAndEnable(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusVBlank
	p.ctrl = 0
	if p.NMILine() {
		t.Errorf("NMI line should be low when PPUCTRL.nmi_enable is clear")
	}
	p.ctrl |= ctrlNMIEnable
	if !p.NMILine() {
		t.Errorf("NMI line should be high when vblank is set and nmi_enable is set")
	}
}

func TestOddFrameDotSkip(t *testing.T) {
	p, _ := newTestPPU()
	p.mask = maskShowBG
	p.oddFrame = true
	p.scanline = -1
	p.cycle = 339

	p.Tick()

	if p.scanline != 0 || p.cycle != 0 {
		t.Errorf("scanline/cycle = %d/%d, want 0/0 (dot 340 skipped on odd frame)", p.scanline, p.cycle)
	}
}
