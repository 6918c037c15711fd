package cartridge

// nrom implements mapper 0: direct PRG ROM mapping, with 16 KiB PRG banks
// mirrored across the full 32 KiB CPU window, and a flat 8 KiB CHR ROM. No
// PRG-RAM, no CHR-RAM — both are spec.md Non-goals for this core.
type nrom struct {
	prg []uint8
	chr []uint8
	// prgMask selects between 0x3FFF (one 16 KiB bank, mirrored) and
	// 0x7FFF (two banks, direct mapped).
	prgMask uint16
}

func newNROM(prg, chr []uint8) *nrom {
	mask := uint16(0x3FFF)
	if len(prg) > prgBankSize {
		mask = 0x7FFF
	}
	return &nrom{prg: prg, chr: chr, prgMask: mask}
}

func (m *nrom) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	return m.prg[addr&m.prgMask], true
}

func (m *nrom) CPUWrite(addr uint16, value uint8) bool {
	// NROM has no writable PRG state; the write is acknowledged as handled
	// (it targets cartridge space) but silently dropped per spec.md §4.1.
	return addr >= 0x8000
}

func (m *nrom) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chr[addr], true
}

func (m *nrom) PPUWrite(addr uint16, value uint8) bool {
	return addr <= 0x1FFF
}

func (m *nrom) MirrorType() MirrorMode {
	return MirrorHardwareDefault
}
