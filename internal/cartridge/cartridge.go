// Package cartridge implements iNES ROM loading and the pluggable
// cartridge-to-bus address mapping layer.
package cartridge

import (
	"errors"
	"fmt"
)

// MirrorMode is the nametable mirroring scheme a cartridge reports to the
// PPU bus.
type MirrorMode uint8

const (
	// MirrorHardwareDefault defers to the iNES header's flags6 bit 0.
	MirrorHardwareDefault MirrorMode = iota
	MirrorHorizontal
	MirrorVertical
)

const (
	inesHeaderSize = 16
	trainerSize    = 512
	prgBankSize    = 16384
	chrBankSize    = 8192
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// Mapper is the capability contract every cartridge mapping scheme
// implements: four bus predicates plus a mirroring query. Returning
// handled=false means the address is not claimed by this mapper and the
// caller should treat it as open bus.
type Mapper interface {
	CPURead(addr uint16) (value uint8, handled bool)
	CPUWrite(addr uint16, value uint8) (handled bool)
	PPURead(addr uint16) (value uint8, handled bool)
	PPUWrite(addr uint16, value uint8) (handled bool)
	MirrorType() MirrorMode
}

// Cartridge owns the PRG/CHR ROM banks parsed from an iNES file and
// delegates all bus access to its mapper.
type Cartridge struct {
	prg []uint8
	chr []uint8

	mapperID     uint8
	mapper       Mapper
	headerMirror MirrorMode
}

// LoadINES parses an iNES file already read into memory. Only mapper 0
// (NROM) is supported; any other mapper ID is a CartridgeFormat error.
func LoadINES(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, errors.New("iNES header size too small")
	}
	var magic [4]byte
	copy(magic[:], data[0:4])
	if magic != inesMagic {
		return nil, errors.New("incorrect magic")
	}

	prgBanks := data[4]
	chrBanks := data[5]
	flags6 := data[6]
	flags7 := data[7]

	hasTrainer := flags6&0x04 != 0
	expected := inesHeaderSize
	if hasTrainer {
		expected += trainerSize
	}
	expected += int(prgBanks) * prgBankSize
	expected += int(chrBanks) * chrBankSize
	if len(data) < expected {
		return nil, fmt.Errorf("expected size %d, got %d", expected, len(data))
	}

	mapperID := (flags6 >> 4) | (flags7 & 0xF0)

	cart := &Cartridge{mapperID: mapperID}
	if flags6&0x01 != 0 {
		cart.headerMirror = MirrorVertical
	} else {
		cart.headerMirror = MirrorHorizontal
	}

	offset := inesHeaderSize
	if hasTrainer {
		offset += trainerSize
	}

	prgSize := int(prgBanks) * prgBankSize
	cart.prg = make([]uint8, prgSize)
	copy(cart.prg, data[offset:offset+prgSize])
	offset += prgSize

	chrSize := int(chrBanks) * chrBankSize
	cart.chr = make([]uint8, chrSize)
	copy(cart.chr, data[offset:offset+chrSize])

	mapper, err := newMapper(mapperID, cart.prg, cart.chr)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper

	return cart, nil
}

func newMapper(id uint8, prg, chr []uint8) (Mapper, error) {
	switch id {
	case 0:
		return newNROM(prg, chr), nil
	default:
		return nil, fmt.Errorf("mapper ID %d is currently not supported", id)
	}
}

// CPURead delegates a CPU-bus read to the mapper.
func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	return c.mapper.CPURead(addr)
}

// CPUWrite delegates a CPU-bus write to the mapper.
func (c *Cartridge) CPUWrite(addr uint16, value uint8) bool {
	return c.mapper.CPUWrite(addr, value)
}

// PPURead delegates a PPU-bus read to the mapper.
func (c *Cartridge) PPURead(addr uint16) (uint8, bool) {
	return c.mapper.PPURead(addr)
}

// PPUWrite delegates a PPU-bus write to the mapper.
func (c *Cartridge) PPUWrite(addr uint16, value uint8) bool {
	return c.mapper.PPUWrite(addr, value)
}

// Mirror reports the effective nametable mirroring: the mapper's own
// opinion, or the iNES header's flags6 bit when the mapper defers.
func (c *Cartridge) Mirror() MirrorMode {
	if m := c.mapper.MirrorType(); m != MirrorHardwareDefault {
		return m
	}
	return c.headerMirror
}
