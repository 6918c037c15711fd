package cartridge

import "testing"

func buildINES(prgBanks, chrBanks int, flags6, flags7 byte, trainer bool) []byte {
	header := make([]byte, inesHeaderSize)
	copy(header[0:4], inesMagic[:])
	header[4] = byte(prgBanks)
	header[5] = byte(chrBanks)
	header[6] = flags6
	header[7] = flags7

	var body []byte
	if trainer {
		body = append(body, make([]byte, trainerSize)...)
	}
	body = append(body, make([]byte, prgBanks*prgBankSize)...)
	body = append(body, make([]byte, chrBanks*chrBankSize)...)
	return append(header, body...)
}

func TestLoadINESTooSmall(t *testing.T) {
	_, err := LoadINES([]byte{0x4E, 0x45})
	if err == nil || err.Error() != "iNES header size too small" {
		t.Fatalf("got %v", err)
	}
}

func TestLoadINESBadMagic(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false)
	data[0] = 'X'
	_, err := LoadINES(data)
	if err == nil || err.Error() != "incorrect magic" {
		t.Fatalf("got %v", err)
	}
}

func TestLoadINESTruncated(t *testing.T) {
	data := buildINES(2, 1, 0, 0, false)
	data = data[:len(data)-100]
	_, err := LoadINES(data)
	if err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestLoadINESUnsupportedMapper(t *testing.T) {
	data := buildINES(1, 1, 0x10, 0, false) // mapper 1
	_, err := LoadINES(data)
	if err == nil {
		t.Fatal("expected unsupported mapper error")
	}
}

func TestLoadINESNROM(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false)
	data[16+0x3FFC] = 0x34 // one 16 KiB bank: CPU $FFFC maps to PRG offset 0x3FFC
	data[16+0x3FFD] = 0x12

	cart, err := LoadINES(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := cart.CPURead(0xFFFC); !ok || v != 0x34 {
		t.Errorf("CPURead(0xFFFC) = %#x, %v", v, ok)
	}
	if v, ok := cart.CPURead(0xFFFD); !ok || v != 0x12 {
		t.Errorf("CPURead(0xFFFD) = %#x, %v", v, ok)
	}
	if cart.Mirror() != MirrorHorizontal {
		t.Errorf("expected horizontal mirroring by default")
	}
}

func TestNROM16KMirrors(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false)
	data[16] = 0xAB // offset 0 of PRG ROM
	cart, err := LoadINES(data)
	if err != nil {
		t.Fatal(err)
	}
	lo, _ := cart.CPURead(0x8000)
	hi, _ := cart.CPURead(0xC000)
	if lo != 0xAB || hi != 0xAB {
		t.Errorf("expected 16KB NROM bank mirrored at 0x8000 and 0xC000, got %#x %#x", lo, hi)
	}
}

func TestNROMWritesDropped(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false)
	cart, _ := LoadINES(data)
	cart.CPUWrite(0x8000, 0xFF)
	v, _ := cart.CPURead(0x8000)
	if v != 0x00 {
		t.Errorf("expected PRG write to be dropped, got %#x", v)
	}
}

func TestVerticalMirroringFlag(t *testing.T) {
	data := buildINES(1, 1, 0x01, 0, false)
	cart, _ := LoadINES(data)
	if cart.Mirror() != MirrorVertical {
		t.Errorf("expected vertical mirroring")
	}
}

func TestTrainerSkipped(t *testing.T) {
	data := buildINES(1, 1, 0x04, 0, true)
	data[16+trainerSize] = 0x55 // first PRG byte after trainer
	cart, err := LoadINES(data)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := cart.CPURead(0x8000)
	if v != 0x55 {
		t.Errorf("expected trainer to be skipped, got %#x", v)
	}
}
