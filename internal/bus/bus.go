// Package bus implements the NES system bus: the master clock divider that
// interleaves CPU and PPU ticks, CPU address decoding, the OAM DMA engine,
// and the controller ports.
package bus

import (
	"github.com/golang/glog"

	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/ppu"
)

// Console wires the CPU, PPU, cartridge, and controllers together and
// drives them from a single master-clock tick, per spec.md §4.4.
type Console struct {
	CPU *cpu.CPU
	PPU *ppu.PPU

	cart *cartridge.Cartridge
	ram  [2048]uint8

	controllers [2]*input.Controller

	masterClock uint64

	dmaActive  bool
	dmaPage    uint8
	dmaOffset  uint16
	dmaBuffer  uint8
	dmaHasByte bool
	dmaWait    int
}

// cpuBus adapts Console to the cpu.Bus interface without exposing Console
// itself to the CPU.
type cpuBus struct {
	c *Console
}

func (b cpuBus) Read(addr uint16) uint8     { return b.c.cpuRead(addr) }
func (b cpuBus) Write(addr uint16, v uint8) { b.c.cpuWrite(addr, v) }

// New returns a console with its CPU and PPU in power-on state and no
// cartridge attached.
func New() *Console {
	c := &Console{
		PPU: ppu.New(),
		controllers: [2]*input.Controller{
			input.New(),
			input.New(),
		},
	}
	c.CPU = cpu.New(cpuBus{c})
	return c
}

// AttachCartridge wires a loaded cartridge into both the CPU and PPU bus
// decodes.
func (c *Console) AttachCartridge(cart *cartridge.Cartridge) {
	c.cart = cart
	c.PPU.AttachCartridge(cart)
}

// Reset runs the CPU and PPU reset sequences and clears DMA/controller
// transient state.
func (c *Console) Reset() {
	c.PPU.Reset()
	c.CPU.Reset()
	c.controllers[0].Reset()
	c.controllers[1].Reset()
	c.masterClock = 0
	c.dmaActive = false
	c.dmaHasByte = false
	c.dmaWait = 0
}

// SetController updates the live button state the console reports to the
// CPU on the next $4016/$4017 read sequence.
func (c *Console) SetController(port int, buttons uint8) {
	c.controllers[port].SetButtons(buttons)
}

// Frame returns the current RGBA frame buffer as packed 0xAARRGGBB words.
func (c *Console) Frame() []uint32 {
	return c.PPU.Frame()
}

// FrameComplete reports whether the PPU has entered the pre-render
// scanline since the last ClearFrameComplete call.
func (c *Console) FrameComplete() bool {
	return c.PPU.FrameComplete()
}

// ClearFrameComplete clears the frame_complete flag.
func (c *Console) ClearFrameComplete() {
	c.PPU.ClearFrameComplete()
}

// Tick advances the master clock by one step: every 4th step clocks the
// PPU, every 12th clocks the CPU (or services DMA), and the PPU's NMI
// output is re-evaluated against the CPU's NMI line after every PPU clock.
func (c *Console) Tick() {
	if c.masterClock%4 == 0 {
		c.PPU.Tick()
		c.CPU.SetNMILine(c.PPU.NMILine())
	}
	if c.masterClock%12 == 0 {
		if c.dmaActive {
			c.stepDMA()
		} else {
			c.CPU.Tick()
		}
	}
	c.masterClock++
}

// stepDMA runs one CPU-cycle-equivalent of the OAM DMA engine: the
// mandatory alignment cycle (two if DMA began on an odd CPU cycle), then
// alternating read/write halves of each of the 256 byte transfers.
func (c *Console) stepDMA() {
	if !c.dmaActive {
		glog.Fatalf("bus: stepDMA called while no DMA transfer is active")
	}
	if c.dmaWait > 0 {
		c.dmaWait--
		return
	}
	if !c.dmaHasByte {
		addr := uint16(c.dmaPage)<<8 | c.dmaOffset
		c.dmaBuffer = c.cpuRead(addr)
		c.dmaHasByte = true
		return
	}
	c.PPU.WriteRegister(4, c.dmaBuffer) // OAMDATA write advances OAMADDR
	c.dmaHasByte = false
	c.dmaOffset++
	if c.dmaOffset > 255 {
		c.dmaActive = false
	}
}

func (c *Console) triggerDMA(page uint8) {
	if c.dmaActive {
		return
	}
	c.dmaActive = true
	c.dmaPage = page
	c.dmaOffset = 0
	c.dmaHasByte = false
	c.dmaWait = 1
	if c.CPU.Cycles()%2 == 1 {
		c.dmaWait++
	}
}

// cpuRead implements the CPU address decode of spec.md §4.4.
func (c *Console) cpuRead(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return c.ram[addr&0x07FF]
	case addr < 0x4000:
		return c.PPU.ReadRegister(uint8(addr & 0x7))
	case addr == 0x4016:
		return c.controllers[0].Read()
	case addr == 0x4017:
		return c.controllers[1].Read()
	case addr >= 0x4020:
		v, _ := c.cart.CPURead(addr)
		return v
	default:
		glog.V(1).Infof("open-bus CPU read: address=0x%04x", addr)
		return 0
	}
}

// cpuWrite implements the CPU address decode for writes.
func (c *Console) cpuWrite(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		c.ram[addr&0x07FF] = value
	case addr < 0x4000:
		c.PPU.WriteRegister(uint8(addr&0x7), value)
	case addr == 0x4014:
		c.triggerDMA(value)
	case addr == 0x4016 || addr == 0x4017:
		strobe := value&1 != 0
		c.controllers[0].SetStrobe(strobe)
		c.controllers[1].SetStrobe(strobe)
	case addr >= 0x4020:
		c.cart.CPUWrite(addr, value)
	default:
		glog.V(1).Infof("open-bus CPU write: address=0x%04x value=0x%02x", addr, value)
	}
}
