package cpu

// resolveAddress implements the addressing-mode table of spec.md §4.2. It
// advances PC past any operand bytes and sets c.pageCrossed when the
// effective-address computation crosses a page boundary.
func (c *CPU) resolveAddress(mode AddressingMode) uint16 {
	switch mode {
	case Implied, Accumulator:
		return 0

	case Immediate:
		addr := c.PC
		c.PC++
		return addr

	case Absolute:
		addr := c.fetch16()
		return addr

	case AbsoluteX:
		base := c.fetch16()
		addr := base + uint16(c.X)
		c.pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case AbsoluteY:
		base := c.fetch16()
		addr := base + uint16(c.Y)
		c.pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case ZeroPage:
		return uint16(c.fetch8())

	case ZeroPageX:
		base := c.fetch8()
		return uint16(base + c.X)

	case ZeroPageY:
		base := c.fetch8()
		return uint16(base + c.Y)

	case Indirect:
		ptr := c.fetch16()
		var lo, hi uint16
		lo = uint16(c.bus.Read(ptr))
		if ptr&0x00FF == 0x00FF {
			hi = uint16(c.bus.Read(ptr & 0xFF00)) // NMOS page-wrap bug
		} else {
			hi = uint16(c.bus.Read(ptr + 1))
		}
		return hi<<8 | lo

	case IndexedIndirect:
		base := c.fetch8()
		ptr := base + c.X
		lo := uint16(c.bus.Read(uint16(ptr)))
		hi := uint16(c.bus.Read(uint16(ptr + 1)))
		return hi<<8 | lo

	case IndirectIndexed:
		ptr := uint16(c.fetch8())
		lo := uint16(c.bus.Read(ptr))
		hi := uint16(c.bus.Read((ptr + 1) & 0x00FF))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case Relative:
		offset := int8(c.fetch8())
		base := c.PC
		target := uint16(int32(base) + int32(offset))
		c.pageCrossed = (base & 0xFF00) != (target & 0xFF00)
		return target

	default:
		return 0
	}
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.bus.Read(c.PC))
	hi := uint16(c.bus.Read(c.PC + 1))
	c.PC += 2
	return lo | hi<<8
}

// operand reads the value an instruction operates on: A for Accumulator
// mode, otherwise the byte at the resolved effective address.
func (c *CPU) operand(mode AddressingMode) uint8 {
	if mode == Accumulator {
		return c.A
	}
	return c.bus.Read(c.addrFetched)
}

// readModifyWrite performs the dummy-write-then-real-write pattern spec.md
// §4.2 requires for ASL/LSR/ROL/ROR/INC/DEC: the unmodified value is
// written back once before the final result, observable on memory-mapped
// registers.
func (c *CPU) readModifyWrite(mode AddressingMode, f func(uint8) uint8) uint8 {
	old := c.operand(mode)
	result := f(old)
	if mode == Accumulator {
		c.A = result
	} else {
		c.bus.Write(c.addrFetched, old)
		c.bus.Write(c.addrFetched, result)
	}
	return result
}
