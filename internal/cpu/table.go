package cpu

// opcodeTable is the 256-entry dispatch table of spec.md §4.2. Entries not
// listed are unofficial opcodes, defaulted below to a 2-cycle implied NOP.
var opcodeTable [256]opcodeInfo

// readCrossesPage marks the opcode bytes whose extra page-cross cycle is
// conditional on the actual crossing (the read-sensitive classes of
// spec.md §4.2: ADC/AND/CMP/EOR/LDA/LDX/LDY/ORA/SBC through an indexed or
// indirect-indexed addressing mode). Store instructions and branches are
// excluded — stores already carry the worst-case fixed cycle count, and
// branches account for crossing inside their own execute logic.
var readCrossesPage [256]bool

type row struct {
	opcode uint8
	name   string
	op     mnemonic
	mode   AddressingMode
	cycles uint8
}

var rows = []row{
	{0x69, "ADC", mADC, Immediate, 2}, {0x65, "ADC", mADC, ZeroPage, 3}, {0x75, "ADC", mADC, ZeroPageX, 4},
	{0x6D, "ADC", mADC, Absolute, 4}, {0x7D, "ADC", mADC, AbsoluteX, 4}, {0x79, "ADC", mADC, AbsoluteY, 4},
	{0x61, "ADC", mADC, IndexedIndirect, 6}, {0x71, "ADC", mADC, IndirectIndexed, 5},

	{0x29, "AND", mAND, Immediate, 2}, {0x25, "AND", mAND, ZeroPage, 3}, {0x35, "AND", mAND, ZeroPageX, 4},
	{0x2D, "AND", mAND, Absolute, 4}, {0x3D, "AND", mAND, AbsoluteX, 4}, {0x39, "AND", mAND, AbsoluteY, 4},
	{0x21, "AND", mAND, IndexedIndirect, 6}, {0x31, "AND", mAND, IndirectIndexed, 5},

	{0x0A, "ASL", mASL, Accumulator, 2}, {0x06, "ASL", mASL, ZeroPage, 5}, {0x16, "ASL", mASL, ZeroPageX, 6},
	{0x0E, "ASL", mASL, Absolute, 6}, {0x1E, "ASL", mASL, AbsoluteX, 7},

	{0x90, "BCC", mBCC, Relative, 2}, {0xB0, "BCS", mBCS, Relative, 2}, {0xF0, "BEQ", mBEQ, Relative, 2},

	{0x24, "BIT", mBIT, ZeroPage, 3}, {0x2C, "BIT", mBIT, Absolute, 4},

	{0x30, "BMI", mBMI, Relative, 2}, {0xD0, "BNE", mBNE, Relative, 2}, {0x10, "BPL", mBPL, Relative, 2},

	{0x00, "BRK", mBRK, Implied, 7},

	{0x50, "BVC", mBVC, Relative, 2}, {0x70, "BVS", mBVS, Relative, 2},

	{0x18, "CLC", mCLC, Implied, 2}, {0xD8, "CLD", mCLD, Implied, 2},
	{0x58, "CLI", mCLI, Implied, 2}, {0xB8, "CLV", mCLV, Implied, 2},

	{0xC9, "CMP", mCMP, Immediate, 2}, {0xC5, "CMP", mCMP, ZeroPage, 3}, {0xD5, "CMP", mCMP, ZeroPageX, 4},
	{0xCD, "CMP", mCMP, Absolute, 4}, {0xDD, "CMP", mCMP, AbsoluteX, 4}, {0xD9, "CMP", mCMP, AbsoluteY, 4},
	{0xC1, "CMP", mCMP, IndexedIndirect, 6}, {0xD1, "CMP", mCMP, IndirectIndexed, 5},

	{0xE0, "CPX", mCPX, Immediate, 2}, {0xE4, "CPX", mCPX, ZeroPage, 3}, {0xEC, "CPX", mCPX, Absolute, 4},
	{0xC0, "CPY", mCPY, Immediate, 2}, {0xC4, "CPY", mCPY, ZeroPage, 3}, {0xCC, "CPY", mCPY, Absolute, 4},

	{0xC6, "DEC", mDEC, ZeroPage, 5}, {0xD6, "DEC", mDEC, ZeroPageX, 6},
	{0xCE, "DEC", mDEC, Absolute, 6}, {0xDE, "DEC", mDEC, AbsoluteX, 7},
	{0xCA, "DEX", mDEX, Implied, 2}, {0x88, "DEY", mDEY, Implied, 2},

	{0x49, "EOR", mEOR, Immediate, 2}, {0x45, "EOR", mEOR, ZeroPage, 3}, {0x55, "EOR", mEOR, ZeroPageX, 4},
	{0x4D, "EOR", mEOR, Absolute, 4}, {0x5D, "EOR", mEOR, AbsoluteX, 4}, {0x59, "EOR", mEOR, AbsoluteY, 4},
	{0x41, "EOR", mEOR, IndexedIndirect, 6}, {0x51, "EOR", mEOR, IndirectIndexed, 5},

	{0xE6, "INC", mINC, ZeroPage, 5}, {0xF6, "INC", mINC, ZeroPageX, 6},
	{0xEE, "INC", mINC, Absolute, 6}, {0xFE, "INC", mINC, AbsoluteX, 7},
	{0xE8, "INX", mINX, Implied, 2}, {0xC8, "INY", mINY, Implied, 2},

	{0x4C, "JMP", mJMP, Absolute, 3}, {0x6C, "JMP", mJMP, Indirect, 5},
	{0x20, "JSR", mJSR, Absolute, 6},

	{0xA9, "LDA", mLDA, Immediate, 2}, {0xA5, "LDA", mLDA, ZeroPage, 3}, {0xB5, "LDA", mLDA, ZeroPageX, 4},
	{0xAD, "LDA", mLDA, Absolute, 4}, {0xBD, "LDA", mLDA, AbsoluteX, 4}, {0xB9, "LDA", mLDA, AbsoluteY, 4},
	{0xA1, "LDA", mLDA, IndexedIndirect, 6}, {0xB1, "LDA", mLDA, IndirectIndexed, 5},

	{0xA2, "LDX", mLDX, Immediate, 2}, {0xA6, "LDX", mLDX, ZeroPage, 3}, {0xB6, "LDX", mLDX, ZeroPageY, 4},
	{0xAE, "LDX", mLDX, Absolute, 4}, {0xBE, "LDX", mLDX, AbsoluteY, 4},

	{0xA0, "LDY", mLDY, Immediate, 2}, {0xA4, "LDY", mLDY, ZeroPage, 3}, {0xB4, "LDY", mLDY, ZeroPageX, 4},
	{0xAC, "LDY", mLDY, Absolute, 4}, {0xBC, "LDY", mLDY, AbsoluteX, 4},

	{0x4A, "LSR", mLSR, Accumulator, 2}, {0x46, "LSR", mLSR, ZeroPage, 5}, {0x56, "LSR", mLSR, ZeroPageX, 6},
	{0x4E, "LSR", mLSR, Absolute, 6}, {0x5E, "LSR", mLSR, AbsoluteX, 7},

	{0xEA, "NOP", mNOP, Implied, 2},

	{0x09, "ORA", mORA, Immediate, 2}, {0x05, "ORA", mORA, ZeroPage, 3}, {0x15, "ORA", mORA, ZeroPageX, 4},
	{0x0D, "ORA", mORA, Absolute, 4}, {0x1D, "ORA", mORA, AbsoluteX, 4}, {0x19, "ORA", mORA, AbsoluteY, 4},
	{0x01, "ORA", mORA, IndexedIndirect, 6}, {0x11, "ORA", mORA, IndirectIndexed, 5},

	{0x48, "PHA", mPHA, Implied, 3}, {0x08, "PHP", mPHP, Implied, 3},
	{0x68, "PLA", mPLA, Implied, 4}, {0x28, "PLP", mPLP, Implied, 4},

	{0x2A, "ROL", mROL, Accumulator, 2}, {0x26, "ROL", mROL, ZeroPage, 5}, {0x36, "ROL", mROL, ZeroPageX, 6},
	{0x2E, "ROL", mROL, Absolute, 6}, {0x3E, "ROL", mROL, AbsoluteX, 7},

	{0x6A, "ROR", mROR, Accumulator, 2}, {0x66, "ROR", mROR, ZeroPage, 5}, {0x76, "ROR", mROR, ZeroPageX, 6},
	{0x6E, "ROR", mROR, Absolute, 6}, {0x7E, "ROR", mROR, AbsoluteX, 7},

	{0x40, "RTI", mRTI, Implied, 6}, {0x60, "RTS", mRTS, Implied, 6},

	{0xE9, "SBC", mSBC, Immediate, 2}, {0xE5, "SBC", mSBC, ZeroPage, 3}, {0xF5, "SBC", mSBC, ZeroPageX, 4},
	{0xED, "SBC", mSBC, Absolute, 4}, {0xFD, "SBC", mSBC, AbsoluteX, 4}, {0xF9, "SBC", mSBC, AbsoluteY, 4},
	{0xE1, "SBC", mSBC, IndexedIndirect, 6}, {0xF1, "SBC", mSBC, IndirectIndexed, 5},

	{0x38, "SEC", mSEC, Implied, 2}, {0xF8, "SED", mSED, Implied, 2}, {0x78, "SEI", mSEI, Implied, 2},

	{0x85, "STA", mSTA, ZeroPage, 3}, {0x95, "STA", mSTA, ZeroPageX, 4}, {0x8D, "STA", mSTA, Absolute, 4},
	{0x9D, "STA", mSTA, AbsoluteX, 5}, {0x99, "STA", mSTA, AbsoluteY, 5},
	{0x81, "STA", mSTA, IndexedIndirect, 6}, {0x91, "STA", mSTA, IndirectIndexed, 6},

	{0x86, "STX", mSTX, ZeroPage, 3}, {0x96, "STX", mSTX, ZeroPageY, 4}, {0x8E, "STX", mSTX, Absolute, 4},
	{0x84, "STY", mSTY, ZeroPage, 3}, {0x94, "STY", mSTY, ZeroPageX, 4}, {0x8C, "STY", mSTY, Absolute, 4},

	{0xAA, "TAX", mTAX, Implied, 2}, {0xA8, "TAY", mTAY, Implied, 2}, {0xBA, "TSX", mTSX, Implied, 2},
	{0x8A, "TXA", mTXA, Implied, 2}, {0x9A, "TXS", mTXS, Implied, 2}, {0x98, "TYA", mTYA, Implied, 2},
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opcodeInfo{name: "NOP", op: mXXX, mode: Implied, cycles: 2}
	}
	for _, r := range rows {
		opcodeTable[r.opcode] = opcodeInfo{name: r.name, op: r.op, mode: r.mode, cycles: r.cycles}
	}

	readSensitive := map[mnemonic]bool{
		mADC: true, mAND: true, mCMP: true, mEOR: true,
		mLDA: true, mLDX: true, mLDY: true, mORA: true, mSBC: true,
	}
	for i, info := range opcodeTable {
		if !readSensitive[info.op] {
			continue
		}
		switch info.mode {
		case AbsoluteX, AbsoluteY, IndirectIndexed:
			readCrossesPage[i] = true
		}
	}
}
