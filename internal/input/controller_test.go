package input

import "testing"

func TestStrobeHighContinuouslyReloadsLiveState(t *testing.T) {
	c := New()
	c.SetStrobe(true)
	c.SetButtons(uint8(ButtonA))
	if bit := c.Read(); bit != 1 {
		t.Fatalf("Read() while strobed high with A held = %d, want 1", bit)
	}
	c.SetButtons(0)
	if bit := c.Read(); bit != 0 {
		t.Errorf("Read() while strobed high after releasing A = %d, want 0", bit)
	}
}

func TestSerialReadIsMSBFirst(t *testing.T) {
	c := New()
	c.SetButtons(uint8(ButtonA) | uint8(ButtonStart)) // bit7 and bit4
	c.SetStrobe(true)
	c.SetStrobe(false)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestStrobeFallingEdgeFreezesSnapshot(t *testing.T) {
	c := New()
	c.SetButtons(uint8(ButtonRight))
	c.SetStrobe(true)
	c.SetStrobe(false)
	c.SetButtons(0) // live state changes after the snapshot froze

	if bit := c.Read(); bit != 0 {
		t.Fatalf("first bit (A) = %d, want 0", bit)
	}
	for i := 0; i < 6; i++ {
		c.Read()
	}
	if bit := c.Read(); bit != 1 {
		t.Errorf("8th bit (Right) = %d, want 1 from the frozen snapshot", bit)
	}
}

func TestResetClearsState(t *testing.T) {
	c := New()
	c.SetButtons(0xFF)
	c.SetStrobe(true)
	c.Reset()
	if bit := c.Read(); bit != 0 {
		t.Errorf("Read() after Reset = %d, want 0", bit)
	}
}
