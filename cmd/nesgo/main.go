// Command nesgo runs the NES emulation core against a single iNES ROM,
// presenting its frame buffer through an Ebitengine window and translating
// the keyboard into the two controller ports.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"nesgo/internal/bus"
	"nesgo/internal/cartridge"
	"nesgo/internal/input"
)

const (
	screenWidth  = 256
	screenHeight = 240
	windowScale  = 3
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <rom-path>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romPath string) error {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("opening rom: %w", err)
	}
	cart, err := cartridge.LoadINES(data)
	if err != nil {
		return err
	}

	console := bus.New()
	console.AttachCartridge(cart)
	console.Reset()

	game := &emulatorGame{console: console}

	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("nesgo — " + romPath)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running emulator: %w", err)
	}
	return nil
}

// emulatorGame implements ebiten.Game: each Update runs the console until a
// frame completes, and Draw blits the resulting frame buffer.
type emulatorGame struct {
	console *bus.Console
	image   *ebiten.Image
}

func (g *emulatorGame) Update() error {
	g.console.SetController(0, pollButtons())

	for !g.console.FrameComplete() {
		g.console.Tick()
	}
	g.console.ClearFrameComplete()
	return nil
}

func (g *emulatorGame) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(screenWidth, screenHeight)
	}
	frame := g.console.Frame()
	pix := make([]byte, screenWidth*screenHeight*4)
	for i, argb := range frame {
		r, gr, b, a := unpackARGB(argb)
		pix[i*4+0] = r
		pix[i*4+1] = gr
		pix[i*4+2] = b
		pix[i*4+3] = a
	}
	g.image.WritePixels(pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.image, op)
}

func (g *emulatorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth * windowScale, screenHeight * windowScale
}

func unpackARGB(v uint32) (r, g, b, a uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v), 0xFF
}

// pollButtons translates the keyboard into the spec's button bit layout
// (bit 7 A ... bit 0 Right).
func pollButtons() uint8 {
	var v uint8
	press := func(key ebiten.Key, bit input.Button) {
		if ebiten.IsKeyPressed(key) {
			v |= uint8(bit)
		}
	}
	press(ebiten.KeyZ, input.ButtonA)
	press(ebiten.KeyX, input.ButtonB)
	press(ebiten.KeyShift, input.ButtonSelect)
	press(ebiten.KeyEnter, input.ButtonStart)
	press(ebiten.KeyArrowUp, input.ButtonUp)
	press(ebiten.KeyArrowDown, input.ButtonDown)
	press(ebiten.KeyArrowLeft, input.ButtonLeft)
	press(ebiten.KeyArrowRight, input.ButtonRight)
	return v
}
