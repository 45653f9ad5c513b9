package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	imguiebiten "github.com/plus3/flycam/debugui/ebiten"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

// Game drives the world from ebiten's update loop. ebiten calls Update at
// its TPS, so every tick advances the world by one fixed step.
type Game struct {
	World *world
	Imgui *imguiebiten.ImguiBackend

	step float64
}

// newGame creates the window. With debugUI the ImGui backend owns window
// creation and must exist before any ImGui system runs.
func newGame(tickRate int, debugUI bool) *Game {
	ebiten.SetTPS(tickRate)
	g := &Game{step: 1 / float64(tickRate)}

	if debugUI {
		backend := imguiebiten.NewImguiBackend("flycam", screenWidth, screenHeight)
		g.Imgui = &backend
	} else {
		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle("flycam")
	}
	return g
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.Imgui != nil {
		g.Imgui.BeginFrame()
		defer g.Imgui.EndFrame()
	}

	g.World.Scheduler.Once(g.step)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.Imgui != nil {
		g.Imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Imgui != nil {
		g.Imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
