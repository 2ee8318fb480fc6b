package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"platform3d/internal/engine"
	"platform3d/internal/physics"
)

// tuningPanel edits the live solver tuning. Values apply to the running
// world immediately; Changed fires on frames where something moved so the
// app can persist the panel state.
type tuningPanel struct {
	Visible      bool
	ShowContacts bool
	Changed      engine.Event
}

const (
	panelX      = float32(10)
	panelY      = float32(120)
	panelW      = float32(310)
	panelRowH   = float32(20)
	panelRowGap = float32(8)
	panelLabelW = float32(110)
)

func (p *tuningPanel) Draw(tuning *physics.Tuning) {
	if !p.Visible {
		return
	}
	before := *tuning
	beforeContacts := p.ShowContacts

	rows := float32(7)
	bg := rl.Rectangle{
		X:      panelX - 6,
		Y:      panelY - 30,
		Width:  panelW + 12,
		Height: rows*(panelRowH+panelRowGap) + 42,
	}
	rl.DrawRectangleRec(bg, rl.NewColor(20, 20, 30, 235))
	rl.DrawRectangleLinesEx(bg, 1, rl.NewColor(50, 50, 65, 255))
	rl.DrawText("Solver Tuning", int32(panelX), int32(panelY-24), 16, rl.RayWhite)

	y := panelY
	tuning.Gravity = p.sliderRow("Gravity", y, tuning.Gravity, 0, 5)
	y += panelRowH + panelRowGap
	tuning.StepHeight = p.sliderRow("Step Height", y, tuning.StepHeight, 0, 1)
	y += panelRowH + panelRowGap
	tuning.StepProbes = int(p.sliderRow("Step Probes", y, float32(tuning.StepProbes), 1, 20) + 0.5)
	y += panelRowH + panelRowGap
	tuning.GroundNormalY = p.sliderRow("Ground Cos", y, tuning.GroundNormalY, 0.1, 0.99)
	y += panelRowH + panelRowGap
	tuning.StableSlopeDeg = p.sliderRow("Stable Slope", y, tuning.StableSlopeDeg, 0, 89)
	y += panelRowH + panelRowGap

	contactBounds := rl.Rectangle{X: panelX, Y: y, Width: panelRowH, Height: panelRowH}
	p.ShowContacts = gui.CheckBox(contactBounds, "Contact Markers", p.ShowContacts)
	y += panelRowH + panelRowGap

	resetBounds := rl.Rectangle{X: panelX, Y: y, Width: 100, Height: panelRowH}
	if gui.Button(resetBounds, "Reset Defaults") {
		*tuning = physics.DefaultTuning()
	}

	if *tuning != before || p.ShowContacts != beforeContacts {
		p.Changed.Invoke()
	}
}

func (p *tuningPanel) sliderRow(label string, y, value, min, max float32) float32 {
	rl.DrawText(label, int32(panelX), int32(y+4), 14, rl.LightGray)
	bounds := rl.Rectangle{
		X:      panelX + panelLabelW,
		Y:      y,
		Width:  panelW - panelLabelW - 52,
		Height: panelRowH,
	}
	return gui.Slider(bounds, "", fmt.Sprintf("%.2f", value), value, min, max)
}
