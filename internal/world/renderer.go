package world

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"platform3d/internal/components"
	"platform3d/internal/engine"
)

// Renderer draws every shape in the world's scene. Draw must run between
// rl.BeginMode3D and rl.EndMode3D.
type Renderer struct {
	// ShowContacts overlays a marker and normal for each overlap pair
	// found during the last Update.
	ShowContacts bool
}

func (r *Renderer) Draw(w *World) {
	rl.DrawGrid(40, 1.0)
	for _, obj := range w.Scene.GameObjects {
		if !obj.Active {
			continue
		}
		if shape := engine.GetComponent[*components.ShapeRenderer](obj); shape != nil {
			shape.Draw()
		}
	}
	if !r.ShowContacts {
		return
	}
	for _, pair := range w.LastPairs() {
		at := pair.Contact.Position
		tip := at.Add(pair.Contact.Normal.Mul(0.5))
		rl.DrawSphere(rl.NewVector3(at[0], at[1], at[2]), 0.05, rl.Red)
		rl.DrawLine3D(
			rl.NewVector3(at[0], at[1], at[2]),
			rl.NewVector3(tip[0], tip[1], tip[2]),
			rl.Yellow,
		)
	}
}

var namedColors = map[string]rl.Color{
	"lightgray": rl.LightGray,
	"gray":      rl.Gray,
	"darkgray":  rl.DarkGray,
	"yellow":    rl.Yellow,
	"gold":      rl.Gold,
	"orange":    rl.Orange,
	"pink":      rl.Pink,
	"red":       rl.Red,
	"maroon":    rl.Maroon,
	"green":     rl.Green,
	"lime":      rl.Lime,
	"darkgreen": rl.DarkGreen,
	"skyblue":   rl.SkyBlue,
	"blue":      rl.Blue,
	"darkblue":  rl.DarkBlue,
	"purple":    rl.Purple,
	"violet":    rl.Violet,
	"beige":     rl.Beige,
	"brown":     rl.Brown,
	"white":     rl.RayWhite,
	"magenta":   rl.Magenta,
}

func colorByName(name string) rl.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	if name != "" {
		log.Printf("Warning: unknown color %q, using gray", name)
	}
	return rl.Gray
}

func playerColor() rl.Color {
	return rl.NewColor(80, 220, 120, 255)
}
