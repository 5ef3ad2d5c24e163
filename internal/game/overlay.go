package game

import (
	"fmt"

	"shapenav/internal/engine"
	"shapenav/internal/nav"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawDebugOverlay shows engine state and the auto-rotate controls while
// debug mode is on.
func (g *Game) drawDebugOverlay(f nav.Frame) {
	if !f.DebugMode {
		return
	}

	const x, w = 10, 280
	y := float32(40)
	rl.DrawRectangleRec(rl.Rectangle{X: x - 6, Y: y - 6, Width: w + 12, Height: 222}, colorBgPanel)

	ex, ey, ez := engine.EulerXYZ(f.Transform.Rotation)
	lines := []string{
		fmt.Sprintf("Phase:    %s (%s)", f.Phase, f.TransitionKind),
		fmt.Sprintf("Rotation: %.3f %.3f %.3f", ex, ey, ez),
		fmt.Sprintf("Velocity: %.4f %.4f", f.AngularVelocity.X, f.AngularVelocity.Y),
		fmt.Sprintf("Ramp:     %.2f", f.AutoRotateMultiplier),
		fmt.Sprintf("Frame:    %d", f.Seq),
	}
	for _, line := range lines {
		drawTextEx(uiFontMono, line, x, int32(y), 16, colorTextSecondary)
		y += 22
	}

	y += 6
	g.autoRotate = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}, "Auto-rotate", g.autoRotate)
	g.nav.SetAutoRotate(g.autoRotate)
	y += 30

	scale := gui.Slider(rl.Rectangle{X: x + 60, Y: y, Width: w - 110, Height: 18}, "Speed", fmt.Sprintf("%.1fx", g.speedScale), g.speedScale, 0, 5)
	if scale != g.speedScale {
		g.speedScale = scale
		g.nav.SetBaseSpeed(rl.Vector2Scale(g.baseSpeed, scale))
	}

	drawTextEx(uiFont, "Arrows / Z X nudge, D leaves debug", x, int32(y+30), 14, colorTextMuted)
}
