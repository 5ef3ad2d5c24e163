package game

import (
	"log"
	"os"
	"path/filepath"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Viewer fonts: Outfit for UI, JetBrains Mono for numbers. Both are optional.
var uiFont rl.Font
var uiFontMono rl.Font
var uiFontsLoaded bool

// Indigo dark theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 245)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent      = rl.NewColor(108, 99, 255, 255) // #6c63ff
	colorAccentLight = rl.NewColor(167, 139, 250, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)

	colorEdge = rl.NewColor(255, 255, 255, 90)
)

// faceColors tints the pyramid sides in tag order; the last entry is the base.
var faceColors = []rl.Color{
	rl.NewColor(108, 99, 255, 255),
	rl.NewColor(167, 139, 250, 255),
	rl.NewColor(86, 204, 242, 255),
	rl.NewColor(244, 114, 182, 255),
	rl.NewColor(48, 48, 65, 255),
}

func faceColor(tag int, selected bool) rl.Color {
	c := faceColors[len(faceColors)-1]
	if tag >= 0 && tag < len(faceColors) {
		c = faceColors[tag]
	}
	if !selected {
		return rl.ColorAlpha(c, 0.78)
	}
	return rl.ColorBrightness(c, 0.25)
}

func loadFont(dir, name string) rl.Font {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return rl.Font{}
	}
	f := rl.LoadFontEx(path, 48, nil)
	if f.Texture.ID > 0 {
		rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
		log.Printf("[viewer] loaded font %s", name)
	}
	return f
}

// initRayguiStyle applies the theme. Call after the window exists.
func initRayguiStyle(fontDir string) {
	if !uiFontsLoaded {
		uiFontsLoaded = true
		uiFont = loadFont(fontDir, "Outfit-Regular.ttf")
		if uiFont.Texture.ID > 0 {
			gui.SetFont(uiFont)
		}
		uiFontMono = loadFont(fontDir, "JetBrainsMono-Regular.ttf")
	}

	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawTextEx draws text with font when it loaded, else with the raylib default.
func drawTextEx(font rl.Font, text string, x, y int32, size float32, color rl.Color) {
	if font.Texture.ID > 0 {
		rl.DrawTextEx(font, text, rl.Vector2{X: float32(x), Y: float32(y)}, size, 0, color)
	} else {
		rl.DrawText(text, x, y, int32(size), color)
	}
}

func measureText(font rl.Font, text string, size float32) float32 {
	if font.Texture.ID > 0 {
		return rl.MeasureTextEx(font, text, size, 0).X
	}
	return float32(rl.MeasureText(text, int32(size)))
}
