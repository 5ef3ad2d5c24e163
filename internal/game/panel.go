package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/harmonica"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const noContent = "No content available."

// LoadContent reads the document a face points at. A missing file yields
// the placeholder text and no error.
func LoadContent(root, ref string) (string, error) {
	if ref == "" {
		return noContent, nil
	}
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ref)))
	if errors.Is(err, fs.ErrNotExist) {
		return noContent, nil
	}
	if err != nil {
		return "", fmt.Errorf("load content %s: %w", ref, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return noContent, nil
	}
	return text, nil
}

// wrapText breaks text into lines of at most width runes, keeping
// paragraph breaks. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

// ContentPanel is the side sheet that shows a face's document. It slides in
// on a critically damped spring.
type ContentPanel struct {
	Title string
	Body  string

	open    bool
	spring  harmonica.Spring
	reveal  float64 // 0 hidden, 1 fully shown
	vel     float64
	onClose func()
}

func NewContentPanel(fps int, onClose func()) *ContentPanel {
	return &ContentPanel{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		onClose: onClose,
	}
}

func (p *ContentPanel) Open(title, body string) {
	p.Title = title
	p.Body = body
	p.open = true
}

func (p *ContentPanel) Close() {
	p.open = false
}

func (p *ContentPanel) IsOpen() bool { return p.open }

// Reveal returns how far the panel has slid in, 0 to 1.
func (p *ContentPanel) Reveal() float64 { return p.reveal }

// Update steps the slide spring by one frame.
func (p *ContentPanel) Update() {
	target := 0.0
	if p.open {
		target = 1.0
	}
	p.reveal, p.vel = p.spring.Update(p.reveal, p.vel, target)
	if !p.open && p.reveal < 0.001 {
		p.reveal, p.vel = 0, 0
	}
}

// Bounds returns the panel rectangle for a screen size.
func (p *ContentPanel) Bounds(screenW, screenH int, narrow bool) rl.Rectangle {
	r := float32(p.reveal)
	if narrow {
		h := float32(screenH) * 0.55
		return rl.Rectangle{X: 0, Y: float32(screenH) - h*r, Width: float32(screenW), Height: h}
	}
	w := float32(screenW) * 0.45
	return rl.Rectangle{X: float32(screenW) - w*r, Y: 0, Width: w, Height: float32(screenH)}
}

// Contains reports whether a screen point is over the visible panel.
func (p *ContentPanel) Contains(pt rl.Vector2, screenW, screenH int, narrow bool) bool {
	if p.reveal <= 0 {
		return false
	}
	return rl.CheckCollisionPointRec(pt, p.Bounds(screenW, screenH, narrow))
}

func (p *ContentPanel) Draw(screenW, screenH int, narrow bool) {
	if p.reveal <= 0 {
		return
	}
	b := p.Bounds(screenW, screenH, narrow)
	rl.DrawRectangleRec(b, colorBgPanel)
	rl.DrawRectangleLinesEx(b, 1, colorAccent)

	x := int32(b.X) + 24
	y := int32(b.Y) + 24
	drawTextEx(uiFont, p.Title, x, y, 32, colorTextPrimary)

	if gui.Button(rl.Rectangle{X: b.X + b.Width - 44, Y: b.Y + 16, Width: 28, Height: 28}, "X") && p.onClose != nil {
		p.onClose()
	}

	const size = 18
	charW := measureText(uiFont, "M", size)
	cols := int((b.Width - 48) / max(charW, 1))
	y += 56
	for _, line := range wrapText(p.Body, max(cols, 10)) {
		if float32(y) > b.Y+b.Height-24 {
			break
		}
		drawTextEx(uiFont, line, x, y, size, colorTextSecondary)
		y += size + 6
	}
}
