package game

import (
	"encoding/json"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ViewerPrefs is the viewer state remembered between runs.
type ViewerPrefs struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	AutoRotate bool    `json:"autoRotate"`
	SpeedScale float32 `json:"speedScale"`
}

const DefaultPrefsFile = ".shapenav_prefs.json"

func defaultPrefs() ViewerPrefs {
	return ViewerPrefs{AutoRotate: true, SpeedScale: 1}
}

// LoadPrefs reads path over the defaults, so absent keys keep them. A missing
// file is not an error; a corrupt one is removed so the next save starts clean.
func LoadPrefs(path string) (ViewerPrefs, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ViewerPrefs{}, false, nil
	}
	if err != nil {
		return ViewerPrefs{}, false, fmt.Errorf("read prefs: %w", err)
	}

	p := defaultPrefs()
	if err := json.Unmarshal(data, &p); err != nil {
		os.Remove(path)
		return ViewerPrefs{}, false, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	return p, true, nil
}

func SavePrefs(path string, p ViewerPrefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// applyPrefs restores remembered settings onto a game that has not opened its window yet.
func (g *Game) applyPrefs(p ViewerPrefs) {
	if p.Width > 0 && p.Height > 0 {
		g.opts.Width, g.opts.Height = p.Width, p.Height
	}
	g.autoRotate = p.AutoRotate
	g.nav.SetAutoRotate(p.AutoRotate)
	if p.SpeedScale > 0 {
		g.speedScale = p.SpeedScale
		g.nav.SetBaseSpeed(rl.Vector2Scale(g.baseSpeed, p.SpeedScale))
	}
}

func (g *Game) currentPrefs(width, height int) ViewerPrefs {
	return ViewerPrefs{
		Width:      width,
		Height:     height,
		AutoRotate: g.autoRotate,
		SpeedScale: g.speedScale,
	}
}
