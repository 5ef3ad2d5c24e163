package nav

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrInvalidConfig = errors.New("invalid navigation config")

// Config holds the tuning constants of the navigation engine. Speeds,
// increments and damping are per frame.
type Config struct {
	DragThresholdPx float32
	DragSensitivity float32
	VelocityDamping float32
	RestThreshold   float32 // below this angular speed momentum is dropped
	IdleTimeout     time.Duration
	ClickGrace      time.Duration // how long a finished drag suppresses the following click

	BaseSpeed           rl.Vector2
	AutoRotateIncrement float32

	ToContentSpeed float32
	ToCenterSpeed  float32
	Epsilon        float32
	PauseDuration  time.Duration
	CloseDuration  time.Duration

	ContentPositionDesktop rl.Vector3
	ContentPositionMobile  rl.Vector3
	ContentScale           float32
	MobileBreakpoint       int

	InitialRotation        [3]float32
	DebugRotationIncrement float32
}

func DefaultConfig() Config {
	return Config{
		DragThresholdPx: 3,
		DragSensitivity: 0.01,
		VelocityDamping: 0.95,
		RestThreshold:   1e-5,
		IdleTimeout:     6 * time.Second,
		ClickGrace:      250 * time.Millisecond,

		BaseSpeed:           rl.Vector2{X: 0.002, Y: 0.001},
		AutoRotateIncrement: 0.01,

		ToContentSpeed: 0.08,
		ToCenterSpeed:  0.035,
		Epsilon:        0.01,
		PauseDuration:  3 * time.Second,
		CloseDuration:  time.Second,

		ContentPositionDesktop: rl.Vector3{X: -3.5, Y: 0, Z: 0},
		ContentPositionMobile:  rl.Vector3{X: 0, Y: 3.5, Z: 0},
		ContentScale:           0.7,
		MobileBreakpoint:       600,

		InitialRotation:        [3]float32{-0.106, 0.809, -0.651},
		DebugRotationIncrement: 0.05,
	}
}

// Validate reports every out-of-range value, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.DragThresholdPx < 0 {
		bad("dragThresholdPx must be >= 0, got %v", c.DragThresholdPx)
	}
	if c.DragSensitivity <= 0 {
		bad("dragSensitivity must be > 0, got %v", c.DragSensitivity)
	}
	if c.VelocityDamping < 0 || c.VelocityDamping >= 1 {
		bad("velocityDamping must be in [0,1), got %v", c.VelocityDamping)
	}
	if c.RestThreshold < 0 {
		bad("restThreshold must be >= 0, got %v", c.RestThreshold)
	}
	if c.AutoRotateIncrement <= 0 || c.AutoRotateIncrement > 1 {
		bad("autoRotateIncrement must be in (0,1], got %v", c.AutoRotateIncrement)
	}
	if c.ToContentSpeed <= 0 || c.ToContentSpeed >= 1 {
		bad("toContentSpeed must be in (0,1), got %v", c.ToContentSpeed)
	}
	if c.ToCenterSpeed <= 0 || c.ToCenterSpeed >= 1 {
		bad("toCenterSpeed must be in (0,1), got %v", c.ToCenterSpeed)
	}
	if c.Epsilon <= 0 {
		bad("epsilon must be > 0, got %v", c.Epsilon)
	}
	if c.IdleTimeout <= 0 {
		bad("idleTimeoutMs must be > 0")
	}
	if c.CloseDuration <= 0 {
		bad("closeDurationMs must be > 0")
	}
	if c.PauseDuration < 0 {
		bad("pauseDurationMs must be >= 0")
	}
	if c.ClickGrace < 0 {
		bad("clickGraceMs must be >= 0")
	}
	if c.ContentScale <= 0 {
		bad("contentScale must be > 0, got %v", c.ContentScale)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// --- JSON ---

type configFile struct {
	DragThresholdPx        float32    `json:"dragThresholdPx"`
	DragSensitivity        float32    `json:"dragSensitivity"`
	VelocityDamping        float32    `json:"velocityDamping"`
	RestThreshold          float32    `json:"restThreshold"`
	IdleTimeoutMs          int        `json:"idleTimeoutMs"`
	ClickGraceMs           int        `json:"clickGraceMs"`
	BaseSpeed              [2]float32 `json:"baseSpeed"`
	AutoRotateIncrement    float32    `json:"autoRotateIncrement"`
	ToContentSpeed         float32    `json:"toContentSpeed"`
	ToCenterSpeed          float32    `json:"toCenterSpeed"`
	Epsilon                float32    `json:"epsilon"`
	PauseDurationMs        int        `json:"pauseDurationMs"`
	CloseDurationMs        int        `json:"closeDurationMs"`
	ContentPositionDesktop [3]float32 `json:"contentPositionDesktop"`
	ContentPositionMobile  [3]float32 `json:"contentPositionMobile"`
	ContentScale           float32    `json:"contentScale"`
	MobileBreakpoint       int        `json:"mobileBreakpoint"`
	InitialRotation        [3]float32 `json:"initialRotation"`
	DebugRotationIncrement float32    `json:"debugRotationIncrement"`
}

func toFile(c Config) configFile {
	return configFile{
		DragThresholdPx:        c.DragThresholdPx,
		DragSensitivity:        c.DragSensitivity,
		VelocityDamping:        c.VelocityDamping,
		RestThreshold:          c.RestThreshold,
		IdleTimeoutMs:          int(c.IdleTimeout / time.Millisecond),
		ClickGraceMs:           int(c.ClickGrace / time.Millisecond),
		BaseSpeed:              [2]float32{c.BaseSpeed.X, c.BaseSpeed.Y},
		AutoRotateIncrement:    c.AutoRotateIncrement,
		ToContentSpeed:         c.ToContentSpeed,
		ToCenterSpeed:          c.ToCenterSpeed,
		Epsilon:                c.Epsilon,
		PauseDurationMs:        int(c.PauseDuration / time.Millisecond),
		CloseDurationMs:        int(c.CloseDuration / time.Millisecond),
		ContentPositionDesktop: vecArray(c.ContentPositionDesktop),
		ContentPositionMobile:  vecArray(c.ContentPositionMobile),
		ContentScale:           c.ContentScale,
		MobileBreakpoint:       c.MobileBreakpoint,
		InitialRotation:        c.InitialRotation,
		DebugRotationIncrement: c.DebugRotationIncrement,
	}
}

func (f configFile) config() Config {
	return Config{
		DragThresholdPx:        f.DragThresholdPx,
		DragSensitivity:        f.DragSensitivity,
		VelocityDamping:        f.VelocityDamping,
		RestThreshold:          f.RestThreshold,
		IdleTimeout:            time.Duration(f.IdleTimeoutMs) * time.Millisecond,
		ClickGrace:             time.Duration(f.ClickGraceMs) * time.Millisecond,
		BaseSpeed:              rl.Vector2{X: f.BaseSpeed[0], Y: f.BaseSpeed[1]},
		AutoRotateIncrement:    f.AutoRotateIncrement,
		ToContentSpeed:         f.ToContentSpeed,
		ToCenterSpeed:          f.ToCenterSpeed,
		Epsilon:                f.Epsilon,
		PauseDuration:          time.Duration(f.PauseDurationMs) * time.Millisecond,
		CloseDuration:          time.Duration(f.CloseDurationMs) * time.Millisecond,
		ContentPositionDesktop: arrayVec(f.ContentPositionDesktop),
		ContentPositionMobile:  arrayVec(f.ContentPositionMobile),
		ContentScale:           f.ContentScale,
		MobileBreakpoint:       f.MobileBreakpoint,
		InitialRotation:        f.InitialRotation,
		DebugRotationIncrement: f.DebugRotationIncrement,
	}
}

func vecArray(v rl.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }
func arrayVec(a [3]float32) rl.Vector3 { return rl.Vector3{X: a[0], Y: a[1], Z: a[2]} }

// ParseConfig overlays the JSON document onto the defaults. Absent keys keep
// their default value.
func ParseConfig(data []byte) (Config, error) {
	f := toFile(DefaultConfig())
	if err := json.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := f.config()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// MarshalJSON writes the config in the same shape ParseConfig reads.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(toFile(c))
}
