package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"shapenav/internal/engine"
	"shapenav/internal/nav"
)

// Inbound message types.
const (
	MessageTypePointerDown = "pointerdown"
	MessageTypePointerMove = "pointermove"
	MessageTypePointerUp   = "pointerup"
	MessageTypeClick       = "click"
	MessageTypeClose       = "close"
	MessageTypeResize      = "resize"
	MessageTypeKey         = "key"
)

// Outbound message types.
const (
	MessageTypeFrame         = "frame"
	MessageTypeNavigateStart = "navigate:start"
	MessageTypeNavigateClose = "navigate:close"
	MessageTypeError         = "error"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Inbound is any message a browser sends. Fields not used by Type are ignored.
type Inbound struct {
	Type   string  `json:"type"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Key    string  `json:"key"`
}

func DecodeInbound(data []byte) (Inbound, error) {
	var m Inbound
	if err := json.Unmarshal(data, &m); err != nil {
		return Inbound{}, fmt.Errorf("decode message: %w", err)
	}
	switch m.Type {
	case MessageTypePointerDown, MessageTypePointerMove, MessageTypePointerUp,
		MessageTypeClick, MessageTypeClose, MessageTypeResize, MessageTypeKey:
		return m, nil
	}
	return Inbound{}, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
}

// Apply feeds the message to the navigator. It must run on the navigator's goroutine.
func (m Inbound) Apply(n *nav.Navigator) error {
	switch m.Type {
	case MessageTypePointerDown:
		n.PointerDown(m.X, m.Y)
	case MessageTypePointerMove:
		n.PointerMove(m.X, m.Y)
	case MessageTypePointerUp:
		n.PointerUp()
	case MessageTypeClick:
		n.Click(m.X, m.Y)
	case MessageTypeClose:
		return n.Close()
	case MessageTypeResize:
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("resize: invalid size %dx%d", m.Width, m.Height)
		}
		n.Resize(m.Width, m.Height)
	case MessageTypeKey:
		// Keys the navigator does not bind are dropped silently.
		if k, ok := nav.ParseKey(m.Key); ok {
			n.Key(k)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
	return nil
}

type FrameMessage struct {
	Type     string     `json:"type"`
	Seq      uint64     `json:"seq"`
	Position [3]float32 `json:"position"`
	Rotation [4]float32 `json:"rotation"` // x, y, z, w
	Scale    float32    `json:"scale"`
	Phase    string     `json:"phase"`
	Debug    bool       `json:"debug,omitempty"`
	Selected string     `json:"selected,omitempty"`
}

func NewFrameMessage(f nav.Frame) FrameMessage {
	p, q := f.Transform.Position, f.Transform.Rotation
	return FrameMessage{
		Type:     MessageTypeFrame,
		Seq:      f.Seq,
		Position: [3]float32{p.X, p.Y, p.Z},
		Rotation: [4]float32{q.X, q.Y, q.Z, q.W},
		Scale:    f.Transform.Scale,
		Phase:    f.Phase.String(),
		Debug:    f.DebugMode,
		Selected: f.SelectedFace,
	}
}

type NavigateStartMessage struct {
	Type       string `json:"type"`
	FaceID     string `json:"faceId"`
	ContentRef string `json:"contentRef"`
	Label      string `json:"label"`
}

func NewNavigateStartMessage(e engine.NavigateStart) NavigateStartMessage {
	return NavigateStartMessage{
		Type:       MessageTypeNavigateStart,
		FaceID:     e.FaceID,
		ContentRef: e.ContentRef,
		Label:      e.Label,
	}
}

type NavigateCloseMessage struct {
	Type string `json:"type"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorMessage(err error) ErrorMessage {
	return ErrorMessage{Type: MessageTypeError, Message: err.Error()}
}
