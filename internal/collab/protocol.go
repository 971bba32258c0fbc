package collab

import (
	"encoding/json"

	"github.com/hexpanel/hexpanel/internal/engine"
	"github.com/hexpanel/hexpanel/internal/geom"
)

type Message struct {
	Type     string          `json:"type"`
	DesignID string          `json:"designId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	UserID      string     `json:"userId,omitempty"`
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	ClientID    string `json:"clientId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID   string `json:"userId"`
	ClientID string `json:"clientId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Panel sync
	TypePanelSync      = "panel.sync"
	TypePanelUpdate    = "panel.update"
	TypeViewportResize = "viewport.resize"
	TypeSceneRender    = "scene.render"
)

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// PanelPayload carries a full panel document, for panel.update from a
// client and panel.sync from the server.
type PanelPayload struct {
	Panel json.RawMessage `json:"panel"`
}

type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScenePayload is one rendered frame of the room's panel. Frames of a tiled
// panel exceed the 32 KiB read limit websocket clients such as
// coder/websocket default to; non-browser clients must raise it.
type ScenePayload struct {
	Commands []engine.DrawCommand `json:"commands"`
	Bounds   geom.Rect            `json:"bounds"`
	Viewport geom.Size            `json:"viewport"`
	Tiles    int                  `json:"tiles"`
}

func newMessage(msgType string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: msgType, Payload: data}
}

func errorMessage(text string) *Message {
	return newMessage(TypeError, ErrorPayload{Message: text})
}
