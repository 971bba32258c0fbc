package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hexpanel/hexpanel/internal/document"
)

const saveTimeout = 10 * time.Second

// PanelLoader fetches the stored panel of a design when its room opens.
type PanelLoader func(ctx context.Context, designID string) (*document.Panel, error)

// PanelSaver persists a room's panel.
type PanelSaver func(ctx context.Context, designID string, panel *document.Panel) error

type Room struct {
	designID string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	preview  *PreviewState
}

func NewRoom(designID string, preview *PreviewState) *Room {
	return &Room{
		designID: designID,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
		preview:  preview,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // designID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	loader PanelLoader
	saver  PanelSaver
}

func NewHub(loader PanelLoader, saver PanelSaver) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		loader:     loader,
		saver:      saver,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Stop ends Run and saves every room with unsaved changes.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := h.SaveAll(ctx); err != nil {
			slog.Error("save rooms on shutdown", "error", err)
		}
	})
}

// SaveAll persists every dirty room.
func (h *Hub) SaveAll(ctx context.Context) error {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.mu.RUnlock()

	var errs []error
	for _, room := range rooms {
		if err := h.saveRoom(ctx, room); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Hub) saveRoom(ctx context.Context, room *Room) error {
	if h.saver == nil {
		return nil
	}
	panel, rev, dirty := room.preview.Snapshot()
	if !dirty {
		return nil
	}
	if err := h.saver(ctx, room.designID, panel); err != nil {
		return fmt.Errorf("save design %s: %w", room.designID, err)
	}
	room.preview.MarkSaved(rev)
	slog.Info("design saved", "design", room.designID, "revision", rev)
	return nil
}

func (h *Hub) openRoom(designID string) (*Room, error) {
	h.mu.RLock()
	room, ok := h.rooms[designID]
	h.mu.RUnlock()
	if ok {
		return room, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	panel, err := h.loader(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("load design %s: %w", designID, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[designID]; ok {
		return room, nil
	}
	room = NewRoom(designID, NewPreviewState(panel))
	h.rooms[designID] = room
	return room, nil
}

func (h *Hub) addClient(client *Client) {
	select {
	case <-h.done:
		client.closeSend()
		return
	default:
	}

	room, err := h.openRoom(client.DesignID)
	if err != nil {
		slog.Error("open room", "design", client.DesignID, "error", err)
		client.Send(errorMessage("design unavailable"))
		client.closeSend()
		return
	}

	h.mu.Lock()
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{ClientID: client.ClientID, UserID: client.UserID}))
	client.Send(newMessage(TypePanelSync, PanelPayload{Panel: room.preview.PanelJSON()}))
	client.Send(sceneMessage(room.preview))

	client.Send(room.presence.StateMessage())

	// Broadcast join to other clients
	joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{
		UserID:      client.UserID,
		ClientID:    client.ClientID,
		DisplayName: client.DisplayName,
	})
	joinMsg.UserID = client.UserID
	h.broadcastToRoom(client.DesignID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "design", client.DesignID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DesignID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, member := room.clients[client.ClientID]; !member {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.closeSend()
	room.presence.Remove(client.ClientID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.DesignID)
	}
	h.mu.Unlock()

	if empty {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		if err := h.saveRoom(ctx, room); err != nil {
			slog.Error("save closed room", "error", err)
		}
		cancel()
	}

	// Broadcast leave to remaining clients
	leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{UserID: client.UserID, ClientID: client.ClientID})
	leaveMsg.UserID = client.UserID
	h.broadcastToRoom(client.DesignID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "design", client.DesignID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypePanelUpdate:
		h.handlePanelUpdate(sender, msg)
	case TypeViewportResize:
		h.handleViewportResize(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		sender.Send(errorMessage("unknown message type " + msg.Type))
	}
}

func (h *Hub) room(designID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[designID]
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName
	presence.UserID = sender.UserID

	room := h.room(sender.DesignID)
	if room == nil {
		return
	}

	room.presence.Update(sender.ClientID, &presence)

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:     TypePresenceUpdate,
		UserID:   sender.UserID,
		ClientID: sender.ClientID,
		Payload:  outPayload,
	}
	h.broadcastToRoom(sender.DesignID, outMsg, sender.ClientID)
}

func (h *Hub) handlePanelUpdate(sender *Client, msg *Message) {
	var payload PanelPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || len(payload.Panel) == 0 {
		sender.Send(errorMessage("invalid panel.update payload"))
		return
	}

	room := h.room(sender.DesignID)
	if room == nil {
		return
	}

	if _, err := room.preview.ApplyPanel(payload.Panel); err != nil {
		slog.Debug("rejected panel update", "error", err, "user", sender.UserID)
		sender.Send(errorMessage(err.Error()))
		return
	}

	syncMsg := newMessage(TypePanelSync, PanelPayload{Panel: room.preview.PanelJSON()})
	syncMsg.UserID = sender.UserID
	h.broadcastToRoom(sender.DesignID, syncMsg, sender.ClientID)
	h.broadcastToRoom(sender.DesignID, sceneMessage(room.preview), "")
}

func (h *Hub) handleViewportResize(sender *Client, msg *Message) {
	var payload ViewportPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		sender.Send(errorMessage("invalid viewport.resize payload"))
		return
	}

	room := h.room(sender.DesignID)
	if room == nil {
		return
	}

	if _, err := room.preview.Resize(payload.Width, payload.Height); err != nil {
		sender.Send(errorMessage(err.Error()))
		return
	}
	h.broadcastToRoom(sender.DesignID, sceneMessage(room.preview), "")
}

func sceneMessage(ps *PreviewState) *Message {
	scene, seq := ps.Render()
	msg := newMessage(TypeSceneRender, scene)
	msg.Seq = seq
	return msg
}

func (h *Hub) broadcastToRoom(designID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[designID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
