package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inamate/board/internal/store"
)

const saveTimeout = 5 * time.Second

var emptyScene = []byte(`{"elements":[]}`)

// Store persists the latest scene of each board.
type Store interface {
	LoadScene(ctx context.Context, boardID string) ([]byte, error)
	SaveScene(ctx context.Context, boardID string, data []byte) error
}

// Room is the set of clients attached to one board and the board's latest scene.
type Room struct {
	boardID string
	clients map[string]*Client // clientID -> client
	scene   []byte
	dirty   bool
}

func NewRoom(boardID string, scene []byte) *Room {
	return &Room{
		boardID: boardID,
		clients: make(map[string]*Client),
		scene:   scene,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // boardID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	store   Store
	options ClientOptions
	logger  *slog.Logger
}

func NewHub(st Store, opts ClientOptions, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		store:      st,
		options:    opts,
		logger:     logger,
	}
}

// Run owns room membership until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(ctx, client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Serve attaches an accepted websocket to a board and blocks until the connection closes.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, boardID string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := NewClient(h, conn, boardID, uuid.NewString(), h.options)
	if !h.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go client.WritePump(ctx)
	processed := make(chan struct{})
	go func() {
		client.Run(ctx)
		close(processed)
	}()

	client.ReadPump(ctx)
	cancel()
	<-processed
	h.Unregister(client)
}

func (h *Hub) addClient(ctx context.Context, client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		room = NewRoom(client.BoardID, h.loadScene(ctx, client.BoardID))
		h.rooms[client.BoardID] = room
	}
	room.clients[client.ClientID] = client
	count := len(room.clients)
	scene := room.scene
	h.mu.Unlock()

	payload, _ := json.Marshal(WelcomePayload{
		ClientID: client.ClientID,
		BoardID:  client.BoardID,
		Clients:  count,
		Scene:    scene,
	})
	client.Send(&Message{Type: TypeWelcome, BoardID: client.BoardID, ClientID: client.ClientID, Payload: payload})
	client.deliver(remoteScene{data: scene})

	joinPayload, _ := json.Marshal(PresencePayload{ClientID: client.ClientID, Clients: count})
	h.broadcastToRoom(client.BoardID, &Message{Type: TypePresenceJoin, BoardID: client.BoardID, ClientID: client.ClientID, Payload: joinPayload}, client.ClientID)

	h.logger.Info("client joined", "board", client.BoardID, "client", client.ClientID, "clients", count)
}

func (h *Hub) loadScene(ctx context.Context, boardID string) []byte {
	if h.store == nil {
		return emptyScene
	}
	data, err := h.store.LoadScene(ctx, boardID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("load board", "board", boardID, "error", err)
		}
		return emptyScene
	}
	return data
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	remaining := len(room.clients)
	var save []byte
	if remaining == 0 {
		delete(h.rooms, client.BoardID)
		if room.dirty {
			save = room.scene
		}
	}
	h.mu.Unlock()

	if save != nil {
		h.saveScene(client.BoardID, save)
	}
	if remaining > 0 {
		leavePayload, _ := json.Marshal(PresencePayload{ClientID: client.ClientID, Clients: remaining})
		h.broadcastToRoom(client.BoardID, &Message{Type: TypePresenceLeave, BoardID: client.BoardID, ClientID: client.ClientID, Payload: leavePayload}, "")
	}
	h.logger.Info("client left", "board", client.BoardID, "client", client.ClientID)
}

func (h *Hub) saveScene(boardID string, data []byte) {
	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := h.store.SaveScene(ctx, boardID, data); err != nil {
		h.logger.Error("save board", "board", boardID, "error", err)
		return
	}
	h.logger.Info("board saved", "board", boardID, "bytes", len(data))
}

// publish records an edit made by sender and forwards it to the other clients of the room.
func (h *Hub) publish(sender *Client, changeType string, scene []byte) {
	h.mu.Lock()
	room, ok := h.rooms[sender.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}
	room.scene = scene
	room.dirty = true
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range room.clients {
		if c.ClientID != sender.ClientID {
			c.deliver(remoteScene{changeType: changeType, from: sender.ClientID, data: scene})
		}
	}
}

// broadcastToRoom sends msg to every client of a board except excludeClientID. The read lock
// is held while sending so no send channel is closed underneath.
func (h *Hub) broadcastToRoom(boardID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[boardID]
	if !ok {
		return
	}
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}

// Flush saves every room with unsaved edits.
func (h *Hub) Flush() {
	h.mu.Lock()
	pending := make(map[string][]byte)
	for id, room := range h.rooms {
		if room.dirty {
			pending[id] = room.scene
			room.dirty = false
		}
	}
	h.mu.Unlock()

	for id, data := range pending {
		h.saveScene(id, data)
	}
}

// Clients returns how many clients are attached to a board.
func (h *Hub) Clients(boardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[boardID]; ok {
		return len(room.clients)
	}
	return 0
}
