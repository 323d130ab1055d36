package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/board/internal/board"
	"github.com/inamate/board/internal/editor"
	"github.com/inamate/board/internal/render"
	"github.com/inamate/board/internal/selector"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1024 * 1024
)

type ClientOptions struct {
	ControllerSize float64
	MinResizeSize  float64
}

// remoteScene is a scene published by another client of the room, or the initial scene when
// changeType is empty.
type remoteScene struct {
	changeType string
	from       string
	data       []byte
}

// Client is one websocket connection with its own editor. ReadPump decodes messages, Run
// applies them to the editor one at a time, and WritePump drains send.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	inbound chan *Message
	remote  chan remoteScene
	editor  *editor.Editor
	frames  frameScheduler
	logger  *slog.Logger

	BoardID  string
	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, boardID, clientID string, opts ClientOptions) *Client {
	logger := slog.Default()
	if hub != nil {
		logger = hub.logger
	}
	c := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		inbound:  make(chan *Message, 64),
		remote:   make(chan remoteScene, 1),
		logger:   logger.With("board", boardID, "client", clientID),
		BoardID:  boardID,
		ClientID: clientID,
	}
	c.editor = editor.New(editor.Options{
		ControllerSize: opts.ControllerSize,
		MinResizeSize:  opts.MinResizeSize,
		RequestFrame:   c.frames.request,
		OnFrame:        c.sendFrame,
		Logger:         c.logger,
	})
	c.subscribe()
	return c
}

func (c *Client) subscribe() {
	events := c.editor.Events()
	board.On(events, func(e board.ChangeEvent) {
		if e.Type == board.ChangeSetData {
			return
		}
		if c.hub != nil {
			c.hub.publish(c, string(e.Type), []byte(c.editor.SceneJSON()))
		}
	})
	board.On(events, func(e selector.SelectEvent) {
		c.sendPayload(TypeSelect, SelectPayload{UUIDs: e.UUIDs})
	})
	board.On(events, func(e board.CursorEvent) {
		c.sendPayload(TypeCursor, CursorPayload{Cursor: e.Type, ElementID: e.ElementID})
	})
	board.On(events, func(e selector.TextEditEvent) {
		queue := make([]string, 0, len(e.GroupQueue))
		for _, g := range e.GroupQueue {
			queue = append(queue, g.UUID)
		}
		c.sendPayload(TypeTextEdit, TextEditPayload{
			UUID:          e.Element.UUID,
			Position:      e.Position,
			GroupQueue:    queue,
			ViewScaleInfo: e.ViewScaleInfo,
		})
	})
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		close(c.inbound)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			c.logger.Debug("read error", "error", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("invalid message", "error", err)
			c.sendError(err)
			continue
		}
		msg.BoardID = c.BoardID
		msg.ClientID = c.ClientID

		select {
		case c.inbound <- &msg:
		case <-ctx.Done():
			return
		}
	}
}

// Run applies inbound messages and remote scenes to the editor until the read pump stops.
// Frames requested while handling one message are painted once it is done.
func (c *Client) Run(ctx context.Context) {
	for {
		select {
		case msg, ok := <-c.inbound:
			if !ok {
				return
			}
			if err := c.handle(msg); err != nil {
				c.logger.Debug("message rejected", "type", msg.Type, "error", err)
				c.sendError(err)
			}
		case r := <-c.remote:
			c.applyRemote(r)
		case <-ctx.Done():
			return
		}
		c.frames.flush()
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("client send buffer full, dropping message", "type", msg.Type)
	}
}

func (c *Client) sendPayload(msgType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("marshal payload", "type", msgType, "error", err)
		return
	}
	c.Send(&Message{Type: msgType, BoardID: c.BoardID, ClientID: c.ClientID, Payload: data})
}

func (c *Client) sendError(err error) {
	c.sendPayload(TypeError, ErrorPayload{Message: err.Error()})
}

func (c *Client) sendFrame(frame render.Frame) {
	c.sendPayload(TypeFrame, frame)
}

// deliver hands a remote scene to Run. Only the newest undelivered scene is kept.
func (c *Client) deliver(r remoteScene) {
	for {
		select {
		case c.remote <- r:
			return
		default:
		}
		select {
		case stale := <-c.remote:
			if r.changeType == "" {
				r.changeType = stale.changeType
			}
		default:
		}
	}
}

// applyRemote loads a scene published elsewhere, keeping whatever selection still exists.
func (c *Client) applyRemote(r remoteScene) {
	selected := c.editor.Selection()
	if err := c.editor.LoadScene(r.data); err != nil {
		c.logger.Error("apply remote scene", "error", err)
		return
	}
	if len(selected) > 0 {
		c.editor.Select(selected)
	}
	if r.changeType != "" {
		c.sendPayload(TypeChange, ChangePayload{Type: r.changeType, ClientID: r.from, Scene: r.data})
	}
}

// frameScheduler defers paint callbacks until the current message has been handled, so a
// burst of redraw requests produces one frame. It is only touched by Run.
type frameScheduler struct {
	pending []func()
}

func (f *frameScheduler) request(fn func()) {
	f.pending = append(f.pending, fn)
}

func (f *frameScheduler) flush() {
	for len(f.pending) > 0 {
		fns := f.pending
		f.pending = nil
		for _, fn := range fns {
			fn()
		}
	}
}
