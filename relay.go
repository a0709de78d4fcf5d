/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/lingokub/games/lingo"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	qrSize     = 320
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live WebSocket connection. send carries pre-serialized
// frames and is only ever closed by the hub.
type Client struct {
	id       lingo.ConnID
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	profile  lingo.Profile
	addr     string
}

type actionRequest struct {
	client *Client
	action lingo.Action
}

// Hub owns the game session. Every join, leave and action is applied on the
// goroutine running run, one at a time, and its deliveries are queued before
// the next event is read.
type Hub struct {
	session *lingo.Session
	clients map[lingo.ConnID]*Client

	register chan *Client
	unreg    chan *Client
	actions  chan actionRequest
	done     chan struct{}
}

func newHub(session *lingo.Session) *Hub {
	return &Hub{
		session:  session,
		clients:  make(map[lingo.ConnID]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		actions:  make(chan actionRequest),
		done:     make(chan struct{}),
	}
}

func (h *Hub) run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				h.closeClient(c)
			}

			return nil

		case c := <-h.register:
			h.clients[c.id] = c

			out, err := h.session.Join(c.id, c.playerID, c.profile)
			h.dispatch(out)

			if err != nil {
				h.closeClient(c)
			}

		case c := <-h.unreg:
			if _, ok := h.clients[c.id]; ok {
				h.closeClient(c)
			}

			h.dispatch(h.session.Leave(c.id))

		case req := <-h.actions:
			if _, ok := h.clients[req.client.id]; !ok {
				continue
			}

			log.Debug().
				Str("conn", string(req.client.id)).
				Str("player", req.client.playerID).
				Str("action", fmt.Sprintf("%T", req.action)).
				Msg("action")

			h.dispatch(h.session.Handle(req.client.id, req.action))
		}
	}
}

func (h *Hub) dispatch(out []lingo.Delivery) {
	for _, d := range out {
		frame, err := json.Marshal(d.Envelope)
		if err != nil {
			log.Error().Err(err).Str("type", d.Envelope.Type).Msg("encode message")

			continue
		}

		switch d.Audience {
		case lingo.ToOne:
			if c, ok := h.clients[d.Conn]; ok {
				h.deliver(c, frame)
			}
		case lingo.ToOthers:
			for id, c := range h.clients {
				if id != d.Conn {
					h.deliver(c, frame)
				}
			}
		default:
			for _, c := range h.clients {
				h.deliver(c, frame)
			}
		}
	}
}

// deliver never blocks the hub. A client that cannot keep up is dropped;
// its read pump then reports it and the session sees one Leave.
func (h *Hub) deliver(c *Client, frame []byte) {
	select {
	case c.send <- frame:
	default:
		log.Warn().
			Str("conn", string(c.id)).
			Str("player", c.playerID).
			Msg("send queue full, dropping connection")

		h.closeClient(c)
		_ = c.conn.Close()
	}
}

func (h *Hub) closeClient(c *Client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}

	delete(h.clients, c.id)
	close(c.send)
}

func serveWS(cfg *Config, h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := r.URL.Query()

		playerID := strings.TrimSpace(q.Get("playerId"))
		if playerID == "" {
			log.Warn().Str("addr", realIP(r)).Msg("refused connection without player id")
			refuse(w)

			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Str("addr", realIP(r)).Msg("upgrade failed")

			return
		}

		c := &Client{
			id:       lingo.ConnID(uuid.NewString()),
			conn:     conn,
			send:     make(chan []byte, cfg.queueSize()),
			playerID: playerID,
			profile: lingo.Profile{
				Username:  strings.TrimSpace(q.Get("username")),
				AvatarURL: strings.TrimSpace(q.Get("avatarUrl")),
			},
			addr: realIP(r),
		}

		log.Debug().
			Str("conn", string(c.id)).
			Str("player", c.playerID).
			Str("addr", c.addr).
			Msg("connection opened")

		go c.writePump()

		select {
		case h.register <- c:
		case <-h.done:
			_ = conn.Close()

			return
		}

		c.readPump(h)
	}
}

// refuse drops the underlying connection without writing a response.
func refuse(w http.ResponseWriter) {
	conn, _, err := http.NewResponseController(w).Hijack()
	if err != nil {
		http.Error(w, "missing playerId", http.StatusBadRequest)

		return
	}

	_ = conn.Close()
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()

		log.Debug().Str("conn", string(c.id)).Str("player", c.playerID).Msg("connection closed")
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Debug().Err(err).Str("conn", string(c.id)).Msg("read failed")
			}

			return
		}

		action, err := lingo.DecodeAction(data)
		if err != nil {
			log.Warn().
				Err(err).
				Str("conn", string(c.id)).
				Str("player", c.playerID).
				Msg("ignoring message")

			continue
		}

		select {
		case h.actions <- actionRequest{client: c, action: action}:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					log.Debug().Err(err).Str("conn", string(c.id)).Msg("write failed")
				}

				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// serveQR renders a PNG QR code pointing at the game's home page.
func serveQR(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		scheme := cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + "/"

		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("qr generation failed")
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			log.Debug().Err(err).Msg("write qr")
		}
	}
}
