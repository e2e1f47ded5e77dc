// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input feeds pointer events received over WebSocket
// connections into an [xyz.Picker]. Each text message is one
// JSON encoded [events.Pointer], such as
//
//	{"type": "mousedown", "x": 0.5, "y": 0.25}
//
// Events without a time are stamped on arrival.
package input

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"mgrl.dev/core/base/errors"
	"mgrl.dev/core/events"
	"mgrl.dev/core/xyz"
)

// Server is an [http.Handler] that upgrades requests to WebSocket
// connections and sends the pointer events read from them to Picker.
// Any number of connections may be served at once.
type Server struct {

	// Picker receives the events.
	Picker *xyz.Picker

	// Upgrader upgrades the requests.
	Upgrader websocket.Upgrader

	// Now stamps events that have no time. It defaults to [time.Now].
	Now func() time.Time

	received atomic.Int64
	rejected atomic.Int64
}

// NewServer returns a new server for the given picker that accepts
// connections from any origin.
func NewServer(pk *xyz.Picker) *Server {
	s := &Server{Picker: pk}
	s.Upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	return s
}

// Received returns the number of events sent to the picker.
func (s *Server) Received() int64 {
	return s.received.Load()
}

// Rejected returns the number of messages that were not valid events.
func (s *Server) Rejected() int64 {
	return s.rejected.Load()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	defer conn.Close()
	slog.Debug("input.Server: connected", "remote", r.RemoteAddr)

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				errors.Log(err)
			}
			slog.Debug("input.Server: disconnected", "remote", r.RemoteAddr)
			return
		}
		if typ != websocket.TextMessage {
			s.rejected.Add(1)
			continue
		}
		ev, err := s.decode(msg)
		if err != nil {
			slog.Warn("input.Server: invalid event", "remote", r.RemoteAddr, "err", err)
			s.rejected.Add(1)
			continue
		}
		s.Picker.Request(ev)
		s.received.Add(1)
	}
}

func (s *Server) decode(msg []byte) (events.Pointer, error) {
	var ev events.Pointer
	if err := json.Unmarshal(msg, &ev); err != nil {
		return ev, err
	}
	if ev.Type == events.UnknownType {
		return ev, errors.New("input.Server: missing event type")
	}
	if ev.Time.IsZero() {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		ev.Time = now()
	}
	return ev, nil
}

// Client is a WebSocket connection to a [Server].
// You can use [Connect] to create a new Client.
type Client struct {
	conn *websocket.Conn
}

// Connect connects to the [Server] at the given ws:// url.
func Connect(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send sends a pointer event.
func (c *Client) Send(ev events.Pointer) error {
	return c.conn.WriteJSON(ev)
}

// SendRaw sends a text message as is.
func (c *Client) SendRaw(msg []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Close cleanly closes the connection.
func (c *Client) Close() error {
	err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return errors.Join(err, c.conn.Close())
}
