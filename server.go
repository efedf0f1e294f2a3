package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type Server struct {
	cfg   Config
	store *Store
	hub   *Hub

	upgrader websocket.Upgrader
}

func newServer(cfg Config, store *Store) *Server {
	return &Server{
		cfg:   cfg,
		store: store,
		hub:   newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // allow all reqs
			},
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	return mux
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	var name string
	if s.cfg.Secret != "" {
		var err error
		name, err = parseToken(s.cfg.Secret, requestToken(r))
		if err != nil {
			log.Printf("rejecting %s: %v", r.RemoteAddr, err)
			http.Error(w, errUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	sess := newSession(name)
	client := &Client{Session: sess, Connection: conn}
	s.hub.add(client)
	defer s.hub.remove(sess.ID)

	log.Printf("client connected: %s (%s)", sess.ID, sess.Name)

	conn.SetCloseHandler(func(code int, text string) error {
		log.Printf("client sent close frame: %s code=%d text=%q", sess.ID, code, text)
		msg := websocket.FormatCloseMessage(code, "")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		return nil
	})

	if err := client.writeJSON(sess.state()); err != nil {
		log.Printf("write state to %s: %v", sess.ID, err)
		return
	}

	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read from %s: %v", sess.ID, err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(b, &cmd); err != nil {
			s.sendError(client, err)
			continue
		}

		if cmd.Op == "history" {
			s.sendHistory(r.Context(), client, cmd.Limit)
			continue
		}

		reply, err := sess.apply(cmd)
		if err != nil {
			s.sendError(client, err)
			continue
		}

		if err := s.hub.broadcast(reply); err != nil {
			log.Printf("broadcast from %s: %v", sess.ID, err)
			s.sendError(client, errors.New("result cannot be encoded"))
			continue
		}

		s.record(r.Context(), sess.ID, reply)
	}
}

func (s *Server) record(ctx context.Context, sessionID string, reply Reply) {
	snap := Snapshot{
		SessionID: sessionID,
		Op:        reply.Op,
		Vector:    *reply.Vector,
		Magnitude: *reply.Magnitude,
	}
	if _, err := s.store.Record(ctx, snap); err != nil {
		log.Printf("store: %v", err)
	}
}

func (s *Server) sendHistory(ctx context.Context, c *Client, limit int) {
	if limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}

	snaps, err := s.store.History(ctx, c.Session.ID, limit)
	if err != nil {
		log.Printf("store: %v", err)
		s.sendError(c, errors.New("history unavailable"))
		return
	}

	reply := Reply{Type: "history", ID: c.Session.ID, Op: "history", Snapshots: snaps}
	if err := c.writeJSON(reply); err != nil {
		log.Printf("write history to %s: %v", c.Session.ID, err)
	}
}

func (s *Server) sendError(c *Client, cause error) {
	reply := Reply{Type: "error", ID: c.Session.ID, Message: cause.Error()}
	if err := c.writeJSON(reply); err != nil {
		log.Printf("write error to %s: %v", c.Session.ID, err)
	}
}
