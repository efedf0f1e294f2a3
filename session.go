// session.go

package main

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

var (
	errUnknownOp = errors.New("unknown op")
	errNonFinite = errors.New("result is not finite")
)

// Session is one connected client's working vector plus the last copy it took.
type Session struct {
	ID       string
	Name     string
	Position Vector3
	Saved    Vector3
}

type Command struct {
	Op    string  `json:"op"`
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Z     float32 `json:"z"`
	Limit int     `json:"limit,omitempty"`
}

type Reply struct {
	Type      string     `json:"type"`
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Op        string     `json:"op,omitempty"`
	Vector    *Vector3   `json:"vector,omitempty"`
	Magnitude *float32   `json:"magnitude,omitempty"`
	Text      string     `json:"text,omitempty"`
	Message   string     `json:"message,omitempty"`
	Snapshots []Snapshot `json:"snapshots,omitempty"`
}

func newSession(name string) *Session {
	if name == "" {
		name = "anonymous"
	}

	return &Session{
		ID:       uuid.NewString(),
		Name:     name,
		Position: ZeroVector3(),
		Saved:    ZeroVector3(),
	}
}

// apply runs a vector command. On error the session is left as it was.
func (s *Session) apply(cmd Command) (Reply, error) {
	switch cmd.Op {
	case "zero":
		s.Position = ZeroVector3()

	case "set":
		v := NewVector3(cmd.X, cmd.Y, cmd.Z)
		if !encodable(v) {
			return Reply{}, errNonFinite
		}
		s.Position = v

	case "add":
		v := s.Position.Copy()
		if !encodable(*v.Add(NewVector3(cmd.X, cmd.Y, cmd.Z))) {
			return Reply{}, errNonFinite
		}
		s.Position = v

	case "normalize":
		v, err := s.Position.Normalized()
		if err != nil {
			return Reply{}, err
		}
		s.Position = v

	case "copy":
		s.Saved = s.Position.Copy()
		return s.reply(cmd.Op, s.Saved), nil

	case "magnitude":

	default:
		return Reply{}, fmt.Errorf("%w %q", errUnknownOp, cmd.Op)
	}

	return s.reply(cmd.Op, s.Position), nil
}

// encodable reports whether v and its magnitude survive JSON encoding.
// Finite components can still overflow the float32 magnitude.
func encodable(v Vector3) bool {
	return v.IsFinite() && !math32.IsInf(v.Magnitude(), 0)
}

func (s *Session) reply(op string, v Vector3) Reply {
	mag := v.Magnitude()
	return Reply{
		Type:      "vector",
		ID:        s.ID,
		Name:      s.Name,
		Op:        op,
		Vector:    &v,
		Magnitude: &mag,
		Text:      v.String(),
	}
}

func (s *Session) state() Reply {
	r := s.reply("", s.Position)
	r.Type = "state"
	return r
}
