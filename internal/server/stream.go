package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/sim"
)

// Command is a client message on a session stream.
type Command struct {
	Type  string  `json:"type"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
	DX    float64 `json:"dx,omitempty"`
	DY    float64 `json:"dy,omitempty"`
	Index int     `json:"index,omitempty"`
	On    bool    `json:"on,omitempty"`
}

// Frame is a server message: a snapshot, or the error a command produced.
type Frame struct {
	Type     string        `json:"type"`
	Snapshot *sim.Snapshot `json:"snapshot,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Apply runs one client command against a session.
func Apply(s *sim.Session, cmd Command) error {
	var err error
	switch cmd.Type {
	case "param":
		_, err = s.SetParam(cmd.Name, cmd.Value)
	case "drag":
		err = s.Drag(cmd.DX, cmd.DY)
	case "dragging":
		err = s.SetDragging(cmd.On)
	case "next":
		_, err = s.NextStep()
	case "prev":
		_, err = s.PrevStep()
	case "goto":
		_, err = s.GoToStep(cmd.Index)
	case "autoplay":
		_, err = s.ToggleAutoplay()
	case "start":
		err = s.Start()
	case "stop":
		s.Stop()
	case "reset":
		s.Reset()
	default:
		err = fmt.Errorf("unknown command %q", cmd.Type)
	}
	return err
}

// handleStream pushes a snapshot every session interval and applies
// commands read from the client. Closing the stream leaves the session
// running for other viewers.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	session, err := s.manager.Open(topic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "websocket upgrade failed", logging.String("topic", topic), logging.Err(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	log := s.logger.With(logging.String("topic", topic))
	log.Info(ctx, "stream opened")

	replies := make(chan Frame, 8)
	go func() {
		defer cancel()
		for {
			var cmd Command
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			if err := Apply(session, cmd); err != nil {
				select {
				case replies <- Frame{Type: "error", Error: err.Error()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	period := session.Interval()
	if period < minStreamPeriod {
		period = minStreamPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	send := func(f Frame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(f)
	}

	snap := session.Snapshot()
	if err := send(Frame{Type: "snapshot", Snapshot: &snap}); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			log.Info(context.Background(), "stream closed")
			return
		case f := <-replies:
			if err := send(f); err != nil {
				return
			}
		case <-ticker.C:
			snap := session.Snapshot()
			if err := send(Frame{Type: "snapshot", Snapshot: &snap}); err != nil {
				log.Warn(ctx, "stream write failed", logging.Err(err))
				return
			}
		}
	}
}

