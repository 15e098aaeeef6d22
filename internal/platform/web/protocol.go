package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/minigame"
)

// clientMessage is a command sent by the page.
type clientMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	W    int    `json:"w,omitempty"`
	H    int    `json:"h,omitempty"`
}

type entityDTO struct {
	ID          string `json:"id"`
	Seq         uint64 `json:"seq"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	W           int    `json:"w"`
	H           int    `json:"h"`
	Color       string `json:"color"`
	ExpiresInMS int64  `json:"expiresInMs"`
}

// snapshotMessage is pushed to the page whenever the session changes.
type snapshotMessage struct {
	Type     string      `json:"type"`
	Session  string      `json:"session"`
	State    string      `json:"state"`
	Disabled bool        `json:"disabled"`
	Score    int         `json:"score"`
	Message  string      `json:"message"`
	Popped   int         `json:"popped"`
	Missed   int         `json:"missed"`
	Entities []entityDTO `json:"entities"`
	Version  uint64      `json:"version"`
}

var errMalformed = errors.New("web: malformed message")

func newSnapshotMessage(snap minigame.Snapshot) snapshotMessage {
	entities := make([]entityDTO, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		entities = append(entities, entityDTO{
			ID:          e.ID.String(),
			Seq:         e.Seq,
			X:           e.X,
			Y:           e.Y,
			W:           e.W,
			H:           e.H,
			Color:       core.BalloonColor(e.Seq).String(),
			ExpiresInMS: e.ExpiresIn.Milliseconds(),
		})
	}

	return snapshotMessage{
		Type:     "snapshot",
		Session:  snap.SessionID,
		State:    snap.State.String(),
		Disabled: snap.Disabled,
		Score:    snap.Score,
		Message:  snap.Message,
		Popped:   snap.Popped,
		Missed:   snap.Missed,
		Entities: entities,
		Version:  snap.Version,
	}
}

// decodeCommand parses and validates one client message.
func decodeCommand(payload []byte) (core.Command, error) {
	var msg clientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return core.Command{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	cmd := core.Command{Action: core.ParseAction(msg.Type)}
	switch cmd.Action {
	case core.ActionStart, core.ActionReset:
	case core.ActionClaim:
		if msg.ID == "" {
			return core.Command{}, fmt.Errorf("%w: click without id", errMalformed)
		}
		cmd.Target = msg.ID
	case core.ActionResize:
		if msg.W <= 0 || msg.H <= 0 {
			return core.Command{}, fmt.Errorf("%w: resize to %dx%d", errMalformed, msg.W, msg.H)
		}
		cmd.Width, cmd.Height = msg.W, msg.H
	default:
		return core.Command{}, fmt.Errorf("%w: unknown type %q", errMalformed, msg.Type)
	}
	return cmd, nil
}
