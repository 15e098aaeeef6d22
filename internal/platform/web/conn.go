package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/celebration/internal/core"
	"github.com/vovakirdan/celebration/internal/minigame"
	"github.com/vovakirdan/celebration/internal/sched"
)

const maxMessageSize = 4096

// connection owns one websocket and the session behind it. The run loop is
// the only goroutine that touches the session or writes to the socket; the
// reader goroutine only decodes commands.
type connection struct {
	conn    *websocket.Conn
	session *minigame.Session
	clock   *sched.Scheduler
	area    *minigame.Area
	config  Config
	logger  *log.Logger
}

func (c *connection) run(ctx context.Context) {
	commands := make(chan core.Command, 16)
	done := make(chan struct{})
	defer close(done)

	go c.readLoop(commands, done)

	frames := time.NewTicker(c.config.Game.FrameInterval())
	defer frames.Stop()

	pingInterval := c.config.PingInterval
	if pingInterval <= 0 {
		pingInterval = 25 * time.Second
	}
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	if err := c.push(); err != nil {
		return
	}
	lastVersion := c.session.Version()

	for {
		select {
		case <-ctx.Done():
			return

		case cmd, ok := <-commands:
			if !ok {
				return
			}
			c.apply(cmd)

		case t := <-frames.C:
			c.clock.AdvanceTo(t)

		case <-pings.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait()))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		if v := c.session.Version(); v != lastVersion {
			if err := c.push(); err != nil {
				return
			}
			lastVersion = v
		}
	}
}

// readLoop decodes client messages until the socket fails. Malformed
// messages are logged and skipped.
func (c *connection) readLoop(commands chan<- core.Command, done <-chan struct{}) {
	defer close(commands)

	pongWait := c.config.PongWait
	if pongWait <= 0 {
		pongWait = 60 * time.Second
	}

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("read failed", "err", err)
			}
			return
		}

		cmd, err := decodeCommand(payload)
		if err != nil {
			c.logger.Warn("discarding malformed message", "err", err)
			continue
		}

		select {
		case commands <- cmd:
		case <-done:
			return
		}
	}
}

func (c *connection) apply(cmd core.Command) {
	switch cmd.Action {
	case core.ActionStart:
		c.session.Start()
	case core.ActionReset:
		c.session.Reset()
	case core.ActionClaim:
		id, err := minigame.ParseEntityID(cmd.Target)
		if err != nil {
			c.logger.Warn("discarding click with bad id", "id", cmd.Target)
			return
		}
		c.session.Click(id)
	case core.ActionResize:
		if c.area != nil {
			c.area.Resize(cmd.Width, cmd.Height)
		}
	}
}

func (c *connection) writeWait() time.Duration {
	if c.config.WriteWait <= 0 {
		return 10 * time.Second
	}
	return c.config.WriteWait
}

func (c *connection) push() error {
	data, err := json.Marshal(newSnapshotMessage(c.session.Snapshot()))
	if err != nil {
		c.logger.Error("cannot encode snapshot", "err", err)
		return err
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait()))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.logger.Debug("write failed", "err", err)
		return err
	}
	return nil
}
