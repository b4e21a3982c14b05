package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Connect upgrades to a WebSocket and runs the text command loop. Every
// message may hold several commands, one per line. Each message is answered
// with a snapshot, or with an error object if a command failed; commands
// after the failing one are skipped.
func (h *MazeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()
	c.SetReadLimit(h.ws.ReadLimit)

	log := h.log.WithField("session_id", s.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		var reply any
		for _, command := range strings.Split(text, "\n") {
			if err := s.Execute(strings.TrimSpace(command), h.limits.MaxSteps); err != nil {
				log.WithFields(logrus.Fields{
					"command": command,
					"error":   err,
				}).Debug("command rejected")
				reply = wrapError(err)
				break
			}
		}
		h.record(r.Context(), s)
		if reply == nil {
			reply = s.Snapshot()
		}

		c.SetWriteDeadline(time.Now().Add(h.ws.WriteTimeout))
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("unable to write")
			break
		}
		log.Debug("\t< <snapshot>")
	}
}
