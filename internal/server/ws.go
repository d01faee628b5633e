package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/game"
)

type commandError struct {
	Error string `json:"error"`
	Line  int    `json:"line"`
}

// handleConnectWs streams commands for a session. Every text message holds
// newline-separated commands; the session is written back after each one.
// The session lock is released while waiting for the next message.
func (s *Server) handleConnectWs(w http.ResponseWriter, r *http.Request, session *Session) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	log := Log.WithField("session", session.SessionId)
	session.mu.Unlock()
	defer session.mu.Lock()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		log.Debug("> ", string(message))

		if err := s.runCommands(c, session, string(message)); err != nil {
			log.Error("write: ", err)
			break
		}
	}
}

func (s *Server) runCommands(c *websocket.Conn, session *Session, text string) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	round := session.game.Round()
	line, err := game.ExecuteAll(session.game, text)
	if session.game.Round() != round {
		session.restarted()
	}
	session.settle()
	if err != nil {
		Log.WithFields(logrus.Fields{
			"session": session.SessionId,
			"line":    line,
		}).Debug("command: ", err)
		return c.WriteJSON(commandError{err.Error(), line})
	}
	return c.WriteJSON(session)
}
