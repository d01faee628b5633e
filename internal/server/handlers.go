package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

type NewGameParams struct {
	Height         int  `schema:"height"`
	Width          int  `schema:"width"`
	MineCount      int  `schema:"mine_count"`
	SafeFirstClick bool `schema:"safe_first_click"`
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type newGameResponse struct {
	Token string `json:"token"`
	GameSessionJSON
}

type moveResponse struct {
	Opened []mines.Point `json:"opened"`
	GameSessionJSON
}

type sessionHandlerFunc func(http.ResponseWriter, *http.Request, *Session)

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, v any) {
	if _, err := sendJSON(w, v); err != nil {
		Log.WithError(err).Error("unable to send response")
	}
}

// sendError answers with the status code matching err and an error body.
func sendError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, config.ErrPolicy),
		errors.Is(err, game.ErrBadArguments),
		errors.Is(err, game.ErrUnknownCommand):
		code = http.StatusBadRequest
	case errors.Is(err, game.ErrNoSession):
		code = http.StatusConflict
	}
	if code == http.StatusInternalServerError {
		Log.WithError(err).Error("request failed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		Log.WithError(err).Error("unable to send error")
	}
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\"ok\""))
}

// withSession resolves the {id} path value to a session and checks the
// request token against it before calling h with the session locked.
func (s *Server) withSession(h sessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionId := r.PathValue("id")
		if err := s.tokens.check(r, sessionId); err != nil {
			Log.WithError(err).WithField("session", sessionId).Debug("rejected token")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		session, ok := s.sessions.get(sessionId)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		session.mu.Lock()
		defer session.mu.Unlock()
		h(w, r, session)
	}
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	params := NewGameParams{
		Height:         s.cfg.Game.Height,
		Width:          s.cfg.Game.Width,
		MineCount:      s.cfg.Game.MineCount,
		SafeFirstClick: s.cfg.Game.SafeFirstClick,
	}
	if err := s.dec.Decode(&params, r.URL.Query()); err != nil {
		sendError(w, errors.Join(game.ErrBadArguments, err))
		return
	}
	if err := s.cfg.Limits.Validate(params.Height, params.Width, params.MineCount); err != nil {
		sendError(w, err)
		return
	}

	c := s.newController(params.SafeFirstClick)
	if err := c.Restart(params.Height, params.Width, params.MineCount); err != nil {
		sendError(w, err)
		return
	}
	session := newSession(c)
	token, err := s.tokens.sign(session.SessionId)
	if err != nil {
		sendError(w, err)
		return
	}
	s.sessions.add(session)

	Log.WithFields(logrus.Fields{
		"session": session.SessionId,
		"params":  c.Params().Seed(),
	}).Debug("created session")

	sendJSONOrLog(w, newGameResponse{token, session.JSON()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, session *Session) {
	sendJSONOrLog(w, session)
}

// handleMove decodes the target cell and applies move to it.
func (s *Server) handleMove(
	w http.ResponseWriter,
	r *http.Request,
	session *Session,
	move func(c *game.Controller, row, col int) ([]mines.Point, error),
) {
	var pos PosParams
	if err := s.dec.Decode(&pos, r.URL.Query()); err != nil {
		sendError(w, errors.Join(game.ErrBadArguments, err))
		return
	}
	opened, err := move(session.game, pos.Row, pos.Col)
	if err != nil {
		sendError(w, err)
		return
	}
	session.settle()
	sendJSONOrLog(w, moveResponse{opened, session.JSON()})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request, session *Session) {
	s.handleMove(w, r, session, func(c *game.Controller, row, col int) ([]mines.Point, error) {
		res, err := c.Reveal(row, col)
		if err != nil {
			return nil, err
		}
		return res.Opened, nil
	})
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request, session *Session) {
	s.handleMove(w, r, session, func(c *game.Controller, row, col int) ([]mines.Point, error) {
		_, err := c.ToggleFlag(row, col)
		return nil, err
	})
}

func (s *Server) handleChord(w http.ResponseWriter, r *http.Request, session *Session) {
	s.handleMove(w, r, session, func(c *game.Controller, row, col int) ([]mines.Point, error) {
		res, err := c.Chord(row, col)
		if err != nil {
			return nil, err
		}
		return res.Opened, nil
	})
}

func (s *Server) handleForfeit(w http.ResponseWriter, r *http.Request, session *Session) {
	res, err := session.game.Forfeit()
	if err != nil {
		sendError(w, err)
		return
	}
	session.settle()
	sendJSONOrLog(w, moveResponse{res.Opened, session.JSON()})
}

// handleRestart starts a new game in the same session, on the current board
// size unless the query names another one.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, session *Session) {
	current := session.game.Params()
	params := NewGameParams{
		Height:    current.Height,
		Width:     current.Width,
		MineCount: current.MineCount,
	}
	if err := s.dec.Decode(&params, r.URL.Query()); err != nil {
		sendError(w, errors.Join(game.ErrBadArguments, err))
		return
	}
	if err := s.cfg.Limits.Validate(params.Height, params.Width, params.MineCount); err != nil {
		sendError(w, err)
		return
	}
	if err := session.game.Restart(params.Height, params.Width, params.MineCount); err != nil {
		sendError(w, err)
		return
	}
	session.restarted()
	sendJSONOrLog(w, session)
}
