package server

import "net/http"

func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("POST /v1/game", s.handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", s.withSession(s.handleGetGame))
	mux.HandleFunc("POST /v1/game/{id}/reveal", s.withSession(s.handleReveal))
	mux.HandleFunc("POST /v1/game/{id}/flag", s.withSession(s.handleFlag))
	mux.HandleFunc("POST /v1/game/{id}/chord", s.withSession(s.handleChord))
	mux.HandleFunc("POST /v1/game/{id}/forfeit", s.withSession(s.handleForfeit))
	mux.HandleFunc("POST /v1/game/{id}/restart", s.withSession(s.handleRestart))

	mux.HandleFunc("/v1/game/{id}/connect", s.withSession(s.handleConnectWs))

	return useMiddleware(mux,
		loggingMiddleware,
		corsMiddleware(),
	)
}
