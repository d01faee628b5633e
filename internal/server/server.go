package server

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

var Log = logrus.New()

const (
	shutdownTimeout = 30 * time.Second
	pruneInterval   = time.Minute
)

// Server exposes game sessions over HTTP and WebSocket. Sessions live in
// memory only and are dropped once no token can reach them anymore.
type Server struct {
	cfg      *config.Config
	sessions *registry
	tokens   *tokens
	dec      *schema.Decoder
	upgrader websocket.Upgrader
	handler  http.Handler

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// New builds a server from cfg. A nil r is replaced by [mines.NewRand].
func New(cfg *config.Config, r *rand.Rand) *Server {
	if r == nil {
		r = mines.NewRand()
	}

	secret := cfg.Token.Secret
	if secret == "" {
		secret = uuid.NewString()
		Log.Warn("no token secret configured, tokens will not survive a restart")
	}

	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	s := &Server{
		cfg:      cfg,
		sessions: newRegistry(),
		tokens:   newTokens([]byte(secret), cfg.Token.Lifetime.Duration),
		dec:      dec,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				Log.Debug("ws origin: ", r.Header.Get("Origin"))
				return true
			},
		},
		rnd: r,
	}
	s.handler = s.buildHandler()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// newController hands every session its own generator so sessions never
// share a [rand.Rand].
func (s *Server) newController(safeFirstClick bool) *game.Controller {
	s.rndMu.Lock()
	r := rand.New(rand.NewPCG(s.rnd.Uint64(), s.rnd.Uint64()))
	s.rndMu.Unlock()
	return game.NewController(r, game.WithSafeFirstClick(safeFirstClick))
}

// Run serves on the configured address until ctx is done, then shuts the
// listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	Log.Infof("ready to serve @ %s", s.cfg.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case now := <-ticker.C:
				if n := s.sessions.prune(now.Add(-s.tokens.lifetime)); n > 0 {
					Log.WithField("count", n).Debug("pruned sessions")
				}
			}
		}
	})
	return g.Wait()
}
