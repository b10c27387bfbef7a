package statica

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/indigo-web/statica/config"
	"github.com/indigo-web/statica/internal/pool"
	"github.com/indigo-web/statica/internal/server/http"
	"github.com/indigo-web/statica/internal/static"
	"github.com/indigo-web/statica/transport"
	"github.com/rs/zerolog"
)

// ServerName is sent in the Server header of every response.
const ServerName = "statica"

type State uint32

const (
	Idle State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// App owns the listening socket and the worker pool.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger
	hooks  hooks
	state  atomic.Uint32
	addr   net.Addr
}

// New returns a new App instance. The config isn't validated.
func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
}

// Logger replaces the default no-op logger.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// NotifyOnStart calls the callback as soon as the socket is listening and the workers
// are started.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback after all the workers are done.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the address the socket is bound to. It's safe to be called from the
// start callback and afterward.
func (a *App) Addr() net.Addr {
	return a.addr
}

func (a *App) State() State {
	return State(a.state.Load())
}

func (a *App) setState(state State) {
	a.state.Store(uint32(state))
	a.logger.Debug().Stringer("state", state).Msg("state changed")
}

// Serve runs the accept loop until the context is done. Connections accepted already
// are served to the end before Serve returns. The returned error is nil on a graceful
// shutdown.
func (a *App) Serve(ctx context.Context) error {
	resolver, err := static.New(a.cfg.Server.ContentDir)
	if err != nil {
		return err
	}

	listener := transport.NewTCP(a.cfg.Transport())
	if err = listener.Bind(a.cfg.Addr()); err != nil {
		return err
	}

	if err = listener.Listen(); err != nil {
		_ = listener.Close()
		return err
	}

	a.addr = listener.Addr()
	workers := pool.New(ctx, a.cfg.Server.Workers)
	server := http.NewServer(resolver, a.logger, ServerName)
	// closing the socket is the only way to interrupt a blocking accept
	release := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer release()

	a.setState(Running)
	a.logger.Info().
		Stringer("addr", a.addr).
		Int("workers", a.cfg.Server.Workers).
		Str("root", resolver.Root()).
		Msg("listening")
	callIfNotNil(a.hooks.OnStart)

	err = a.acceptLoop(ctx, listener, workers, server)

	a.setState(Stopping)
	_ = listener.Close()
	workers.Stop()
	a.setState(Stopped)
	a.logger.Info().Msg("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

func (a *App) acceptLoop(
	ctx context.Context, listener transport.Listener, workers *pool.Pool, server *http.Server,
) error {
	for {
		client, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		if ctx.Err() != nil {
			_ = client.Close()
			return nil
		}

		_, err = workers.Enqueue(func() error {
			return server.Serve(client)
		})
		if err != nil {
			_ = client.Close()
			if errors.Is(err, pool.ErrStopped) && ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("dispatch connection: %w", err)
		}
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
