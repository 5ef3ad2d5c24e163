package ws

import (
	"context"
	"errors"
	"log"

	"github.com/gorilla/websocket"

	"shapenav/internal/engine"
	"shapenav/internal/nav"
)

// Session connects one browser to its own Navigator. Reads happen on the
// HTTP handler goroutine; navigator work and outbound frames happen on the
// loop goroutine.
type Session struct {
	id     string
	conn   *SafeWriter
	nav    *nav.Navigator
	loop   *nav.Loop
	logger *log.Logger

	frameEvery uint64
	cancel     context.CancelFunc
}

func newSession(id string, conn *SafeWriter, opts Options, width, height int) (*Session, error) {
	s := &Session{
		id:         id,
		conn:       conn,
		logger:     opts.Logger,
		frameEvery: uint64(opts.FrameEvery),
	}

	bus := engine.NewBus(opts.Logger)
	n, err := nav.New(opts.Config, opts.Faces,
		nav.WithBus(bus),
		nav.WithLogger(opts.Logger),
		nav.WithViewport(width, height),
		nav.WithRenderer(nav.RendererFunc(s.sendFrame)),
	)
	if err != nil {
		return nil, err
	}
	s.nav = n
	s.loop = nav.NewLoop(n, opts.FPS)

	bus.OnNavigateStart(func(e engine.NavigateStart) {
		s.send(NewNavigateStartMessage(e))
	})
	bus.OnNavigateClose(func(engine.NavigateClose) {
		s.send(NavigateCloseMessage{Type: MessageTypeNavigateClose})
	})
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// run blocks until the client goes away or ctx ends.
func (s *Session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()
	defer s.conn.Close()

	go s.loop.Run(ctx)
	go func() {
		// Unblocks ReadMessage when the server shuts down.
		<-ctx.Done()
		s.conn.Close()
	}()

	err := s.readLoop(ctx)
	cancel()
	<-s.loop.Done()
	return err
}

func (s *Session) readLoop(ctx context.Context) error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		msg, err := DecodeInbound(data)
		if err != nil {
			s.send(NewErrorMessage(err))
			continue
		}

		err = s.loop.Post(ctx, func(n *nav.Navigator) {
			if err := msg.Apply(n); err != nil {
				s.send(NewErrorMessage(err))
			}
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, nav.ErrLoopStopped) {
				return nil
			}
			return err
		}
	}
}

func (s *Session) sendFrame(f nav.Frame) {
	if f.Seq%s.frameEvery != 0 {
		return
	}
	s.send(NewFrameMessage(f))
}

// send writes v and tears the session down on failure.
func (s *Session) send(v any) {
	if err := s.conn.WriteJSON(v); err != nil {
		s.logger.Printf("[ws] %s write failed: %v", s.id, err)
		if s.cancel != nil {
			s.cancel()
		}
		s.conn.Close()
	}
}
