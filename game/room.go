package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Event string

const (
	SPlay   Event = "server/play"
	SReset  Event = "server/reset"
	CResult Event = "client/result"
	CFinish Event = "client/finish"

	CData  Event = "client/data"
	CModel Event = "client/model"
	CError Event = "client/error"

	PJoin  Event = "private/join"
	PLeave Event = "private/leave"
	PModel Event = "private/model"
)

type Payload struct {
	Type Event       `json:"event"`
	Data interface{} `json:"data"`
}

func newPayload(event Event, data interface{}) Payload {
	return Payload{
		Type: event,
		Data: data,
	}
}

// Engine scores guesses and reports the model state.
type Engine interface {
	Guess(ctx context.Context, date, w string) (Guess, error)
	IsModelReady() bool
	// ModelDone is closed once the model load resolves.
	ModelDone() <-chan struct{}
}

// ModelStatus is sent to the client when the model load resolves.
type ModelStatus struct {
	Ready bool `json:"ready"`
}

// Room runs the play session of one websocket connection.
// Every event goes through run, so the session needs no locking.
type Room struct {
	// ctx is cancelled when the room closes, sends to events must select on it.
	ctx       context.Context
	cancelCtx func()

	engine  Engine
	session *Session
	player  *PlayerConn
	events  chan Payload
	closed  bool
}

// NewRoom starts a session for date on conn.
func NewRoom(engine Engine, date string, conn *websocket.Conn) *Room {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Room{
		ctx:       ctx,
		cancelCtx: cancel,
		engine:    engine,
		session:   NewSession(date),
		events:    make(chan Payload),
	}
	r.player = newPlayerConn(conn, r)
	go r.run()
	go r.watchModel()
	r.tryBroadcast(newPayload(PJoin, nil))
	return r
}

// Done is closed once the room is closed.
func (r *Room) Done() <-chan struct{} {
	return r.ctx.Done()
}

// join sends the player the state of the session.
func (r *Room) join() {
	err := r.player.write(newPayload(CData, ToSessionResponse(r.session, r.engine.IsModelReady())))
	if err != nil {
		r.close()
	}
}

// play process `SPlay` event and answers with `CResult`, followed by `CFinish` once the word is found.
func (r *Room) play(m Payload) {
	if r.session.Won() {
		r.player.write(newPayload(CError, ErrFinished.Error()))
		return
	}
	text, ok := m.Data.(string)
	if !ok {
		r.player.write(newPayload(CError, "Invalid message"))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		r.player.write(newPayload(CError, "Escribe una palabra"))
		return
	}
	if r.session.Played(text) {
		r.player.write(newPayload(CError, ErrRepeated.Error()))
		return
	}

	g, err := r.engine.Guess(r.ctx, r.session.Date, text)
	if err != nil {
		r.player.write(newPayload(CError, err.Error()))
		return
	}
	if err = r.session.Add(g); err != nil {
		r.player.write(newPayload(CError, err.Error()))
		return
	}

	r.player.write(newPayload(CResult, PlayResponse{
		Result: ToGuess(g),
		Rank:   r.session.Rank(g.ID),
	}))
	if g.Found() {
		r.player.write(newPayload(CFinish, ToSessionResponse(r.session, r.engine.IsModelReady())))
	}
}

// reset starts the day over and sends the player the empty session.
func (r *Room) reset() {
	r.session = NewSession(r.session.Date)
	r.join()
}

func (r *Room) model() {
	r.player.write(newPayload(CModel, ModelStatus{Ready: r.engine.IsModelReady()}))
}

// watchModel notifies the room once the model load resolves.
func (r *Room) watchModel() {
	select {
	case <-r.ctx.Done():
	case <-r.engine.ModelDone():
		r.tryBroadcast(newPayload(PModel, nil))
	}
}

// close closes the player connection and stops the room.
func (r *Room) close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cancelCtx()
	if err := r.player.close(); err != nil {
		log.Debug().Err(err).Msg("failed to close player connection")
	}
}

// run processes all events sent to the room until it is closed.
func (r *Room) run() {
	for {
		select {
		case <-r.ctx.Done():
			return
		case m := <-r.events:
			switch m.Type {
			case PJoin:
				r.join()
			case SPlay:
				r.play(m)
			case SReset:
				r.reset()
			case PModel:
				r.model()
			case PLeave:
				r.close()
			default:
				r.player.write(newPayload(CError, "Unknown message type"))
			}
		}
	}
}

// tryBroadcast delivers the payload to the room unless the room is closed.
func (r *Room) tryBroadcast(payload Payload) {
	select {
	case <-r.ctx.Done():
	case r.events <- payload:
	}
}

var (
	// pongWait is how long we will await a pong response from player
	pongWait = 10 * time.Second

	pingInterval = (pongWait * 9) / 10

	errClosed = errors.New("player connection closed")
)

// PlayerConn is the websocket connection of a room.
type PlayerConn struct {
	conn    *websocket.Conn
	room    *Room
	writeMu sync.Mutex
	active  bool

	t *time.Ticker
}

// newPlayerConn starts the read goroutine forwarding messages to the room
// and the ping goroutine closing dead connections.
func newPlayerConn(conn *websocket.Conn, room *Room) *PlayerConn {
	p := &PlayerConn{
		conn:   conn,
		room:   room,
		active: true,
		t:      time.NewTicker(pingInterval),
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go p.read()
	go p.ping()
	return p
}

func (p *PlayerConn) close() error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if !p.active {
		return nil
	}
	p.active = false
	p.t.Stop()
	return p.conn.Close()
}

// ping pings the player every pingInterval, a failed ping makes the player leave.
func (p *PlayerConn) ping() {
	for {
		select {
		case <-p.room.ctx.Done():
			return
		case <-p.t.C:
		}
		p.writeMu.Lock()
		err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pongWait))
		p.writeMu.Unlock()
		if err != nil {
			p.room.tryBroadcast(newPayload(PLeave, nil))
			return
		}
	}
}

// read forwards the player messages to the room.
func (p *PlayerConn) read() {
	for {
		var payload Payload
		err := p.conn.ReadJSON(&payload)
		if err != nil {
			p.room.tryBroadcast(newPayload(PLeave, nil))
			return
		}
		// only "server/" events may be sent by the player.
		if !strings.HasPrefix(string(payload.Type), "server/") {
			p.write(newPayload(CError, "unsupported action"))
			continue
		}
		p.room.tryBroadcast(payload)
	}
}

// write writes the payload to the player connection in synchronized manner.
func (p *PlayerConn) write(payload Payload) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if !p.active {
		return errClosed
	}
	err := p.conn.WriteJSON(payload)
	if err != nil {
		log.Err(err).Caller().Msgf("Error writing event %s", payload.Type)
	}
	return err
}
