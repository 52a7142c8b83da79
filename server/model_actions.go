package server

import (
	"context"
	"encoding/gob"
	"strings"
	"time"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

func NewGameServer(cfg Config) *GameServer {
	return &GameServer{
		Config:       cfg,
		Upgrader:     &websocket.Upgrader{},
		GameSessions: make(map[string]*GameSession),
	}
}

// Create starts a new arena loop that lives until ctx ends or the arena is
// removed.
func (s *GameServer) Create(ctx context.Context) *GameSession {
	ctx, cancel := context.WithCancel(ctx)
	settings := s.Config.Settings
	gs := &GameSession{
		Id:       uuid.NewString(),
		Driver:   model.NewDriver(settings.Preset, settings.Speed, model.LogCues{}),
		Commands: make(chan Command),
		Joins:    make(chan *Watcher),
		Leaves:   make(chan *Watcher),
		watchers: make(map[*Watcher]struct{}),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.mu.Lock()
	s.GameSessions[gs.Id] = gs
	s.mu.Unlock()

	log.WithField("arena", gs.Id).Info("create GameSession")
	go gs.Loop(ctx, s.Config.FrameInterval())
	return gs
}

func (s *GameServer) Get(id string) (*GameSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gs, found := s.GameSessions[id]
	return gs, found
}

// Remove stops the arena loop and waits for it to exit.
func (s *GameServer) Remove(id string) bool {
	s.mu.Lock()
	gs, found := s.GameSessions[id]
	delete(s.GameSessions, id)
	s.mu.Unlock()
	if !found {
		return false
	}
	gs.cancel()
	<-gs.done
	return true
}

func (s *GameServer) Close() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.GameSessions))
	for id := range s.GameSessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		s.Remove(id)
	}
}

// Submit hands a command to the arena loop and waits for its reply.
func (gs *GameSession) Submit(msg model.ClientMessage, timeout time.Duration) CommandReply {
	reply := make(chan CommandReply, 1)
	select {
	case gs.Commands <- Command{Message: msg, Reply: reply}:
	case <-gs.done:
		return CommandReply{Code: GAME_NOT_FOUND}
	case <-time.After(timeout):
		log.WithField("arena", gs.Id).Warn("Commands TIMEOUTED")
		return CommandReply{Code: COMMAND_TIMEOUT}
	}
	select {
	case r := <-reply:
		return r
	case <-gs.done:
		return CommandReply{Code: GAME_NOT_FOUND}
	}
}

func (gs *GameSession) Loop(ctx context.Context, frame time.Duration) {
	logger := log.WithField("arena", gs.Id)
	logger.Info("GameSession.Loop start")
	ticker := time.NewTicker(frame)
	defer func() {
		ticker.Stop()
		for w := range gs.watchers {
			w.Close()
		}
		close(gs.done)
		logger.Infof("GameSession.Loop ended %s", gs.State().Name())
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			gs.Driver.Frame(now, gs)
		case cmd := <-gs.Commands:
			cmd.Reply <- gs.apply(cmd.Message)
			gs.Render(gs.Driver.Match)
		case w := <-gs.Joins:
			gs.watchers[w] = struct{}{}
			logger.Infof("watcher joined, %d watching", len(gs.watchers))
			w.send(model.ServerMessage{
				Setup:    []model.Setup{gs.setup()},
				Snapshot: []model.Snapshot{model.NewSnapshot(gs.Driver)},
			})
		case w := <-gs.Leaves:
			if _, found := gs.watchers[w]; found {
				delete(gs.watchers, w)
				w.Close()
				logger.Infof("watcher left, %d watching", len(gs.watchers))
			}
		}
	}
}

func (gs *GameSession) State() GameSessionState {
	select {
	case <-gs.done:
		return GS_CLOSED
	default:
	}
	m := gs.Driver.Match
	switch {
	case m.Over():
		return GS_OVER
	case m.Running:
		return GS_PLAY
	default:
		return GS_IDLE
	}
}

func (gs *GameSession) setup() model.Setup {
	return model.NewSetup(gs.Id, gs.Driver.Match.Preset)
}

func (gs *GameSession) apply(msg model.ClientMessage) CommandReply {
	d := gs.Driver
	code := COMMAND_OK
	var reason string
	switch {
	case msg.Steer != "":
		h, ok := model.ParseHeading(strings.ToLower(msg.Steer))
		switch {
		case !ok:
			code, reason = COMMAND_INVALID, "unknown heading "+msg.Steer
		case !d.Steer(h):
			code, reason = COMMAND_REJECTED, "cannot reverse"
		}
	case msg.Toggle:
		if !d.Toggle() {
			code, reason = COMMAND_REJECTED, "match is over"
		}
	case msg.Reset:
		d.Reset()
		gs.resets++
	case msg.Preset != "":
		p, ok := model.ParsePreset(strings.ToLower(msg.Preset))
		if !ok {
			code, reason = COMMAND_INVALID, "unknown preset "+msg.Preset
			break
		}
		d.SetPreset(p)
		gs.resets++
	case msg.Speed != 0:
		if msg.Speed < model.MinSpeed || msg.Speed > model.MaxSpeed {
			code, reason = COMMAND_INVALID, "speed out of range"
			break
		}
		d.SetSpeed(msg.Speed)
	}
	if code != COMMAND_OK {
		log.WithFields(log.Fields{"arena": gs.Id, "code": code.Name()}).Debug(reason)
	}
	return CommandReply{
		Code:     code,
		Err:      reason,
		Setup:    gs.setup(),
		Snapshot: model.NewSnapshot(d),
	}
}

// Render sends a snapshot to every watcher when the arena changed since the
// last one.
func (gs *GameSession) Render(m *model.Match) {
	st := stamp{
		steps:   m.Steps,
		running: m.Running,
		outcome: m.Outcome,
		speed:   gs.Driver.Speed,
		resets:  gs.resets,
	}
	if st == gs.stamp {
		return
	}
	setupChanged := st.resets != gs.stamp.resets
	gs.stamp = st
	if len(gs.watchers) == 0 {
		return
	}
	msg := model.ServerMessage{Snapshot: []model.Snapshot{model.NewSnapshot(gs.Driver)}}
	if setupChanged {
		msg.Setup = []model.Setup{gs.setup()}
	}
	for w := range gs.watchers {
		w.send(msg)
	}
}

func NewWatcher(gs *GameSession, conn *websocket.Conn) *Watcher {
	return &Watcher{
		Session:        gs,
		Conn:           conn,
		Done:           make(chan struct{}),
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
}

func (w *Watcher) send(msg model.ServerMessage) {
	select {
	case w.MessagesToSend <- msg:
	default:
		log.WithField("arena", w.Session.Id).Warn("Dropping snapshot, watcher MessagesToSend FULL")
	}
}

func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.Done)
	})
}

func (w *Watcher) leave() {
	select {
	case w.Session.Leaves <- w:
	case <-w.Session.done:
		w.Close()
	}
}

// LoopChannelRead turns incoming frames into arena commands.
func (w *Watcher) LoopChannelRead(timeout time.Duration) {
	logger := log.WithField("arena", w.Session.Id)
	defer w.leave()
	for {
		_, r, err := w.Conn.NextReader()
		if err != nil {
			logger.Debugf("LoopChannelRead ended %v", err)
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			logger.Warnf("LoopChannelRead cant decode %v", err)
			return
		}
		reply := w.Session.Submit(cm, timeout)
		if reply.Code != COMMAND_OK {
			logger.Infof("watcher command %s: %s", reply.Code.Name(), reply.Err)
		}
		if reply.Code == GAME_NOT_FOUND {
			return
		}
	}
}

// LoopChannelWrite only consumes, a full buffer never blocks the arena.
func (w *Watcher) LoopChannelWrite() {
	logger := log.WithField("arena", w.Session.Id)
	defer w.leave()
	for {
		select {
		case <-w.Done:
			_ = w.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case mes := <-w.MessagesToSend:
			wr, err := w.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				logger.Warnf("LoopChannelWrite cant get writer %v", err)
				return
			}
			if err := gob.NewEncoder(wr).Encode(mes); err != nil {
				logger.Warnf("LoopChannelWrite cant encode %v", err)
				return
			}
			if err := wr.Close(); err != nil {
				logger.Warnf("LoopChannelWrite cant flush %v", err)
				return
			}
		}
	}
}
