package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

const (
	URI_ARENAS = "/arenas"
	URI_ARENA  = "/arenas/:id"
)

// Router mounts the arena controls. Arenas live until removed or ctx ends.
func (s *GameServer) Router(ctx context.Context) *way.Router {
	r := way.NewRouter()
	r.HandleFunc("POST", URI_ARENAS, s.HandleCreate(ctx))
	r.HandleFunc("GET", URI_ARENA, s.HandleCommand(query))
	r.HandleFunc("DELETE", URI_ARENA, s.HandleRemove())
	r.HandleFunc("POST", URI_ARENA+"/toggle", s.HandleCommand(toggle))
	r.HandleFunc("POST", URI_ARENA+"/reset", s.HandleCommand(reset))
	r.HandleFunc("PUT", URI_ARENA+"/speed/:speed", s.HandleCommand(speed))
	r.HandleFunc("PUT", URI_ARENA+"/preset/:preset", s.HandleCommand(preset))
	r.HandleFunc("POST", URI_ARENA+"/steer/:heading", s.HandleCommand(steer))
	r.HandleFunc("GET", URI_ARENA+"/watch", s.HandleWatch())
	return r
}

type commandFunc func(r *http.Request) (model.ClientMessage, bool)

func query(*http.Request) (model.ClientMessage, bool) {
	return model.ClientMessage{}, true
}

func toggle(*http.Request) (model.ClientMessage, bool) {
	return model.ClientMessage{Toggle: true}, true
}

func reset(*http.Request) (model.ClientMessage, bool) {
	return model.ClientMessage{Reset: true}, true
}

func speed(r *http.Request) (model.ClientMessage, bool) {
	v, err := strconv.Atoi(way.Param(r.Context(), "speed"))
	if err != nil || v == 0 {
		return model.ClientMessage{}, false
	}
	return model.ClientMessage{Speed: v}, true
}

func preset(r *http.Request) (model.ClientMessage, bool) {
	return model.ClientMessage{Preset: way.Param(r.Context(), "preset")}, true
}

func steer(r *http.Request) (model.ClientMessage, bool) {
	return model.ClientMessage{Steer: way.Param(r.Context(), "heading")}, true
}

type arenaResponse struct {
	Setup    model.Setup     `json:"setup"`
	Snapshot *model.Snapshot `json:"snapshot,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (s *GameServer) HandleCreate(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs := s.Create(ctx)
		reply := gs.Submit(model.ClientMessage{}, s.Config.Timeout)
		writeReply(w, reply)
	}
}

func (s *GameServer) HandleCommand(build commandFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, found := s.Get(way.Param(r.Context(), "id"))
		if !found {
			writeJSON(w, GAME_NOT_FOUND.ToHttp(), arenaResponse{Error: GAME_NOT_FOUND.Name()})
			return
		}
		msg, ok := build(r)
		if !ok {
			writeJSON(w, COMMAND_INVALID.ToHttp(), arenaResponse{Error: COMMAND_INVALID.Name()})
			return
		}
		writeReply(w, gs.Submit(msg, s.Config.Timeout))
	}
}

func (s *GameServer) HandleRemove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		if !s.Remove(id) {
			w.WriteHeader(GAME_NOT_FOUND.ToHttp())
			return
		}
		log.WithField("arena", id).Info("arena removed")
		w.WriteHeader(COMMAND_OK.ToHttp())
	}
}

func (s *GameServer) HandleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, found := s.Get(way.Param(r.Context(), "id"))
		if !found {
			w.WriteHeader(GAME_NOT_FOUND.ToHttp())
			return
		}
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the request
			log.Printf("HandleWatch websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		watcher := NewWatcher(gs, con)
		select {
		case gs.Joins <- watcher:
		case <-gs.done:
			return
		case <-time.After(s.Config.Timeout):
			log.Warn("Joins TIMEOUTED")
			return
		}
		go watcher.LoopChannelRead(s.Config.Timeout)
		watcher.LoopChannelWrite()
	}
}

func writeReply(w http.ResponseWriter, reply CommandReply) {
	resp := arenaResponse{Error: reply.Err}
	if reply.Code == COMMAND_OK || reply.Code == COMMAND_REJECTED || reply.Code == COMMAND_INVALID {
		resp.Setup = reply.Setup
		resp.Snapshot = &reply.Snapshot
	}
	if reply.Code != COMMAND_OK && resp.Error == "" {
		resp.Error = reply.Code.Name()
	}
	writeJSON(w, reply.Code.ToHttp(), resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writing response %v", err)
	}
}
