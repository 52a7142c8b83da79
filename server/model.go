package server

import (
	"context"
	"sync"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/gorilla/websocket"
)

type GameServer struct {
	Config   Config
	Upgrader *websocket.Upgrader

	mu           sync.RWMutex
	GameSessions map[string]*GameSession
}

type GameSessionState int

const (
	GS_IDLE GameSessionState = iota
	GS_PLAY
	GS_OVER
	GS_CLOSED
)

// GameSession hosts one arena. Only Loop touches Driver and watchers.
type GameSession struct {
	Id     string
	Driver *model.Driver

	Commands chan Command
	Joins    chan *Watcher
	Leaves   chan *Watcher

	watchers map[*Watcher]struct{}
	stamp    stamp
	resets   int

	cancel context.CancelFunc
	done   chan struct{}
}

type Command struct {
	Message model.ClientMessage
	Reply   chan CommandReply
}

type CommandReply struct {
	Code     ResponseCode
	Err      string
	Setup    model.Setup
	Snapshot model.Snapshot
}

type Watcher struct {
	Session *GameSession
	Conn    *websocket.Conn
	Done    chan struct{}

	MessagesToSend chan model.ServerMessage

	closeOnce sync.Once
}

// stamp identifies what watchers last saw.
type stamp struct {
	steps   int
	running bool
	outcome model.Outcome
	speed   int
	resets  int
}
