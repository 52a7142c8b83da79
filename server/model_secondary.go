package server

import (
	"fmt"
	"net/http"
)

type ResponseCode int

const (
	COMMAND_OK ResponseCode = iota
	GAME_NOT_FOUND
	COMMAND_INVALID
	COMMAND_REJECTED
	COMMAND_TIMEOUT
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case COMMAND_OK:
		return http.StatusOK
	case GAME_NOT_FOUND:
		return http.StatusNotFound
	case COMMAND_INVALID:
		return http.StatusBadRequest
	case COMMAND_REJECTED:
		return http.StatusConflict
	case COMMAND_TIMEOUT:
		return http.StatusRequestTimeout
	default:
		panic(h)
	}
}

func (h ResponseCode) Name() string {
	switch h {
	case COMMAND_OK:
		return "OK"
	case GAME_NOT_FOUND:
		return "GAME_NOT_FOUND"
	case COMMAND_INVALID:
		return "COMMAND_INVALID"
	case COMMAND_REJECTED:
		return "COMMAND_REJECTED"
	case COMMAND_TIMEOUT:
		return "COMMAND_TIMEOUT"
	default:
		return fmt.Sprintf("n/a:%d", h)
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_IDLE:
		return "GS_IDLE"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_OVER:
		return "GS_OVER"
	case GS_CLOSED:
		return "GS_CLOSED"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}
