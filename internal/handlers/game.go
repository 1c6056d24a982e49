package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/msweeper/internal/config"
	"github.com/vancomm/msweeper/internal/game"
	"github.com/vancomm/msweeper/internal/middleware"
)

type GameHandler struct {
	log     logrus.FieldLogger
	manager *game.Manager
	ws      *config.WebSocket
}

func NewGameHandler(
	log logrus.FieldLogger, manager *game.Manager, ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:     log,
		manager: manager,
		ws:      ws,
	}
}

// player returns the signed-in player's id, or nil for anonymous requests.
func player(r *http.Request) *int64 {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		return nil
	}
	return &claims.PlayerId
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var dto NewGameDTO
	if err := decode(&dto, r.URL.Query()); err != nil {
		writeError(w, g.log, err)
		return
	}

	name, owner := dto.Player, (*int64)(nil)
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		name, owner = claims.Username, &claims.PlayerId
	}

	view, err := g.manager.NewGame(name, owner, dto.Params(g.manager.Defaults()))
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"/"+view.SessionId.String())
	sendJSONOrLog(w, g.log, view)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := sessionId(r)
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	view, err := g.manager.Get(id)
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, view)
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	id, err := sessionId(r)
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		writeError(w, g.log, err)
		return
	}

	var view *game.View
	switch move.Move {
	case Open:
		view, err = g.manager.Reveal(r.Context(), id, player(r), move.Row, move.Col)
	case Flag:
		view, err = g.manager.Flag(r.Context(), id, player(r), move.Row, move.Col)
	}
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, view)
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, err := sessionId(r)
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	view, err := g.manager.Reset(r.Context(), id, player(r))
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, view)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, err := sessionId(r)
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	view, err := g.manager.GiveUp(r.Context(), id, player(r))
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, view)
}
