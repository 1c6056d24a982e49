package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// maxMessageSize bounds one batch of commands.
const maxMessageSize = 4096

// ConnectWS runs the text command loop for one session. Every message may
// carry several newline-separated commands; the reply is the view after the
// last one, or an error object for the first command that failed.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, err := sessionId(r)
	if err != nil {
		writeError(w, g.log, err)
		return
	}
	if _, err := g.manager.Get(id); err != nil {
		writeError(w, g.log, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer c.Close()
	c.SetReadLimit(maxMessageSize)

	log := g.log.WithField("session_id", id)
	log.Debug("websocket connected")
	playerId := player(r)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseUnsupportedData, "text messages only",
			))
			return
		}

		var reply any
		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			view, err := g.manager.Execute(r.Context(), id, playerId, line)
			if err != nil {
				reply = g.wsError(log, err)
				break
			}
			reply = view
		}

		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}

func (g GameHandler) wsError(log logrus.FieldLogger, err error) map[string]string {
	if statusCode(err) == http.StatusInternalServerError {
		log.WithError(err).Error("unable to execute command")
		return wrapError(errors.New(http.StatusText(http.StatusInternalServerError)))
	}
	return wrapError(err)
}
