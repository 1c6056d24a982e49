package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/msweeper/internal/game"
	"github.com/vancomm/msweeper/internal/mines"
	"github.com/vancomm/msweeper/internal/repository"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	if _, err := SendJSON(w, v); err != nil {
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func sendMessageOrLog(w http.ResponseWriter, log logrus.FieldLogger, m string) {
	sendJSONOrLog(w, log, map[string]string{"message": m})
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, mines.ErrInvalidArgument),
		errors.Is(err, game.ErrInvalidParams),
		errors.Is(err, game.ErrBadCommand),
		errors.Is(err, game.ErrUnknownCommand):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, repository.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Unexpected errors are logged and
// their text is not sent to the client.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		log.WithError(err).Error("unable to handle request")
		err = errors.New(http.StatusText(code))
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, sendErr := w.Write(mustMarshal(wrapError(err))); sendErr != nil {
		log.WithError(sendErr).Debug("unable to send error")
	}
}

func mustMarshal(v map[string]string) []byte {
	b, _ := json.Marshal(v)
	return b
}
