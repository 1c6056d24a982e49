package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/msweeper/internal/repository"
)

type HighscoresHandler struct {
	log   logrus.FieldLogger
	store repository.ResultStore
}

func NewHighscoresHandler(log logrus.FieldLogger, store repository.ResultStore) *HighscoresHandler {
	return &HighscoresHandler{log: log, store: store}
}

func (h HighscoresHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var dto HighscoresDTO
	if err := decode(&dto, r.URL.Query()); err != nil {
		writeError(w, h.log, err)
		return
	}
	n, err := dto.Limit()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	filter, err := dto.Filter()
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	results, err := h.store.FindBestResults(r.Context(), filter, n)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	sendJSONOrLog(w, h.log, results)
}
