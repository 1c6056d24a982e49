package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"

	"github.com/vancomm/msweeper/internal/game"
	"github.com/vancomm/msweeper/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decode(dst any, src map[string][]string) error {
	if err := decoder.Decode(dst, src); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

type NewGameDTO struct {
	Rows   *int   `schema:"rows"`
	Cols   *int   `schema:"cols"`
	Mines  *int   `schema:"mines"`
	Player string `schema:"player"`
}

// Params fills every missing field from defaults.
func (dto NewGameDTO) Params(defaults game.Params) game.Params {
	p := defaults
	if dto.Rows != nil {
		p.Rows = *dto.Rows
	}
	if dto.Cols != nil {
		p.Cols = *dto.Cols
	}
	if dto.Mines != nil {
		p.Mines = *dto.Mines
	}
	return p
}

type Move string

const (
	Open Move = "open"
	Flag Move = "flag"
)

type MoveDTO struct {
	Move Move `schema:"move,required"`
	Row  int  `schema:"row,required"`
	Col  int  `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	if err := decode(&dto, src); err != nil {
		return dto, err
	}
	switch dto.Move {
	case Open, Flag:
		return dto, nil
	default:
		return dto, fmt.Errorf("%w: unknown move %q", ErrBadRequest, dto.Move)
	}
}

const (
	defaultHighscores = 10
	maxHighscores     = 100
)

type HighscoresDTO struct {
	N      *int    `schema:"n"`
	Player *string `schema:"player"`
	Rows   *int    `schema:"rows"`
	Cols   *int    `schema:"cols"`
	Mines  *int    `schema:"mines"`
}

func (dto HighscoresDTO) Limit() (int, error) {
	if dto.N == nil {
		return defaultHighscores, nil
	}
	if *dto.N < 0 || *dto.N > maxHighscores {
		return 0, fmt.Errorf("%w: n must be between 0 and %d", ErrBadRequest, maxHighscores)
	}
	return *dto.N, nil
}

func (dto HighscoresDTO) Filter() (repository.ResultFilter, error) {
	f := repository.ResultFilter{PlayerName: dto.Player}
	switch {
	case dto.Rows == nil && dto.Cols == nil && dto.Mines == nil:
	case dto.Rows != nil && dto.Cols != nil && dto.Mines != nil:
		f.Board = &repository.BoardSize{Rows: *dto.Rows, Cols: *dto.Cols, MineCount: *dto.Mines}
	default:
		return f, fmt.Errorf("%w: rows, cols and mines go together", ErrBadRequest)
	}
	return f, nil
}

func sessionId(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, game.ErrSessionNotFound
	}
	return id, nil
}
