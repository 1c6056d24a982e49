package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/msweeper/internal/config"
	"github.com/vancomm/msweeper/internal/middleware"
	"github.com/vancomm/msweeper/internal/repository"
)

var (
	ErrBadAuthBody        = fmt.Errorf("%w: request body must contain url-encoded username and password", ErrBadRequest)
	ErrBadPasswordTooLong = fmt.Errorf("%w: password too long", ErrBadRequest)
)

type Auth struct {
	log     logrus.FieldLogger
	players repository.PlayerStore
	cookies *config.Cookies
	jwt     *config.JWT
	cost    int
}

func NewAuth(
	log logrus.FieldLogger,
	players repository.PlayerStore,
	cookies *config.Cookies,
	jwt *config.JWT,
) *Auth {
	return &Auth{
		log:     log,
		players: players,
		cookies: cookies,
		jwt:     jwt,
		cost:    bcrypt.DefaultCost,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func parseCredentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	username = r.PostFormValue("username")
	password = r.PostFormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadAuthBody
	}
	if len(password) > 72 {
		return "", "", ErrBadPasswordTooLong
	}
	return username, password, nil
}

func (a Auth) signIn(w http.ResponseWriter, player *repository.Player) {
	token, err := a.jwt.SignPlayer(player.PlayerId, player.Username)
	if err != nil {
		writeError(w, a.log, fmt.Errorf("unable to create a jwt token: %w", err))
		return
	}
	if err := a.cookies.Refresh(w, token); err != nil {
		writeError(w, a.log, err)
		return
	}
	sendJSONOrLog(w, a.log, PlayerInfo{player.PlayerId, player.Username})
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		writeError(w, a.log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		writeError(w, a.log, fmt.Errorf("unable to hash password: %w", err))
		return
	}

	player, err := a.players.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		writeError(w, a.log, err)
		return
	}
	a.log.WithField("username", username).Info("player registered")
	a.signIn(w, player)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		writeError(w, a.log, err)
		return
	}

	player, err := a.players.FetchPlayer(r.Context(), username)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, a.log, ErrInvalidCredentials)
		return
	}
	if err != nil {
		writeError(w, a.log, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)); err != nil {
		writeError(w, a.log, ErrInvalidCredentials)
		return
	}
	a.signIn(w, player)
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	sendMessageOrLog(w, a.log, "logged out")
}

// Status reports whether the request carries a valid token and extends it
// when it does.
func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		sendJSONOrLog(w, a.log, Status{LoggedIn: false})
		return
	}
	token, err := a.jwt.SignPlayer(claims.PlayerId, claims.Username)
	if err != nil {
		writeError(w, a.log, fmt.Errorf("unable to tokenize checked claims: %w", err))
		return
	}
	if err := a.cookies.Refresh(w, token); err != nil {
		writeError(w, a.log, err)
		return
	}
	sendJSONOrLog(w, a.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}
