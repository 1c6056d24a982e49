package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/msweeper/internal/handlers"
	"github.com/vancomm/msweeper/internal/middleware"
)

func (a *App) Router() *mux.Router {
	router := mux.NewRouter()
	r := router
	if a.cfg.BasePath != "" {
		r = router.PathPrefix(a.cfg.BasePath).Subrouter()
	}
	r.Use(mux.MiddlewareFunc(middleware.Auth(a.log, a.cookies)))

	gameHandler := handlers.NewGameHandler(a.log.WithField("handler", "game"), a.manager, a.ws)
	r.Methods(http.MethodPost).Path("/game").HandlerFunc(gameHandler.NewGame)
	r.Methods(http.MethodGet).Path("/game/{id}").HandlerFunc(gameHandler.Fetch)
	r.Methods(http.MethodPost).Path("/game/{id}/move").HandlerFunc(gameHandler.MakeAMove)
	r.Methods(http.MethodPost).Path("/game/{id}/reset").HandlerFunc(gameHandler.Reset)
	r.Methods(http.MethodPost).Path("/game/{id}/forfeit").HandlerFunc(gameHandler.Forfeit)
	r.Methods(http.MethodGet).Path("/game/{id}/connect").HandlerFunc(gameHandler.ConnectWS)

	highscores := handlers.NewHighscoresHandler(a.log.WithField("handler", "highscores"), a.store)
	r.Methods(http.MethodGet).Path("/highscores").HandlerFunc(highscores.Fetch)

	auth := handlers.NewAuth(a.log.WithField("handler", "auth"), a.store, a.cookies, a.jwt)
	r.Methods(http.MethodPost).Path("/register").HandlerFunc(auth.Register)
	r.Methods(http.MethodPost).Path("/login").HandlerFunc(auth.Login)
	r.Methods(http.MethodPost).Path("/logout").HandlerFunc(auth.Logout)
	r.Methods(http.MethodGet).Path("/status").HandlerFunc(auth.Status)

	return router
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.Router(),
		middleware.Logging(a.log),
		middleware.Cors(a.cfg.AllowedOrigins, a.cfg.Development),
	)
}
