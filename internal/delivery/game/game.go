package game

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"baduk/internal/bootstrap"
	"baduk/internal/domain/baduk"
	"baduk/internal/domain/game"
	errs "baduk/internal/errors"
	"baduk/internal/httpresponse"
	gameuc "baduk/internal/usecase/game"
	"baduk/internal/utils"
)

const maxWSMessageBytes = 4096

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, hub *Hub) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
		hub:    hub,
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Route("/{gameKey}", func(r chi.Router) {
			r.Get("/", g.HandleGetGame)
			r.Post("/move", g.HandleMove)
			r.Post("/pass", g.HandlePass)
			r.Post("/reset", g.HandleReset)
			r.Get("/ws", g.HandleSubscribe)
		})
	})
	r.Get("/archive/{gameKey}", g.HandleGetArchivedGame)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Warnf("new game: %v", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	size := g.cfg.DefaultBoardSize
	if req.BoardSize != nil {
		size = *req.BoardSize
	}

	created, err := g.gameUC.CreateGame(r.Context(), size)
	if err != nil {
		g.writeError(w, "new game", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, created)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "gameKey")
	found, err := g.gameUC.GetGame(r.Context(), key)
	if err != nil {
		g.writeError(w, "get game "+key, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "gameKey")
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Warnf("move %s: %v", key, err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	update, err := g.playMove(r, key, req)
	if err != nil {
		g.writeError(w, "move "+key, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, update)
}

func (g *GameHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "gameKey")
	var req game.PassRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Warnf("pass %s: %v", key, err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}
	color, err := baduk.ParseColor(req.Color)
	if err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	update, err := g.gameUC.Pass(r.Context(), key, color)
	if err != nil {
		g.writeError(w, "pass "+key, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, update)
}

func (g *GameHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "gameKey")
	update, err := g.gameUC.Reset(r.Context(), key)
	if err != nil {
		g.writeError(w, "reset "+key, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, update)
}

// HandleGetArchivedGame returns the most recently finished game under the
// key; earlier games played under it before a reset stay in the archive.
func (g *GameHandler) HandleGetArchivedGame(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "gameKey")
	found, err := g.gameUC.GetArchivedGame(r.Context(), key)
	if err != nil {
		g.writeError(w, "archive "+key, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

// HandleSubscribe upgrades to a websocket that receives the current game
// first and then every committed update. Moves may also be sent over the
// socket as MoveRequest JSON; rejected moves are answered to the sender only.
func (g *GameHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "gameKey")
	ctx := r.Context()

	if _, err := g.gameUC.GetGame(ctx, key); err != nil {
		g.writeError(w, "subscribe "+key, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warnf("subscribe %s: upgrade error: %v", key, err)
		return
	}
	conn.SetReadLimit(maxWSMessageBytes)

	sub, err := g.hub.subscribe(key, conn, func() (game.GameUpdate, error) {
		current, err := g.gameUC.GetGame(ctx, key)
		return game.GameUpdate{Command: "snapshot", Game: current}, err
	})
	if err != nil {
		g.log.Errorf("subscribe %s: %v", key, err)
		conn.Close()
		return
	}
	go writeLoop(g.log, sub)
	defer g.hub.unsubscribe(key, sub)

	g.log.Infof("game %s: subscriber %s connected", key, conn.RemoteAddr())
	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Warnf("game %s: read error: %v", key, err)
			}
			return
		}
		if _, err := g.playMove(r, key, req); err != nil {
			g.hub.reply(key, sub, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		}
	}
}

func (g *GameHandler) playMove(r *http.Request, key string, req game.MoveRequest) (game.GameUpdate, error) {
	color, err := baduk.ParseColor(req.Color)
	if err != nil {
		return game.GameUpdate{}, errors.Join(errs.ErrInvalidVertex, err)
	}
	switch {
	case req.Vertex != "":
		return g.gameUC.PlayVertex(r.Context(), key, req.Vertex, color)
	case req.Row != nil && req.Col != nil:
		return g.gameUC.PlaceStone(r.Context(), key, *req.Row, *req.Col, color)
	}
	return game.GameUpdate{}, errors.Join(errs.ErrInvalidVertex, errors.New("row and col or vertex required"))
}

func (g *GameHandler) writeError(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		g.log.Errorf("%s: %v", op, err)
		httpresponse.WriteError(w, status, "internal error")
		return
	}
	g.log.Warnf("%s: %v", op, err)
	httpresponse.WriteError(w, status, err.Error())
}

// StatusFor maps engine and storage errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrActionAfterGameEnd):
		return http.StatusConflict
	case errors.Is(err, errs.ErrArchiveDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, errs.ErrOutOfBounds),
		errors.Is(err, errs.ErrOccupied),
		errors.Is(err, errs.ErrSuicide),
		errors.Is(err, errs.ErrInvalidSize),
		errors.Is(err, errs.ErrNotYourTurn),
		errors.Is(err, errs.ErrInvalidVertex):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
