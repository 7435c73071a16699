package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/auth"
	"github.com/lordvidex/x/req"
	"github.com/lordvidex/x/resp"

	"github.com/kodekulture/cemantix-server/game"
	"github.com/kodekulture/cemantix-server/game/embedding"
	"github.com/kodekulture/cemantix-server/handler/token"
	"github.com/kodekulture/cemantix-server/internal/telemetry"
)

const (
	defaultWait = 5 * time.Second
	maxWait     = 30 * time.Second
)

//go:generate mockgen -destination=../internal/mocks/service.go -package=mocks . Service

// Service is what the handler needs from the game engine.
type Service interface {
	game.Engine

	Today() string
	WordOfDay(date string) (string, error)
	IsValidWord(w string) bool
	IsModelLoading() bool
	ModelState() embedding.State
	ModelBackend() string
	WaitForModel(ctx context.Context) bool
	Stats() telemetry.Snapshot
	Login(ctx context.Context, password string) (game.Admin, error)
}

type Handler struct {
	s      *http.Server
	router chi.Router
	srv    Service
	token  token.Handler
}

func New(srv Service, tokenHandler token.Handler) *Handler {
	h := &Handler{
		router: chi.NewRouter(),
		srv:    srv,
		token:  tokenHandler,
	}
	h.setup()
	return h
}

func (h *Handler) Start(port string) error {
	h.s = &http.Server{Addr: ":" + port, Handler: h.router, ReadHeaderTimeout: 10 * time.Second}
	return h.s.ListenAndServe()
}

func (h *Handler) Stop(ctx context.Context) error {
	if h.s == nil {
		return nil
	}
	return h.s.Shutdown(ctx)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) setup() {
	r := h.router
	r.Use(requestID, accessLog, middleware.Recoverer)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/model", h.model)
		r.Get("/model/wait", h.modelWait)
		r.Get("/validate/{word}", h.validate)
		r.Post("/guess", h.guess)
		r.Get("/stats", h.stats)
		r.Get("/live", h.live)
		r.Post("/admin/login", h.login)
		r.Post("/admin/logout", h.logout)
	})

	// Private routes
	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)

		r.Get("/admin/word", h.wordOfDay)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type modelResponse struct {
	State   embedding.State `json:"state"`
	Backend string          `json:"backend,omitempty"`
	Ready   bool            `json:"ready"`
	Loading bool            `json:"loading"`
}

func (h *Handler) modelStatus() modelResponse {
	return modelResponse{
		State:   h.srv.ModelState(),
		Backend: h.srv.ModelBackend(),
		Ready:   h.srv.IsModelReady(),
		Loading: h.srv.IsModelLoading(),
	}
}

func (h *Handler) model(w http.ResponseWriter, r *http.Request) {
	resp.JSON(w, h.modelStatus())
}

// modelWait long polls until the model load resolves or the timeout query elapses.
func (h *Handler) modelWait(w http.ResponseWriter, r *http.Request) {
	wait := defaultWait
	if q := r.URL.Query().Get("timeout"); q != "" {
		d, err := time.ParseDuration(q)
		if err != nil || d < 0 {
			resp.Error(w, errs.B().Code(errs.InvalidArgument).Msg("invalid timeout").Err())
			return
		}
		wait = min(d, maxWait)
	}
	ctx, cancel := context.WithTimeout(r.Context(), wait)
	defer cancel()
	h.srv.WaitForModel(ctx)
	resp.JSON(w, h.modelStatus())
}

type validateResponse struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	wrd := chi.URLParam(r, "word")
	resp.JSON(w, validateResponse{Word: wrd, Valid: h.srv.IsValidWord(wrd)})
}

type guessParams struct {
	Word string `json:"word" validate:"required"`
	// Date defaults to today.
	Date string `json:"date"`
}

func (h *Handler) guess(w http.ResponseWriter, r *http.Request) {
	var payload guessParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		resp.Error(w, err)
		return
	}
	g, err := h.srv.Guess(r.Context(), payload.Date, payload.Word)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, game.ToGuess(g))
}

type statsResponse struct {
	telemetry.Snapshot
	Model modelResponse `json:"model"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	resp.JSON(w, statsResponse{Snapshot: h.srv.Stats(), Model: h.modelStatus()})
}

type loginParams struct {
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload loginParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		resp.Error(w, err)
		return
	}

	var (
		admin game.Admin
		tk    auth.Token
		err   error
	)
	if admin, err = h.srv.Login(r.Context(), payload.Password); err != nil {
		resp.Error(w, err)
		return
	}
	if tk, err = h.token.Generate(r.Context(), admin, adminTokenTTL); err != nil {
		resp.Error(w, err)
		return
	}
	ck := newAdminCookie(tk)
	http.SetCookie(w, &ck)
	resp.JSON(w, loginResponse{Token: string(tk)})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ck := newAdminCookie("")
	deleteCookie(w, &ck)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) wordOfDay(w http.ResponseWriter, r *http.Request) {
	if Admin(r.Context()) == nil {
		resp.Error(w, ErrUnauthenticated)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.srv.Today()
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		resp.Error(w, errs.B().Code(errs.InvalidArgument).Msg("invalid date, expected YYYY-MM-DD").Err())
		return
	}
	wrd, err := h.srv.WordOfDay(date)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, game.DailySelection{Date: date, Word: wrd})
}
