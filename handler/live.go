package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/resp"
	"github.com/rs/zerolog"

	"github.com/kodekulture/cemantix-server/game"
)

const dateLayout = "2006-01-02"

var (
	// Create upgrade websocket connection
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		//Solving cross-domain problems
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
)

// live opens a play session over a websocket connection for today, or for the date query.
func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.srv.Today()
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		resp.Error(w, errs.B().Code(errs.InvalidArgument).Msg("invalid date, expected YYYY-MM-DD").Err())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zerolog.Ctx(r.Context()).Err(err).Msg("error upgrading connection")
		return
	}
	game.NewRoom(h.srv, date, conn)
}
