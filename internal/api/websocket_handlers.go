package api

import (
	"net/http"

	"dining-reviews/internal/logging"
	"dining-reviews/internal/validation"
	"dining-reviews/internal/websocket"
)

type feedQuery struct {
	Location string `json:"location" validate:"omitempty,feed"`
}

// @Summary      Live review feed
// @Description  Upgrades to a websocket that streams review_created and review_deleted events. A location limits the feed to one hall.
// @Tags         reviews
// @Param        location  query  string  false  "Dining hall or index"
// @Success      101
// @Failure      400  {object}  ErrorResponse "Unknown location"
// @Router       /ws/reviews [get]
func (s *Server) ServeReviewFeedHandler(w http.ResponseWriter, r *http.Request) {
	q := feedQuery{Location: r.URL.Query().Get("location")}
	if err := validation.ValidateStruct(q); err != nil {
		handleError(w, r, err)
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(s.wsHub, conn, q.Location)
	s.wsHub.Register(client)

	go client.ReadPump()
	go client.WritePump()
}
