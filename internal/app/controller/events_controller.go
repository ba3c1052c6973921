package controller

import (
	"net/http"

	"github.com/casepix/casepix-backend/internal/events"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of this handler.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type EventsController struct {
	hub *events.Hub
}

func NewEventsController(hub *events.Hub) *EventsController {
	return &EventsController{hub: hub}
}

// Subscribe upgrades the connection and streams catalog invalidation events
// GET /api/v1/admin/events (WebSocket)
func (ctrl *EventsController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade event feed connection", err)
		return
	}

	client := events.NewClient(ctrl.hub, conn)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
