package handlers

import (
	"net/url"
	"strings"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/infrastructure/realtime"
)

// RealtimeHandler upgrades authenticated requests to the notification channel.
type RealtimeHandler struct {
	Hub            *realtime.Hub
	OriginPatterns []string
	Logger         *logrus.Logger
}

// NewRealtimeHandler accepts the CORS origins and keeps their hosts as origin patterns.
func NewRealtimeHandler(hub *realtime.Hub, origins []string, logger *logrus.Logger) *RealtimeHandler {
	return &RealtimeHandler{Hub: hub, OriginPatterns: originHosts(origins), Logger: logger}
}

func originHosts(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

func (h *RealtimeHandler) Connect(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.OriginPatterns})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("email", id.Email).Debug("websocket upgrade failed")
		}
		return
	}
	realtime.Serve(c.Request.Context(), conn, h.Hub, id.Email, h.Logger)
}
