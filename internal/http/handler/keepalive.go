package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lizark9x/connor-bot/internal/bot"
)

const testMessageText = "This is a test message from Connor. The bot is active and nearby."

// KeepAlive serves the endpoints external uptime monitors hit to keep the
// process warm and to verify the send path end to end.
type KeepAlive struct {
	courier *bot.Courier
	logger  *slog.Logger
}

func NewKeepAlive(courier *bot.Courier, logger *slog.Logger) *KeepAlive {
	return &KeepAlive{courier: courier, logger: logger.With("component", "keepalive_handler")}
}

func (h *KeepAlive) Home(c *gin.Context) {
	c.String(http.StatusOK, "I'm alive")
}

// TriggerText sends one ad-hoc test message to the fixed recipient.
func (h *KeepAlive) TriggerText(c *gin.Context) {
	h.courier.Deliver(c.Request.Context(), "test", testMessageText)
	c.String(http.StatusOK, "Ok")
}
