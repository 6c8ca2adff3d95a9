package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/lizark9x/connor-bot/internal/http/handler"
	"github.com/lizark9x/connor-bot/internal/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, keepAlive *handler.KeepAlive) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", keepAlive.Home)
	r.GET("/trigger_text", keepAlive.TriggerText)

	return r
}
