package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"dn-damage-calc/internal/config"
	"dn-damage-calc/internal/store"
)

// NewRouter wires every route onto a fresh engine.
func NewRouter(cfg *config.Config, kv store.KV, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(TraceID(), Logger(logger), Recovery(logger))
	r.Use(RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))
	r.Use(BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	calcH := NewCalcHandler(logger)
	profH := NewProfileHandler(store.NewWorkspace(kv, logger), store.NewPresets(kv, logger), logger)

	api := r.Group("/api")
	{
		api.GET("/meta", calcH.Meta)
		api.POST("/calc", calcH.Calculate)
		api.POST("/goldsplit", calcH.SplitGold)

		sbG := api.Group("/setbonus")
		sbG.POST("/toggle", calcH.ToggleTier)
		sbG.POST("/move", calcH.MoveRow)
		sbG.POST("/copy", calcH.CopyTiers)

		profG := api.Group("/profiles/:profile")
		profG.GET("/workspace", profH.GetWorkspace)
		profG.PUT("/workspace", profH.PutWorkspace)
		profG.GET("/presets", profH.ListPresets)
		profG.PUT("/presets/:slot", profH.SavePreset)
		profG.POST("/presets/import", profH.ImportPresets)
		profG.GET("/presets/id/:id", profH.GetPreset)
		profG.DELETE("/presets/id/:id", profH.DeletePreset)
		profG.POST("/presets/id/:id/load", profH.LoadPreset)
	}
	return r
}
