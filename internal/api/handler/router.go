package handler

import (
	"net/http"
	"strings"
	"time"

	"careline/backend/internal/config"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// BuildRouter assembles the gin engine: CORS, auth, the report rate limiter
// and every route of the messaging and moderation surface.
func BuildRouter(h *Handler, cfg *config.Config, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := AuthRequired(cfg.JWTSecret)

	r.GET("/ws", auth, h.ServeWebSocket)

	api := r.Group("/api", auth)
	{
		api.POST("/conversations", h.CreateConversation)
		api.GET("/conversations", h.ListConversations)
		api.GET("/conversations/:id", h.GetConversation)
		api.POST("/conversations/:id/messages", h.SendMessage)
		api.POST("/conversations/:id/read", h.MarkRead)
		api.POST("/conversations/:id/accept", h.AcceptOffer)
		api.POST("/conversations/:id/decline", h.DeclineOffer)

		api.POST("/messages/:id/report", reportRateLimiter(rdb), h.ReportMessage)

		admin := api.Group("/admin", AdminRequired())
		{
			admin.GET("/moderation/queue", h.ModerationQueue)
			admin.POST("/moderation/:id/process", h.ProcessReport)
			admin.POST("/moderation/bulk", h.ProcessReportsBulk)
			admin.GET("/users/:id/score", h.UserScore)
		}
	}

	return r
}

// reportRateLimiter bounds report filing per user. The redis store keeps the
// counters shared across replicated instances.
func reportRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: rdb,
		Rate:        config.ReportRateWindow,
		Limit:       config.ReportRateLimit,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc: func(c *gin.Context) string {
			return "report:" + c.GetString(ctxUserID)
		},
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate_limited",
				"message": "Too many reports filed, please try again later",
			})
		},
	})
}
