package http

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/moodcanvas/internal/ws"
)

const limiterJanitorInterval = 10 * time.Minute

type Options struct {
	CorsOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int
}

// SetupRoutes configures all application routes and middleware. Background
// work started here stops when ctx is cancelled.
func SetupRoutes(ctx context.Context, router *gin.Engine, env *Env, opts Options) {

	// --- Middleware ---
	router.Use(RequestLogger(env.Log))
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	corsOrigin := opts.CorsOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: corsOrigin != "*",
		MaxAge:           12 * time.Hour,
	}))

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst)
	go limiter.RunJanitor(ctx, limiterJanitorInterval)
	limited := RateLimitMiddleware(limiter)

	// --- API Routes ---
	router.GET("/", env.Root)
	router.POST("/analyze-text", limited, env.AnalyzeText)
	router.POST("/analyze-drawing", limited, env.AnalyzeDrawing)

	subs := router.Group("/submissions")
	{
		subs.GET("", env.GetSubmissions)
		subs.POST("", limited, env.CreateSubmission)
		subs.GET("/ranked", env.GetRankedSubmissions)
		subs.GET("/stats", env.GetStats)
		subs.POST("/:id/vote", env.VoteOnSubmission)
	}

	// --- WebSocket Route ---
	if env.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			ws.ServeWs(env.Hub, c.Writer, c.Request)
		})
	}
}
