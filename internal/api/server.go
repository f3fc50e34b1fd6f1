package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"streamfront/internal/config"
	"streamfront/internal/db"
	"streamfront/internal/discord"
	"streamfront/internal/redis"
	"streamfront/internal/settings"
	"streamfront/internal/storage"
)

type Server struct {
	log     *slog.Logger
	cfg     config.Config
	store   settings.Store
	discord *discord.Client // nil quando BOT_TOKEN não está configurado
	storage storage.Client
	redis   *redis.Client // nil desliga o rate limiting
	db      *db.DB        // só para o healthz; pode ser nil
	router  *gin.Engine
}

func NewServer(log *slog.Logger, cfg config.Config, store settings.Store, dc *discord.Client, storageClient storage.Client, redisClient *redis.Client, dbConn *db.DB) *Server {
	s := &Server{
		log:     log,
		cfg:     cfg,
		store:   store,
		discord: dc,
		storage: storageClient,
		redis:   redisClient,
		db:      dbConn,
		router:  gin.New(),
	}

	gin.SetMode(gin.ReleaseMode)
	r := s.router
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.loggingMiddleware())
	r.Use(s.rateLimitMiddleware())

	r.GET("/", s.index)
	r.GET("/healthz", s.healthz)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/owner", s.getOwner)
		apiGroup.GET("/messages", s.getMessages)
		apiGroup.GET("/schedule", s.getSchedule)
		apiGroup.GET("/profile", s.getProfile)
		apiGroup.POST("/verify", s.verify)

		// rotas que mudam estado exigem a admin key
		admin := apiGroup.Group("")
		admin.Use(s.adminAuthMiddleware())
		{
			admin.POST("/schedule", s.postSchedule)
			admin.POST("/schedule/image", s.postScheduleImage)
			admin.POST("/profile", s.postProfile)
		}
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}
