package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"streamfront/internal/normalize"
	"streamfront/internal/security"
	"streamfront/internal/settings"
)

// defaultScheduleURL é o fallback quando a store está vazia ou fora do ar.
const defaultScheduleURL = "https://placehold.co/1280x720?text=Schedule+TBA"

func (s *Server) index(c *gin.Context) {
	c.String(http.StatusOK, "streamfront api is running")
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	dbStatus := "connected"
	if s.db == nil {
		dbStatus = "disconnected"
	} else if err := s.db.Pool.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}

	redisStatus := "connected"
	if s.redis == nil {
		redisStatus = "disconnected"
	} else if err := s.redis.RDB().Ping(ctx).Err(); err != nil {
		redisStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

func (s *Server) getOwner(c *gin.Context) {
	if s.discord == nil || s.cfg.GuildID == "" || s.cfg.OwnerID == "" {
		s.log.Error("owner_config_missing",
			"has_token", s.discord != nil,
			"has_guild", s.cfg.GuildID != "",
			"has_owner", s.cfg.OwnerID != "",
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server is not configured"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	member, err := s.discord.FetchGuildMember(ctx, s.cfg.GuildID, s.cfg.OwnerID)
	if err != nil {
		s.log.Error("owner_fetch_failed", "guild_id", s.cfg.GuildID, "user_id", s.cfg.OwnerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch owner"})
		return
	}

	c.JSON(http.StatusOK, normalize.NewOwner(s.cfg.GuildID, member))
}

func (s *Server) getMessages(c *gin.Context) {
	channelID := strings.TrimSpace(c.Query("channelId"))
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is required"})
		return
	}
	if _, err := security.ParseSnowflake(channelID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channelId is invalid"})
		return
	}

	if s.discord == nil {
		s.log.Error("messages_config_missing", "msg", "bot token nao configurado")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server is not configured"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	msgs, err := s.discord.FetchRecentMessages(ctx, channelID)
	if err != nil {
		s.log.Error("messages_fetch_failed", "channel_id", channelID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, normalize.Messages(msgs))
}

func (s *Server) getSchedule(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	url := defaultScheduleURL

	raw, found, err := s.store.Get(ctx, settings.KeyScheduleURL)
	if err != nil {
		// store fora do ar: leitura degrada para o default
		s.log.Warn("schedule_read_failed", "error", err)
	} else if found {
		var stored string
		if jerr := json.Unmarshal(raw, &stored); jerr == nil && stored != "" {
			url = stored
		}
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (s *Server) postSchedule(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	value, _ := json.Marshal(req.URL)
	if err := s.store.Upsert(ctx, settings.KeyScheduleURL, value); err != nil {
		s.log.Error("schedule_write_failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "settings store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": req.URL})
}

func (s *Server) postScheduleImage(c *gin.Context) {
	if s.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	url, err := s.storage.UploadScheduleImage(ctx, data)
	if err != nil {
		s.log.Error("schedule_upload_failed", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	value, _ := json.Marshal(url)
	if err := s.store.Upsert(ctx, settings.KeyScheduleURL, value); err != nil {
		s.log.Error("schedule_write_failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "settings store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func (s *Server) verify(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	_ = c.ShouldBindJSON(&req)

	if !s.authorizeAdmin(strings.TrimSpace(req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) getProfile(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"about":   s.readProfileBlock(ctx, settings.KeyProfileAbout),
		"credits": s.readProfileBlock(ctx, settings.KeyProfileCredits),
	})
}

// readProfileBlock devolve o blob salvo ou uma lista vazia; store fora do ar
// também degrada para a lista vazia.
func (s *Server) readProfileBlock(ctx context.Context, key string) json.RawMessage {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("profile_read_failed", "key", key, "error", err)
		return json.RawMessage("[]")
	}
	if !found || len(raw) == 0 {
		return json.RawMessage("[]")
	}
	return raw
}

func (s *Server) postProfile(c *gin.Context) {
	var req struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var key string
	switch req.Type {
	case "about":
		key = settings.KeyProfileAbout
	case "credits":
		key = settings.KeyProfileCredits
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": `type must be "about" or "credits"`})
		return
	}

	// o blob é opaco por design; só exigimos que esteja presente
	if len(req.Data) == 0 || string(req.Data) == "null" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data is required"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	if err := s.store.Upsert(ctx, key, req.Data); err != nil {
		s.log.Error("profile_write_failed", "key", key, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "settings store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
