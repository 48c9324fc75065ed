package main

import (
	"strings"
	"time"
	"yatube/config"
	"yatube/db"
	"yatube/feed"
	"yatube/models"
	"yatube/storage"
	"yatube/templates"
	"yatube/utils"
	"yatube/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionCookieName     = "sessionid"
	sessionExpirationTime = 14 * 86400 // 2 weeks
)

func main() {
	logger := utils.InitLogger()
	defer logger.Sync()

	db.Init()
	models.Init()
	storage.Init()

	var renders feed.RenderCache = feed.NewMemoryRenderCache()
	if config.REDIS_ADDR != "" {
		client, err := feed.DialRedis(config.REDIS_ADDR, config.REDIS_PASSWORD, config.REDIS_DB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.String("addr", config.REDIS_ADDR), zap.Error(err))
		}
		defer client.Close()
		renders = feed.NewRedisRenderCache(client)
		logger.Info("Render cache on Redis", zap.String("addr", config.REDIS_ADDR))
	}
	feeds := feed.New(feed.NewGormSource(db.Instance), renders, config.PAGE_SIZE)
	web.Init(feeds, templates.Load(), storage.Default)

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        30 * 24 * time.Hour,
	}))

	sessionStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	sessionStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}
	router.Use(utils.CacheControl(utils.NoCache)) // media routes override it
	router.Use(utils.NewRateLimiter(config.MAX_REQUESTS_PER_MIN).Handler())
	web.Register(router)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	logger.Fatal("Server stopped", zap.Error(err))
}
