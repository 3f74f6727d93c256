package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/tetris-duel/http_utils"
	"github.com/judgegodwins/tetris-duel/tokens"
	"github.com/judgegodwins/tetris-duel/util"
	"github.com/judgegodwins/tetris-duel/ws"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

type Server struct {
	config     *util.Config
	wsManager  *ws.Manager
	router     *gin.Engine
	rdb        *redis.Client
	tokenMaker tokens.Maker
}

func NewServer(config *util.Config, rdb *redis.Client, maker tokens.Maker) *Server {
	router := gin.Default()

	server := &Server{
		config:     config,
		wsManager:  ws.NewManager(config, rdb, maker),
		router:     router,
		rdb:        rdb,
		tokenMaker: maker,
	}

	router.GET("/ws", server.wsManager.ServeWS)
	router.GET("/health", server.Health)
	router.POST("/auth/username", server.TokenGenerator)
	router.POST("/rooms", server.AuthMiddleware, server.CreateRoom)
	router.GET("/rooms/:id", server.CheckRoom)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, http_utils.NewBaseResponse(false, "route not found"))
	})

	return server
}

// Handler wraps the router with CORS for the configured origins.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(s.router)
}

func (s *Server) Start() error {
	return http.ListenAndServe(fmt.Sprintf(":%v", s.config.Port), s.Handler())
}
