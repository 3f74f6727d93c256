package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/tetris-duel/http_utils"
	"github.com/judgegodwins/tetris-duel/util"
)

const tokenDuration = 24 * time.Hour

type usernameRequest struct {
	Username string `json:"username" binding:"required,max=24"`
}

// Generates a token using the username passed as request body
func (s *Server) TokenGenerator(c *gin.Context) {
	var data usernameRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewValidationErrorResponse(err))
		return
	}

	token, payload, err := s.tokenMaker.CreateToken(data.Username, tokenDuration)

	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, http_utils.NewBaseResponse(false, ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, http_utils.NewDataResponse("Auth data", gin.H{
		"id":         payload.ID,
		"username":   payload.Username,
		"token":      token,
		"expires_at": payload.ExpiredAt,
	}))
}

func (s *Server) CreateRoom(c *gin.Context) {
	authPayload, ok := GetPayload(c)

	if !ok {
		c.JSON(http.StatusInternalServerError, http_utils.NewBaseResponse(false, ErrorMessage500))
		log.Println(errors.New("value in auth_payload key of request context could not be casted to *tokens.Payload"))
		return
	}

	roomID, err := s.wsManager.ReserveRoom(c.Request.Context())

	if err != nil {
		log.Println("error reserving room:", err)
		c.JSON(http.StatusInternalServerError, http_utils.NewBaseResponse(false, ErrorMessage500))
		return
	}

	log.Printf("room %v reserved by %v", roomID, authPayload.Username)

	c.JSON(http.StatusCreated, http_utils.NewDataResponse("Room created", gin.H{
		"id": roomID,
	}))
}

type checkRoomRequest struct {
	RoomID string `uri:"id" binding:"required,alphanum,max=12"`
}

func (s *Server) CheckRoom(c *gin.Context) {
	var data checkRoomRequest

	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, http_utils.NewValidationErrorResponse(err))
		return
	}

	exists, players, err := s.wsManager.RoomInfo(c.Request.Context(), data.RoomID)

	if err != nil {
		log.Println("error getting room data from redis:", err)
		c.JSON(http.StatusInternalServerError, http_utils.NewBaseResponse(false, ErrorMessage500))
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, http_utils.NewBaseResponse(false, "room not found"))
		return
	}

	c.JSON(http.StatusOK, http_utils.NewDataResponse("room data", gin.H{
		"id":      data.RoomID,
		"players": players,
		"full":    players >= util.MaxRoomPlayers,
	}))
}

func (s *Server) Health(c *gin.Context) {
	if err := s.rdb.Ping(c.Request.Context()).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, http_utils.NewBaseResponse(false, "redis unavailable"))
		return
	}

	c.JSON(http.StatusOK, http_utils.NewBaseResponse(true, "ok"))
}
