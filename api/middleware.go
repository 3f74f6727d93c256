package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/tetris-duel/http_utils"
)

type contextkey string

const authContextKey contextkey = "auth_payload"

func (s *Server) AuthMiddleware(c *gin.Context) {
	header := c.Request.Header.Get("authorization")

	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, http_utils.NewBaseResponse(false, "unauthorized"))
		return
	}

	sArr := strings.Split(header, " ")

	if len(sArr) < 2 || !strings.EqualFold(sArr[0], "bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, http_utils.NewBaseResponse(false, "unauthorized"))
		return
	}

	payload, err := s.tokenMaker.VerifyToken(sArr[1])

	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, http_utils.NewBaseResponse(false, err.Error()))
		return
	}

	c.Set(string(authContextKey), payload)

	c.Next()
}
