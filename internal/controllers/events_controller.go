package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"fleet_desk/internal/middleware"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced by the HTTP wrapper
	},
}

// authenticateEventSocket accepts the token from the Authorization header or,
// for browsers that cannot set headers on upgrades, from ?token=.
func authenticateEventSocket(c *gin.Context) (*middleware.Claims, error) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		return nil, errors.New("missing authentication token")
	}
	claims, err := middleware.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// HandleEventsWebSocket streams change events to an authenticated client
// until it disconnects. Incoming messages are ignored.
func (ctl *Controller) HandleEventsWebSocket(c *gin.Context) {
	claims, err := authenticateEventSocket(c)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket authentication failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade events connection")
		return
	}
	defer conn.Close()

	ctl.Hub.Register(conn)
	defer ctl.Hub.Unregister(conn)

	logrus.WithFields(logrus.Fields{
		"user_id":  claims.UserID,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Events WebSocket connection established.")

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("user_id", claims.UserID).Warn("Events WebSocket closed unexpectedly.")
			}
			return
		}
	}
}
