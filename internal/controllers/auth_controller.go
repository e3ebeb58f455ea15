package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fleet_desk/internal/middleware"
	"fleet_desk/internal/models"
	"fleet_desk/internal/repository"
)

type loginInput struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupInput struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// LoginUser answers with the token both at the top level and inside "data"
// so that either envelope reading on the client finds it.
func (ctl *Controller) LoginUser(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.Users.FindByUserName(c.Request.Context(), strings.TrimSpace(body.UserName))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctl.countLogin("unknown_user")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		storeError(c, err, "user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		ctl.countLogin("bad_password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.UserName, user.Role, ctl.TokenTTL)
	if err != nil {
		logrus.WithError(err).Error("could not generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}
	ctl.countLogin("success")

	payload := gin.H{
		"authToken": token,
		"userName":  user.UserName,
		"role":      user.Role,
	}
	c.JSON(http.StatusOK, gin.H{
		"authToken": token,
		"userName":  user.UserName,
		"role":      user.Role,
		"data":      payload,
	})
}

// SignupUser lets an admin create operator or admin accounts.
func (ctl *Controller) SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{
		UserName: strings.TrimSpace(input.UserName),
		Password: hashedPassword,
		Role:     role,
	}
	if err := ctl.Users.Create(c.Request.Context(), &user); err != nil {
		storeError(c, err, "user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

func (ctl *Controller) countLogin(outcome string) {
	if ctl.Metrics != nil {
		ctl.Metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleOperator
	}
	switch role {
	case models.RoleOperator, models.RoleAdmin:
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
