package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus_booking/internal/config"
	"bus_booking/internal/services"
)

type signupInput struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupUser registers an account under the role named in the path. The role
// is part of the endpoint, not the payload, so it can never be smuggled into
// a generic update later.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewAuthService(config.DB)
	user, token, err := svc.Register(c.Param("role"), input.Username, input.Password, input.PasswordConfirm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// LoginUser authenticates against the role partition named in the path.
func LoginUser(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewAuthService(config.DB)
	user, token, err := svc.Login(c.Param("role"), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
