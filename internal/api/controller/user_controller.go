package controller

import (
	"net/http"

	"github.com/bassista/go_observe/internal/cache"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/bassista/go_observe/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserController serves the single user resource.
type UserController struct {
	store     cache.UserStore
	validator *validator.Validate
}

func NewUserController(store cache.UserStore) *UserController {
	return &UserController{store: store, validator: validator.New()}
}

// GetUser returns the stored user, or 404 when none is set yet.
func (uc *UserController) GetUser(c *gin.Context) {
	user, ok := uc.store.User()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not set"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PutUser replaces the stored user.
func (uc *UserController) PutUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}
	if err := uc.validator.Struct(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	if err := uc.store.SetUser(user); err != nil {
		logger.WithComponent("user-controller").Errorf("cannot set user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
