package route

import (
	"github.com/bassista/go_observe/internal/api/controller"
	"github.com/bassista/go_observe/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewUserRouter(group *gin.RouterGroup, store cache.UserStore) {
	uc := controller.NewUserController(store)

	group.GET("user/", uc.GetUser)
	group.PUT("user/", uc.PutUser)
}
