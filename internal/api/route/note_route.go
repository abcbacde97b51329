package route

import (
	"github.com/bassista/go_observe/internal/api/controller"
	"github.com/bassista/go_observe/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewNoteRouter(group *gin.RouterGroup, store cache.NoteStore) {
	nc := controller.NewNoteController(store)

	group.GET("note/", nc.AllNotes)
	group.GET("note/:id", nc.GetNote)
	group.POST("note/", nc.CreateNote)
}
