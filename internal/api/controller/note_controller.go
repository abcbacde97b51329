package controller

import (
	"net/http"

	"github.com/bassista/go_observe/internal/cache"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NoteController serves the note collection.
type NoteController struct {
	store     cache.NoteStore
	validator *validator.Validate
}

func NewNoteController(store cache.NoteStore) *NoteController {
	return &NoteController{store: store, validator: validator.New()}
}

// AllNotes returns every note as a JSON array.
func (nc *NoteController) AllNotes(c *gin.Context) {
	c.JSON(http.StatusOK, nc.store.Notes())
}

// GetNote returns the note addressed by :id.
func (nc *NoteController) GetNote(c *gin.Context) {
	id := c.Param("id")
	note, ok := nc.store.Note(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, note)
}

// CreateNote stores a new note under a generated id.
func (nc *NoteController) CreateNote(c *gin.Context) {
	var note model.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}
	if err := nc.validator.Struct(note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	record, err := nc.store.AddNote(repository.NoteRecord{ID: uuid.NewString(), Note: note})
	if err != nil {
		logger.WithComponent("note-controller").Errorf("cannot add note: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store note"})
		return
	}
	c.JSON(http.StatusCreated, record)
}
