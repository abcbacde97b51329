package service

import (
	"net/url"
	"strings"

	"github.com/bassista/go_observe/internal/httpclient"
	"github.com/bassista/go_observe/internal/model"
	"github.com/samber/ro"
)

// NoteService is a stateless, stream-based API over the note endpoints.
// It holds no data: every call returns a new lazy stream and every
// subscription to it performs exactly one request.
type NoteService struct {
	client  httpclient.Getter
	baseURL string
}

// NewNoteService returns a NoteService for the collection at baseURL,
// e.g. http://host/api/v1/note/.
func NewNoteService(client httpclient.Getter, baseURL string) *NoteService {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &NoteService{client: client, baseURL: baseURL}
}

// FindAll lists every note.
func (s *NoteService) FindAll() ro.Observable[[]model.Note] {
	return getJSON(s.client, s.baseURL, validNotes)
}

// FindOne fetches the note identified by id. The id is not validated here;
// a bad id surfaces as whatever error the backend answers with.
func (s *NoteService) FindOne(id string) ro.Observable[model.Note] {
	return getJSON(s.client, s.baseURL+url.PathEscape(id), validNote)
}
