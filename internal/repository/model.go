package repository

import (
	"encoding/json"
	"reflect"

	"github.com/bassista/go_observe/internal/model"
)

// Metadata holds versioning info for optimistic locking.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// DataDocument represents the persisted JSON structure served by the API.
type DataDocument struct {
	Metadata Metadata     `json:"metadata"`
	Notes    []NoteRecord `json:"notes" validate:"dive"`
	User     *model.User  `json:"user,omitempty"`
}

// NoteRecord is a stored note. The id addresses it on the wire;
// the remaining fields are the note payload itself.
type NoteRecord struct {
	ID string `json:"id" validate:"required"`
	model.Note
}

// ApplyDefaults sets fallback values after decode.
func (d *DataDocument) ApplyDefaults() {
	if d.Notes == nil {
		d.Notes = []NoteRecord{}
	}
}

// FindNote returns the note with the given id.
func (d *DataDocument) FindNote(id string) (NoteRecord, bool) {
	for _, n := range d.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return NoteRecord{}, false
}

// AreDataDocumentsEqual compares two DataDocuments ignoring Metadata.
// Uses JSON serialization for flexible comparison (order-independent for object keys).
func AreDataDocumentsEqual(a, b *DataDocument) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var aMap, bMap map[string]interface{}
	if err := json.Unmarshal(aBytes, &aMap); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bMap); err != nil {
		return false
	}

	delete(aMap, "metadata")
	delete(bMap, "metadata")

	return reflect.DeepEqual(aMap, bMap)
}
