package repository

import (
	"testing"

	"github.com/bassista/go_observe/internal/model"
)

func TestDataDocument_ApplyDefaults(t *testing.T) {
	doc := DataDocument{}
	doc.ApplyDefaults()
	if doc.Notes == nil || len(doc.Notes) != 0 {
		t.Errorf("expected empty notes slice, got %v", doc.Notes)
	}
}

func TestDataDocument_FindNote(t *testing.T) {
	doc := createTestDataDocument()

	n, ok := doc.FindNote("1")
	if !ok || n.Title != "T1" {
		t.Errorf("expected note 1, got %+v (found=%v)", n, ok)
	}
	if _, ok := doc.FindNote("missing"); ok {
		t.Error("expected missing note not to be found")
	}
}

func TestAreDataDocumentsEqual_BothNil(t *testing.T) {
	if !AreDataDocumentsEqual(nil, nil) {
		t.Error("expected two nil documents to be equal")
	}
}

func TestAreDataDocumentsEqual_OneNil(t *testing.T) {
	doc := createTestDataDocument()
	if AreDataDocumentsEqual(&doc, nil) || AreDataDocumentsEqual(nil, &doc) {
		t.Error("expected nil and non-nil documents to differ")
	}
}

func TestAreDataDocumentsEqual_IgnoresMetadata(t *testing.T) {
	a := createTestDataDocument()
	b := createTestDataDocument()
	b.Metadata.LastUpdate = 99999

	if !AreDataDocumentsEqual(&a, &b) {
		t.Error("expected documents differing only in metadata to be equal")
	}
}

func TestAreDataDocumentsEqual_DifferentNotes(t *testing.T) {
	a := createTestDataDocument()
	b := createTestDataDocument()
	b.Notes[0].Body = "changed"

	if AreDataDocumentsEqual(&a, &b) {
		t.Error("expected documents with different notes to differ")
	}
}

func TestAreDataDocumentsEqual_DifferentUser(t *testing.T) {
	a := createTestDataDocument()
	b := createTestDataDocument()
	b.User = &model.User{FirstName: "Bob", LastName: "Ray", Email: "b@x.com"}

	if AreDataDocumentsEqual(&a, &b) {
		t.Error("expected documents with different users to differ")
	}

	b.User = nil
	if AreDataDocumentsEqual(&a, &b) {
		t.Error("expected document without user to differ")
	}
}
