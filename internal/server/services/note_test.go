package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sparks/noteapp/internal/common"
	"github.com/sparks/noteapp/internal/server/config"
	"github.com/sparks/noteapp/internal/server/models"
)

type fakeNotesRepo struct {
	notes  map[int64]*models.Note
	nextID int64
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: map[int64]*models.Note{}, nextID: 1}
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	n.ID = f.nextID
	f.nextID++
	clone := *n
	f.notes[n.ID] = &clone
	return n, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNotesRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	result := []*models.Note{}
	for id := int64(1); id < f.nextID; id++ {
		if n, ok := f.notes[id]; ok && n.UserID == userID {
			clone := *n
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) (*models.Note, error) {
	stored, ok := f.notes[n.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Title = n.Title
	stored.Content = n.Content
	return n, nil
}

func (f *fakeNotesRepo) SetAttachmentKey(ctx context.Context, id int64, key string) error {
	stored, ok := f.notes[id]
	if !ok {
		return common.ErrorNotFound
	}
	stored.AttachmentKey = key
	return nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.notes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.notes, id)
	return nil
}

var (
	alice = &models.User{ID: 1, Username: "alice", Email: "a@x.com"}
	bob   = &models.User{ID: 2, Username: "bob", Email: "b@x.com"}
)

func newNoteService(t *testing.T) (*NoteService, *fakeNotesRepo, func()) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	// Update/Delete run inside a transaction; arm enough lenient
	// begin/commit/rollback expectations for any single test.
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 4; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	repo := newFakeNotesRepo()
	rm := &fakeRepoManager{n: repo}
	return NewNoteService(db, rm, &config.Config{}), repo, func() { db.Close() }
}

func TestNoteCreate_AssignsOwner(t *testing.T) {
	s, repo, done := newNoteService(t)
	defer done()

	note, err := s.Create(context.Background(), alice, "t", "c")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if note.ID == 0 || note.UserID != alice.ID {
		t.Fatalf("unexpected note: %+v", note)
	}
	if stored := repo.notes[note.ID]; stored.UserID != alice.ID {
		t.Fatalf("ownership not persisted: %+v", stored)
	}
}

func TestNoteList_OnlyOwnNotes(t *testing.T) {
	s, _, done := newNoteService(t)
	defer done()

	if _, err := s.Create(context.Background(), alice, "a1", "c"); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Create(context.Background(), bob, "b1", "c"); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Create(context.Background(), alice, "a2", "c"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := s.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "a1" || got[1].Title != "a2" {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestNoteUpdate_Owner(t *testing.T) {
	s, repo, done := newNoteService(t)
	defer done()

	note, _ := s.Create(context.Background(), alice, "t", "c")

	updated, err := s.Update(context.Background(), alice, note.ID, "t2", "c2")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "t2" || updated.Content != "c2" {
		t.Fatalf("unexpected note: %+v", updated)
	}
	if repo.notes[note.ID].Title != "t2" {
		t.Fatalf("update not persisted")
	}
}

func TestNoteUpdate_ForeignNoteForbidden(t *testing.T) {
	s, repo, done := newNoteService(t)
	defer done()

	note, _ := s.Create(context.Background(), alice, "t", "c")

	_, err := s.Update(context.Background(), bob, note.ID, "hacked", "hacked")
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}
	if repo.notes[note.ID].Title != "t" {
		t.Fatalf("foreign update persisted")
	}
}

func TestNoteUpdate_Missing(t *testing.T) {
	s, _, done := newNoteService(t)
	defer done()

	_, err := s.Update(context.Background(), alice, 99, "t", "c")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestNoteDelete_Owner(t *testing.T) {
	s, repo, done := newNoteService(t)
	defer done()

	note, _ := s.Create(context.Background(), alice, "t", "c")

	if err := s.Delete(context.Background(), alice, note.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.notes[note.ID]; ok {
		t.Fatalf("note not deleted")
	}
}

func TestNoteDelete_ForeignNoteForbidden(t *testing.T) {
	s, repo, done := newNoteService(t)
	defer done()

	note, _ := s.Create(context.Background(), alice, "t", "c")

	if err := s.Delete(context.Background(), bob, note.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}
	if _, ok := repo.notes[note.ID]; !ok {
		t.Fatalf("foreign delete persisted")
	}
}

func TestPresignAttachmentDownload_NoAttachment(t *testing.T) {
	s, _, done := newNoteService(t)
	defer done()

	note, _ := s.Create(context.Background(), alice, "t", "c")

	_, err := s.PresignAttachmentDownload(context.Background(), alice, note.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestPresignAttachment_ForeignNoteForbidden(t *testing.T) {
	s, _, done := newNoteService(t)
	defer done()

	note, _ := s.Create(context.Background(), alice, "t", "c")

	if _, _, err := s.PresignAttachmentUpload(context.Background(), bob, note.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("upload: want common.ErrorForbidden, got %v", err)
	}
	if _, err := s.PresignAttachmentDownload(context.Background(), bob, note.ID); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("download: want common.ErrorForbidden, got %v", err)
	}
}
