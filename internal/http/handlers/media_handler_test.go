package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
	"github.com/Quangqueee/hanoi-residences/internal/storage"
)

// fixedMediaStore keeps media rows in memory for handler tests.
type fixedMediaStore struct {
	files   map[uuid.UUID]*models.MediaFile
	deleted []uuid.UUID
}

func (s *fixedMediaStore) Create(_ context.Context, media *models.MediaFile) error {
	media.ID = uuid.New()
	s.files[media.ID] = media
	return nil
}

func (s *fixedMediaStore) GetByID(_ context.Context, id uuid.UUID) (*models.MediaFile, error) {
	if f, ok := s.files[id]; ok {
		return f, nil
	}
	return nil, repository.ErrMediaNotFound
}

func (s *fixedMediaStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.files, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func newMediaTestRouter(t *testing.T, store *fixedMediaStore, userID uuid.UUID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	photos, err := storage.NewPhotoStorage(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("photo storage: %v", err)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	})
	handler := NewMediaHandler(store, photos)
	r.DELETE("/media/:id", handler.DeleteMedia)
	return r
}

func TestMediaHandler_DeleteMedia_OwnerAllowed(t *testing.T) {
	ownerID := uuid.New()
	fileID := uuid.New()
	store := &fixedMediaStore{files: map[uuid.UUID]*models.MediaFile{
		fileID: {ID: fileID, UserID: &ownerID, FilePath: "a/b.jpg"},
	}}
	r := newMediaTestRouter(t, store, ownerID, models.RoleUser)

	req, _ := http.NewRequest("DELETE", "/media/"+fileID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, store.deleted, 1)
}

func TestMediaHandler_DeleteMedia_StrangerForbidden(t *testing.T) {
	ownerID := uuid.New()
	fileID := uuid.New()
	store := &fixedMediaStore{files: map[uuid.UUID]*models.MediaFile{
		fileID: {ID: fileID, UserID: &ownerID, FilePath: "a/b.jpg"},
	}}
	r := newMediaTestRouter(t, store, uuid.New(), models.RoleUser)

	req, _ := http.NewRequest("DELETE", "/media/"+fileID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, store.deleted)
}

func TestMediaHandler_DeleteMedia_AdminOverridesOwnership(t *testing.T) {
	ownerID := uuid.New()
	fileID := uuid.New()
	store := &fixedMediaStore{files: map[uuid.UUID]*models.MediaFile{
		fileID: {ID: fileID, UserID: &ownerID, FilePath: "a/b.jpg"},
	}}
	r := newMediaTestRouter(t, store, uuid.New(), models.RoleAdmin)

	req, _ := http.NewRequest("DELETE", "/media/"+fileID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, store.deleted, 1)
}
