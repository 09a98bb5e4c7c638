package controllers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"puffpoint-backend/app"
	"puffpoint-backend/models"
	"puffpoint-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type fakePhotoStore struct {
	photos map[string]*models.SpotPhoto
}

func (f *fakePhotoStore) CreatePhoto(ctx context.Context, p *models.SpotPhoto) error {
	cp := *p
	f.photos[p.ID] = &cp
	return nil
}

func (f *fakePhotoStore) FindPhotoByID(ctx context.Context, id string) (*models.SpotPhoto, error) {
	p, ok := f.photos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePhotoStore) RejectPhoto(ctx context.Context, id, reason string) error {
	p := f.photos[id]
	p.ModerationStatus = models.ModerationRejected
	p.ModerationReason = &reason
	return nil
}

func (f *fakePhotoStore) ApprovePhoto(ctx context.Context, id, storagePath, thumbPath string) error {
	p := f.photos[id]
	p.StoragePath = storagePath
	p.ThumbPath = &thumbPath
	p.ModerationStatus = models.ModerationApproved
	p.ModerationReason = nil
	return nil
}

func (f *fakePhotoStore) ListPendingPhotos(ctx context.Context, limit int) ([]models.SpotPhoto, error) {
	var out []models.SpotPhoto
	for _, p := range f.photos {
		if p.ModerationStatus == models.ModerationPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

// memObjects is an in-memory ObjectStore.
type memObjects struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemObjects() *memObjects { return &memObjects{data: map[string][]byte{}} }

func (m *memObjects) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (m *memObjects) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memObjects) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newPhotoRouter(store *fakePhotoStore, objects storage.ObjectStore, admin, mod bool) *gin.Engine {
	pc := GetPhotoController(store, objects)
	r := gin.New()
	g := r.Group("", authAs("mod-1", admin, mod), app.ModeratorOnly())
	g.POST("/api/photos/:id/moderate", pc.Moderate)
	g.GET("/api/photos/pending", pc.ListPending)
	return r
}

func pendingPhoto(id, spotID, path string) *models.SpotPhoto {
	return &models.SpotPhoto{
		ID: id, SpotID: spotID, StoragePath: path,
		ModerationStatus: models.ModerationPending,
	}
}

func TestModerateRequiresModOrAdmin(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{
		"p1": pendingPhoto("p1", "s1", "tmp/a.png"),
	}}
	r := newPhotoRouter(store, newMemObjects(), false, false)

	w := performJSON(t, r, http.MethodPost, "/api/photos/p1/moderate", `{"action":"reject"}`)
	wantStatus(t, w, http.StatusForbidden)
}

func TestModerateReject(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{
		"p1": pendingPhoto("p1", "s1", "tmp/a.png"),
	}}
	objects := newMemObjects()
	objects.data["tmp/a.png"] = pngBytes(t, 10, 10)
	r := newPhotoRouter(store, objects, false, true)

	w := performJSON(t, r, http.MethodPost, "/api/photos/p1/moderate", `{"action":"reject"}`)
	wantStatus(t, w, http.StatusOK)

	p := store.photos["p1"]
	if p.ModerationStatus != models.ModerationRejected {
		t.Fatalf("status = %q", p.ModerationStatus)
	}
	if p.ModerationReason == nil || *p.ModerationReason != "Rejected by admin" {
		t.Fatalf("reason = %v", p.ModerationReason)
	}
	if p.StoragePath != "tmp/a.png" {
		t.Fatalf("storagePath changed on reject: %q", p.StoragePath)
	}
	if _, ok := objects.data["tmp/a.png"]; !ok {
		t.Fatal("reject must not touch object storage")
	}
}

func TestModerateApprove(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{
		"p1": pendingPhoto("p1", "s1", "tmp/a.png"),
	}}
	objects := newMemObjects()
	objects.data["tmp/a.png"] = pngBytes(t, 800, 600)
	r := newPhotoRouter(store, objects, true, false)

	w := performJSON(t, r, http.MethodPost, "/api/photos/p1/moderate", `{"action":"approve"}`)
	wantStatus(t, w, http.StatusOK)

	p := store.photos["p1"]
	if p.StoragePath != "spots/s1/a.png" {
		t.Fatalf("storagePath = %q", p.StoragePath)
	}
	if p.ThumbPath == nil || *p.ThumbPath != "spots/s1/a_thumb.png" {
		t.Fatalf("thumbPath = %v", p.ThumbPath)
	}
	if p.ModerationStatus != models.ModerationApproved || p.ModerationReason != nil {
		t.Fatalf("moderation = %q / %v", p.ModerationStatus, p.ModerationReason)
	}
	if _, ok := objects.data["spots/s1/a.png"]; !ok {
		t.Fatal("object not copied to destination")
	}
	if _, ok := objects.data["spots/s1/a_thumb.png"]; !ok {
		t.Fatal("thumbnail not written")
	}
	if _, ok := objects.data["tmp/a.png"]; ok {
		t.Fatal("temp object should be deleted after approve")
	}
}

// 已经 approved 的照片再 approve 一次：目的路径不变，photo 状态不变坏
func TestModerateApproveIdempotent(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{
		"p1": pendingPhoto("p1", "s1", "tmp/a.png"),
	}}
	objects := newMemObjects()
	objects.data["tmp/a.png"] = pngBytes(t, 800, 600)
	r := newPhotoRouter(store, objects, true, false)

	w := performJSON(t, r, http.MethodPost, "/api/photos/p1/moderate", `{"action":"approve"}`)
	wantStatus(t, w, http.StatusOK)
	w = performJSON(t, r, http.MethodPost, "/api/photos/p1/moderate", `{"action":"approve"}`)
	wantStatus(t, w, http.StatusOK)

	p := store.photos["p1"]
	if p.StoragePath != "spots/s1/a.png" || p.ModerationStatus != models.ModerationApproved {
		t.Fatalf("photo after double approve: %+v", p)
	}
	if _, ok := objects.data["spots/s1/a.png"]; !ok {
		t.Fatal("approved object must survive re-approval")
	}
}

func TestModeratePhotoNotFound(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{}}
	r := newPhotoRouter(store, newMemObjects(), true, false)

	w := performJSON(t, r, http.MethodPost, "/api/photos/ghost/moderate", `{"action":"reject"}`)
	wantStatus(t, w, http.StatusNotFound)
}

func TestModerateBadAction(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{
		"p1": pendingPhoto("p1", "s1", "tmp/a.png"),
	}}
	r := newPhotoRouter(store, newMemObjects(), true, false)

	w := performJSON(t, r, http.MethodPost, "/api/photos/p1/moderate", `{"action":"delete"}`)
	wantStatus(t, w, http.StatusBadRequest)
}

func newUploadRouter(store *fakePhotoStore, objects storage.ObjectStore, uid string) *gin.Engine {
	pc := GetPhotoController(store, objects)
	r := gin.New()
	g := r.Group("", authAs(uid, false, false))
	g.POST("/api/spots/:id/photos", pc.Upload)
	return r
}

func performUpload(t *testing.T, r *gin.Engine, path, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadPhoto(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{}}
	objects := newMemObjects()
	r := newUploadRouter(store, objects, "user-1")

	img := pngBytes(t, 10, 10)
	w := performUpload(t, r, "/api/spots/s1/photos", "photo", "pic.PNG", img)
	wantStatus(t, w, http.StatusCreated)

	if len(store.photos) != 1 {
		t.Fatalf("photos stored = %d", len(store.photos))
	}
	var p *models.SpotPhoto
	for _, v := range store.photos {
		p = v
	}
	if p.SpotID != "s1" || p.UploadedBy != "user-1" {
		t.Fatalf("photo record = %+v", p)
	}
	if p.ModerationStatus != models.ModerationPending {
		t.Fatalf("status = %q", p.ModerationStatus)
	}
	if !strings.HasPrefix(p.StoragePath, "tmp/") || !strings.HasSuffix(p.StoragePath, ".png") {
		t.Fatalf("storagePath = %q", p.StoragePath)
	}
	got, ok := objects.data[p.StoragePath]
	if !ok || !bytes.Equal(got, img) {
		t.Fatalf("object not stored under %q", p.StoragePath)
	}
}

func TestUploadPhotoMissingFile(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{}}
	r := newUploadRouter(store, newMemObjects(), "user-1")

	w := performJSON(t, r, http.MethodPost, "/api/spots/s1/photos", `{}`)
	wantStatus(t, w, http.StatusBadRequest)
}

func TestUploadPhotoRequiresLogin(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{}}
	r := newUploadRouter(store, newMemObjects(), "")

	w := performUpload(t, r, "/api/spots/s1/photos", "photo", "pic.png", pngBytes(t, 4, 4))
	wantStatus(t, w, http.StatusUnauthorized)
}

// 上传 → 审核通过的完整链路
func TestUploadThenApprove(t *testing.T) {
	store := &fakePhotoStore{photos: map[string]*models.SpotPhoto{}}
	objects := newMemObjects()

	up := newUploadRouter(store, objects, "user-1")
	w := performUpload(t, up, "/api/spots/s1/photos", "photo", "pic.png", pngBytes(t, 800, 600))
	wantStatus(t, w, http.StatusCreated)

	var id string
	for k := range store.photos {
		id = k
	}
	mod := newPhotoRouter(store, objects, false, true)
	w = performJSON(t, mod, http.MethodPost, "/api/photos/"+id+"/moderate", `{"action":"approve"}`)
	wantStatus(t, w, http.StatusOK)

	p := store.photos[id]
	if !strings.HasPrefix(p.StoragePath, "spots/s1/") {
		t.Fatalf("final storagePath = %q", p.StoragePath)
	}
	if p.ThumbPath == nil || !strings.Contains(*p.ThumbPath, "_thumb") {
		t.Fatalf("thumbPath = %v", p.ThumbPath)
	}
}
