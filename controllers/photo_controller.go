package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"puffpoint-backend/app"
	"puffpoint-backend/models"
	"puffpoint-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const rejectReason = "Rejected by admin"

// PhotoStore is the slice of the repo the photo controller needs.
type PhotoStore interface {
	CreatePhoto(ctx context.Context, p *models.SpotPhoto) error
	FindPhotoByID(ctx context.Context, id string) (*models.SpotPhoto, error)
	RejectPhoto(ctx context.Context, id, reason string) error
	ApprovePhoto(ctx context.Context, id, storagePath, thumbPath string) error
	ListPendingPhotos(ctx context.Context, limit int) ([]models.SpotPhoto, error)
}

type PhotoController struct {
	store   PhotoStore
	objects storage.ObjectStore
}

func GetPhotoController(store PhotoStore, objects storage.ObjectStore) *PhotoController {
	return &PhotoController{store: store, objects: objects}
}

// POST /api/spots/:id/photos
// 上传进 tmp/，待审核；审核通过才搬到 spots/ 下
func (pc *PhotoController) Upload(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	spotID := c.Param("id")

	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "photo file required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "unreadable upload"})
		return
	}

	key := "tmp/" + uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	if err := pc.objects.Put(c.Request.Context(), key, data); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	p := &models.SpotPhoto{
		ID:               uuid.NewString(),
		SpotID:           spotID,
		UploadedBy:       uid,
		StoragePath:      key,
		ModerationStatus: models.ModerationPending,
	}
	if err := pc.store.CreatePhoto(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"photo": p})
}

// GET /api/photos/pending?limit=
func (pc *PhotoController) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	ps, err := pc.store.ListPendingPhotos(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"photos": ps})
}

// POST /api/photos/:id/moderate
func (pc *PhotoController) Moderate(c *gin.Context) {
	photoID := c.Param("id")

	var in struct {
		Action string `json:"action" binding:"required,oneof=approve reject"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "photoId and action required"})
		return
	}

	photo, err := pc.store.FindPhotoByID(c.Request.Context(), photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	if in.Action == "reject" {
		// 不动对象存储，只改审核状态
		if err := pc.store.RejectPhoto(c.Request.Context(), photoID, rejectReason); err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, app.H{"ok": true})
		return
	}

	if err := pc.approve(c.Request.Context(), photo); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// approve 拷贝对象 → 生成缩略图 → 更新文档 → 尽力删临时对象。
// 对象操作与文档更新没有事务关联：中途失败最多留下孤儿对象，文档可重审。
func (pc *PhotoController) approve(ctx context.Context, photo *models.SpotPhoto) error {
	src := photo.StoragePath
	dest := "spots/" + photo.SpotID + "/" + path.Base(src)

	data, err := pc.objects.Get(ctx, src)
	if err != nil {
		return err
	}
	if src != dest {
		if err := pc.objects.Put(ctx, dest, data); err != nil {
			return err
		}
	}

	thumb, err := storage.Thumbnail(data)
	if err != nil {
		return err
	}
	thumbKey := storage.ThumbKey(dest)
	if err := pc.objects.Put(ctx, thumbKey, thumb); err != nil {
		return err
	}

	if err := pc.store.ApprovePhoto(ctx, photo.ID, dest, thumbKey); err != nil {
		return err
	}

	if src != dest {
		_ = pc.objects.Delete(ctx, src) // 删不掉就留着，属可接受垃圾
	}
	return nil
}
