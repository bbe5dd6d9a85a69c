package service

import (
	"Moodboard/config"
	"Moodboard/dao"
	"Moodboard/dao/cache"
	"Moodboard/pkg/blob"
	"Moodboard/pkg/database"
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPrefix = "Prompts/Final images moodboard"

type suite struct {
	db      *gorm.DB
	blob    *blob.MemoryStore
	images  *ImageService
	prompts *PromptService
	review  *ReviewService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conf := &config.Database{
		Driver:       config.DriverSQLite,
		Path:         "file:" + filepath.Join(t.TempDir(), "review.db") + "?_foreign_keys=1",
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}
	db, err := database.Open(conf, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	db := newTestDB(t)
	imageDao := dao.NewImage(db)
	promptDao := dao.NewPrompt(db)
	locker := cache.NewLocalLocker(2 * time.Second)
	store := blob.NewMemory()

	return &suite{
		db:   db,
		blob: store,
		images: &ImageService{
			ImageDao:  imageDao,
			PromptDao: promptDao,
			Locker:    locker,
			Blob:      store,
			BlobConf:  &config.Blob{Driver: config.BlobDriverMemory, Prefix: testPrefix, Timeout: 5},
		},
		prompts: &PromptService{ImageDao: imageDao, PromptDao: promptDao, Locker: locker},
		review:  &ReviewService{ImageDao: imageDao, PromptDao: promptDao, Locker: locker},
	}
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 3))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}
