package dao

import (
	"Moodboard/config"
	"Moodboard/models"
	"Moodboard/pkg/database"
	"Moodboard/pkg/errs"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

func seedImage(t *testing.T, images *Image, sno int64) {
	t.Helper()
	require.NoError(t, images.Create(context.Background(), &models.Image{
		Sno:    sno,
		Image:  "image.jpg",
		Status: models.ImageStatusPending,
	}))
}

func seedPrompt(t *testing.T, prompts *Prompt, sno int64, text string) *models.Prompt {
	t.Helper()
	p := &models.Prompt{
		Sno:            sno,
		Text:           text,
		PromptFeedback: models.DefaultPromptFeedback,
		Status:         models.PromptStatusPending,
	}
	require.NoError(t, prompts.Create(context.Background(), p))
	return p
}

func TestImageCreateRejectsDuplicateSerial(t *testing.T) {
	ctx := context.Background()
	images := NewImage(newTestDB(t))
	seedImage(t, images, 42)

	err := images.Create(ctx, &models.Image{Sno: 42, Image: "other.jpg", Status: models.ImageStatusUploaded})
	var dup *errs.DuplicateSerialError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Serial No. 42 already exists", err.Error())

	stored, err := images.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "image.jpg", stored.Image)
	assert.Equal(t, models.ImageStatusPending, stored.Status)
}

func TestNextSerialNo(t *testing.T) {
	ctx := context.Background()
	images := NewImage(newTestDB(t))

	next, err := images.NextSerialNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	seedImage(t, images, 3)
	seedImage(t, images, 7)

	next, err = images.NextSerialNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), next)
}

func TestImageUpdateMissingSerialReportsZeroRows(t *testing.T) {
	ctx := context.Background()
	images := NewImage(newTestDB(t))

	name := "new.jpg"
	rows, err := images.Update(ctx, 404, ImageUpdate{Image: &name})
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestImagePartialUpdate(t *testing.T) {
	ctx := context.Background()
	images := NewImage(newTestDB(t))
	seedImage(t, images, 1)

	status := models.ImageStatusUploaded
	rows, err := images.Update(ctx, 1, ImageUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	stored, err := images.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ImageStatusUploaded, stored.Status)
	assert.Equal(t, "image.jpg", stored.Image)
	assert.Nil(t, stored.ImageFeedback)

	rows, err = images.Update(ctx, 1, ImageUpdate{})
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestImageNavigation(t *testing.T) {
	ctx := context.Background()
	images := NewImage(newTestDB(t))

	min, max, err := images.Bounds(ctx)
	require.NoError(t, err)
	assert.Zero(t, min)
	assert.Zero(t, max)

	for _, sno := range []int64{2, 5, 9} {
		seedImage(t, images, sno)
	}

	next, ok, err := images.Neighbor(ctx, 5, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(9), next)

	prev, ok, err := images.Neighbor(ctx, 5, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), prev)

	_, ok, err = images.Neighbor(ctx, 9, true)
	require.NoError(t, err)
	assert.False(t, ok)

	min, max, err = images.Bounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), min)
	assert.Equal(t, int64(9), max)

	page, total, err := images.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(5), page[0].Sno)
	assert.Equal(t, int64(9), page[1].Sno)
}

func TestPromptCreateRequiresImage(t *testing.T) {
	prompts := NewPrompt(newTestDB(t))

	err := prompts.Create(context.Background(), &models.Prompt{Sno: 77, Text: "orphan", PromptFeedback: 10, Status: models.PromptStatusPending})
	var fk *errs.ForeignKeyError
	require.ErrorAs(t, err, &fk)
	assert.Equal(t, int64(77), fk.Sno)
}

func TestPromptUniqueTextPerImage(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	images, prompts := NewImage(db), NewPrompt(db)
	seedImage(t, images, 1)
	seedImage(t, images, 2)
	seedPrompt(t, prompts, 1, "a cat in a hat")

	err := prompts.Create(ctx, &models.Prompt{Sno: 1, Text: "a cat in a hat", PromptFeedback: 10, Status: models.PromptStatusPending})
	assert.ErrorIs(t, err, errs.ErrDuplicatePrompt)

	// 不同图片可以有相同文本
	seedPrompt(t, prompts, 2, "a cat in a hat")
}

func TestPromptListOrderedByInsertion(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	images, prompts := NewImage(db), NewPrompt(db)
	seedImage(t, images, 1)
	for _, text := range []string{"c", "a", "b"} {
		seedPrompt(t, prompts, 1, text)
	}

	list, err := prompts.ListBySno(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Text)
	assert.Equal(t, "a", list[1].Text)
	assert.Equal(t, "b", list[2].Text)
	assert.Less(t, list[0].SerialNos, list[1].SerialNos)
	assert.Less(t, list[1].SerialNos, list[2].SerialNos)
}

func TestPromptUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	images, prompts := NewImage(db), NewPrompt(db)
	seedImage(t, images, 1)
	seedPrompt(t, prompts, 1, "a cat in a hat")
	other := seedPrompt(t, prompts, 1, "a bird")

	rows, err := prompts.UpdateText(ctx, 1, "a cat in a hat", "a dog in a hat")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = prompts.UpdateText(ctx, 1, "a dog in a hat", "a bird")
	assert.ErrorIs(t, err, errs.ErrDuplicatePrompt)

	rows, err = prompts.UpdateText(ctx, 1, "missing", "anything")
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = prompts.UpdateTextByID(ctx, other.SerialNos, "a bird on a wire")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = prompts.UpdateTextByID(ctx, 9999, "nothing")
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = prompts.Delete(ctx, 1, "a dog in a hat")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	list, err := prompts.ListBySno(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a bird on a wire", list[0].Text)
}

func TestPromptRatingsAndStatus(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	images, prompts := NewImage(db), NewPrompt(db)
	seedImage(t, images, 1)
	p1 := seedPrompt(t, prompts, 1, "P1")
	seedPrompt(t, prompts, 1, "P2")

	rows, err := prompts.SetFeedback(ctx, p1.SerialNos, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = prompts.SetCorrelation(ctx, p1.SerialNos, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = prompts.SetStatusBySno(ctx, 1, models.PromptStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	stored, err := prompts.Get(ctx, p1.SerialNos)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.PromptFeedback)
	require.NotNil(t, stored.CorrelationFeedback)
	assert.Equal(t, 6, *stored.CorrelationFeedback)
	assert.Equal(t, models.PromptStatusApproved, stored.Status)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	images := NewImage(db)
	seedImage(t, images, 1)

	err := images.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := images.WithTx(tx).SetStatus(ctx, 1, models.ImageStatusApproved); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	stored, err := images.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ImageStatusPending, stored.Status)
}
