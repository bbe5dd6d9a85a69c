package service

import (
	"Moodboard/dao/cache"
	"Moodboard/models"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/metrics"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptStatuses(t *testing.T, s *suite, sno int64) []models.PromptStatus {
	t.Helper()
	prompts, err := s.prompts.List(context.Background(), sno)
	require.NoError(t, err)
	statuses := make([]models.PromptStatus, 0, len(prompts))
	for _, p := range prompts {
		statuses = append(statuses, p.Status)
	}
	return statuses
}

func TestApproveThenRejectCascades(t *testing.T) {
	ctx := context.Background()
	s := newSuite(t)
	seedImages(t, s, 5)
	for _, text := range []string{"P1", "P2"} {
		_, err := s.prompts.Create(ctx, 5, text)
		require.NoError(t, err)
	}

	result, err := s.review.Approve(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ImageRows)
	assert.Equal(t, int64(2), result.PromptRows)
	assert.Equal(t, string(models.ImageStatusApproved), result.Status)
	assert.Equal(t, []models.PromptStatus{models.PromptStatusApproved, models.PromptStatusApproved}, promptStatuses(t, s, 5))

	img, err := s.images.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ImageStatusApproved, img.Status)

	_, err = s.review.Reject(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []models.PromptStatus{models.PromptStatusRejected, models.PromptStatusRejected}, promptStatuses(t, s, 5))

	img, err = s.images.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ImageStatusRejected, img.Status)
}

func TestApproveWithoutPrompts(t *testing.T) {
	s := newSuite(t)
	seedImages(t, s, 1)
	transitions := metrics.ReviewTransitions.WithLabelValues("UPLOADED", "APPROVED")
	before := testutil.ToFloat64(transitions)

	result, err := s.review.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.PromptRows)
	assert.Equal(t, before+1, testutil.ToFloat64(transitions))
}

func TestApproveMissingImage(t *testing.T) {
	s := newSuite(t)
	_, err := s.review.Approve(context.Background(), 404)
	assert.EqualError(t, err, "Serial No. 404 not found")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestReviewRollsBackWhenCascadeFails(t *testing.T) {
	ctx := context.Background()
	s := newSuite(t)
	seedImages(t, s, 5)
	require.NoError(t, s.db.Migrator().DropTable(&models.Prompt{}))

	_, err := s.review.Approve(ctx, 5)
	assert.ErrorIs(t, err, errs.ErrStore)

	img, err := s.images.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ImageStatusUploaded, img.Status)
}

func TestReviewReportsBusyWhileLocked(t *testing.T) {
	ctx := context.Background()
	s := newSuite(t)
	seedImages(t, s, 5)

	locker := cache.NewLocalLocker(50 * time.Millisecond)
	s.review.Locker = locker
	unlock, err := locker.Lock(ctx, cache.SerialLockKey(5))
	require.NoError(t, err)
	defer unlock()
	busyBefore := testutil.ToFloat64(metrics.LockBusy.WithLabelValues("serial"))

	_, err = s.review.Approve(ctx, 5)
	var busy *errs.BusyError
	require.ErrorAs(t, err, &busy)
	assert.Equal(t, int64(5), busy.Sno)
	assert.Equal(t, busyBefore+1, testutil.ToFloat64(metrics.LockBusy.WithLabelValues("serial")))
}

func TestRateImageIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newSuite(t)
	seedImages(t, s, 5)

	require.NoError(t, s.review.RateImage(ctx, 5, 7))
	once, err := s.images.Get(ctx, 5)
	require.NoError(t, err)

	require.NoError(t, s.review.RateImage(ctx, 5, 7))
	twice, err := s.images.Get(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, 7, once.Feedback())
	assert.Equal(t, once.Feedback(), twice.Feedback())
	assert.Equal(t, once.Status, twice.Status)
}

func TestRatingsValidateRange(t *testing.T) {
	ctx := context.Background()
	s := newSuite(t)
	seedImages(t, s, 5)
	p, err := s.prompts.Create(ctx, 5, "P1")
	require.NoError(t, err)

	require.NoError(t, s.review.RateImage(ctx, 5, 0))
	assert.ErrorIs(t, s.review.RateImage(ctx, 5, 11), errs.ErrRatingRange)
	assert.ErrorIs(t, s.review.RateImage(ctx, 5, -1), errs.ErrRatingRange)
	assert.ErrorIs(t, s.review.RateImage(ctx, 6, 5), errs.ErrNotFound)

	require.NoError(t, s.review.RatePrompt(ctx, p.SerialNos, 3))
	assert.ErrorIs(t, s.review.RatePrompt(ctx, p.SerialNos, 0), errs.ErrRatingRange)
	assert.ErrorIs(t, s.review.RatePrompt(ctx, 999, 3), errs.ErrNotFound)

	require.NoError(t, s.review.RateCorrelation(ctx, p.SerialNos, 9))
	err = s.review.RateCorrelation(ctx, p.SerialNos, 11)
	assert.EqualError(t, err, "correlation_feedback 11 out of range [1, 10]")

	prompts, err := s.prompts.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, 3, prompts[0].PromptFeedback)
	require.NotNil(t, prompts[0].CorrelationFeedback)
	assert.Equal(t, 9, *prompts[0].CorrelationFeedback)
	assert.Equal(t, models.PromptStatusPending, prompts[0].Status)
}

func TestComment(t *testing.T) {
	ctx := context.Background()
	s := newSuite(t)
	seedImages(t, s, 5)

	require.NoError(t, s.review.Comment(ctx, 5, "blurry background"))
	img, err := s.images.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, img.Comments)
	assert.Equal(t, "blurry background", *img.Comments)

	assert.ErrorIs(t, s.review.Comment(ctx, 6, "x"), errs.ErrNotFound)
}
