package service

import (
	"Moodboard/dao"
	"Moodboard/dao/cache"
	"Moodboard/models"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/log"
	"Moodboard/pkg/metrics"
	"Moodboard/types"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IReviewService = (*ReviewService)(nil)

type IReviewService interface {
	// Approve 图片及其全部 prompt 置为 APPROVED, 同一事务
	Approve(ctx context.Context, sno int64) (*types.CascadeResult, error)
	// Reject 图片及其全部 prompt 置为 REJECTED, 同一事务
	Reject(ctx context.Context, sno int64) (*types.CascadeResult, error)
	RateImage(ctx context.Context, sno int64, value int) error
	RatePrompt(ctx context.Context, serialNos int64, value int) error
	RateCorrelation(ctx context.Context, serialNos int64, value int) error
	Comment(ctx context.Context, sno int64, comments string) error
}

type ReviewService struct {
	ImageDao  *dao.Image
	PromptDao *dao.Prompt
	Locker    cache.Locker
}

func (s *ReviewService) Approve(ctx context.Context, sno int64) (*types.CascadeResult, error) {
	return s.review(ctx, sno, models.ImageStatusApproved)
}

func (s *ReviewService) Reject(ctx context.Context, sno int64) (*types.CascadeResult, error) {
	return s.review(ctx, sno, models.ImageStatusRejected)
}

func (s *ReviewService) review(ctx context.Context, sno int64, to models.ImageStatus) (*types.CascadeResult, error) {
	if err := checkSerial(sno); err != nil {
		return nil, err
	}
	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return applyTransition(ctx, s.ImageDao, s.PromptDao, sno, to, dao.ImageUpdate{})
}

// applyTransition 校验迁移并在一个事务里写图片和级联的 prompt 状态, 任一步失败整体回滚
func applyTransition(ctx context.Context, images *dao.Image, prompts *dao.Prompt, sno int64, to models.ImageStatus, fields dao.ImageUpdate) (*types.CascadeResult, error) {
	result := &types.CascadeResult{Sno: sno, Status: string(to)}
	var from models.ImageStatus

	err := images.Transaction(ctx, func(tx *gorm.DB) error {
		imageTx := images.WithTx(tx)
		img, err := imageTx.Get(ctx, sno)
		if err != nil {
			return err
		}
		if img == nil {
			return errs.ImageNotFound(sno)
		}

		from = img.Status.Normalize()
		if !from.CanTransitionTo(to) {
			return &errs.InvalidTransitionError{Sno: sno, From: string(from), To: string(to)}
		}

		fields.Status = &to
		if result.ImageRows, err = imageTx.Update(ctx, sno, fields); err != nil {
			return err
		}
		if cascade, ok := models.CascadeStatus(to); ok {
			if result.PromptRows, err = prompts.WithTx(tx).SetStatusBySno(ctx, sno, cascade); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errs.Store("review image", err)
	}

	metrics.ReviewTransitions.WithLabelValues(string(from), string(to)).Inc()
	log.L.Info("image status changed",
		zap.Int64("sno", sno),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Int64("prompts", result.PromptRows),
	)
	return result, nil
}

func (s *ReviewService) RateImage(ctx context.Context, sno int64, value int) error {
	if err := checkRange("image_feedback", value, models.ImageFeedbackMin, models.ImageFeedbackMax); err != nil {
		return err
	}
	rows, err := s.ImageDao.SetFeedback(ctx, sno, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ImageNotFound(sno)
	}
	return nil
}

func (s *ReviewService) RatePrompt(ctx context.Context, serialNos int64, value int) error {
	if err := checkRange("prompt_feedback", value, models.PromptFeedbackMin, models.PromptFeedbackMax); err != nil {
		return err
	}
	rows, err := s.PromptDao.SetFeedback(ctx, serialNos, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.PromptNotFound(serialNos)
	}
	return nil
}

func (s *ReviewService) RateCorrelation(ctx context.Context, serialNos int64, value int) error {
	if err := checkRange("correlation_feedback", value, models.CorrelationFeedbackMin, models.CorrelationFeedbackMax); err != nil {
		return err
	}
	rows, err := s.PromptDao.SetCorrelation(ctx, serialNos, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.PromptNotFound(serialNos)
	}
	return nil
}

func (s *ReviewService) Comment(ctx context.Context, sno int64, comments string) error {
	rows, err := s.ImageDao.SetComments(ctx, sno, comments)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ImageNotFound(sno)
	}
	return nil
}
