package service

import (
	"Moodboard/dao"
	"Moodboard/dao/cache"
	"Moodboard/models"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/log"
	"Moodboard/types"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var _ IPromptService = (*PromptService)(nil)

type IPromptService interface {
	List(ctx context.Context, sno int64) ([]*models.Prompt, error)
	// Create 新增 prompt, 图片必须存在且同一图片下文本不重复
	Create(ctx context.Context, sno int64, text string) (*models.Prompt, error)
	// CreateBatch 每行一个 prompt, 空行跳过, 重复的记入 Skipped
	CreateBatch(ctx context.Context, sno int64, text string) (*types.BatchPromptResp, error)
	// Update 按 (sno, 旧文本) 改写
	Update(ctx context.Context, sno int64, oldText, newText string) error
	// UpdateByID 按行号改写
	UpdateByID(ctx context.Context, serialNos int64, newText string) (*models.Prompt, error)
	Delete(ctx context.Context, sno int64, text string) error
}

type PromptService struct {
	ImageDao  *dao.Image
	PromptDao *dao.Prompt
	Locker    cache.Locker
}

func (s *PromptService) List(ctx context.Context, sno int64) ([]*models.Prompt, error) {
	return s.PromptDao.ListBySno(ctx, sno)
}

func (s *PromptService) Create(ctx context.Context, sno int64, text string) (*models.Prompt, error) {
	if err := checkSerial(sno); err != nil {
		return nil, err
	}
	text, err := normalizePrompt(text)
	if err != nil {
		return nil, err
	}

	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.ensureImage(ctx, sno); err != nil {
		return nil, err
	}
	return s.create(ctx, sno, text)
}

// create 调用方持有序列号锁
func (s *PromptService) create(ctx context.Context, sno int64, text string) (*models.Prompt, error) {
	prompts, err := s.PromptDao.ListBySno(ctx, sno)
	if err != nil {
		return nil, err
	}
	for _, p := range prompts {
		if p.Text == text {
			return nil, &errs.DuplicatePromptError{Sno: sno, Text: text}
		}
	}

	prompt := &models.Prompt{
		Sno:            sno,
		Text:           text,
		PromptFeedback: models.DefaultPromptFeedback,
		Status:         models.PromptStatusPending,
	}
	if err := s.PromptDao.Create(ctx, prompt); err != nil {
		return nil, err
	}
	log.L.Info("prompt created", zap.Int64("sno", sno), zap.Int64("serial_nos", prompt.SerialNos))
	return prompt, nil
}

func (s *PromptService) ensureImage(ctx context.Context, sno int64) error {
	exist, err := s.ImageDao.Exists(ctx, sno)
	if err != nil {
		return err
	}
	if !exist {
		return &errs.ForeignKeyError{Sno: sno}
	}
	return nil
}

func (s *PromptService) CreateBatch(ctx context.Context, sno int64, text string) (*types.BatchPromptResp, error) {
	if err := checkSerial(sno); err != nil {
		return nil, err
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, errs.Invalid("text", "Prompt cannot be empty")
	}

	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.ensureImage(ctx, sno); err != nil {
		return nil, err
	}

	resp := &types.BatchPromptResp{Added: make([]string, 0, len(lines)), Skipped: make([]string, 0)}
	for _, line := range lines {
		line, err := normalizePrompt(line)
		if err != nil {
			return resp, err
		}
		if _, err := s.create(ctx, sno, line); err != nil {
			if errors.Is(err, errs.ErrDuplicatePrompt) {
				resp.Skipped = append(resp.Skipped, line)
				continue
			}
			return resp, err
		}
		resp.Added = append(resp.Added, line)
	}
	return resp, nil
}

func (s *PromptService) Update(ctx context.Context, sno int64, oldText, newText string) error {
	if err := checkSerial(sno); err != nil {
		return err
	}
	oldText = strings.TrimSpace(oldText)
	newText, err := normalizePrompt(newText)
	if err != nil {
		return err
	}

	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return err
	}
	defer unlock()

	if newText != oldText {
		exist, err := s.PromptDao.ExistsText(ctx, sno, newText)
		if err != nil {
			return err
		}
		if exist {
			return &errs.DuplicatePromptError{Sno: sno, Text: newText}
		}
	}

	rows, err := s.PromptDao.UpdateText(ctx, sno, oldText, newText)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.PromptTextNotFound(sno, oldText)
	}
	return nil
}

func (s *PromptService) UpdateByID(ctx context.Context, serialNos int64, newText string) (*models.Prompt, error) {
	newText, err := normalizePrompt(newText)
	if err != nil {
		return nil, err
	}
	prompt, err := s.PromptDao.Get(ctx, serialNos)
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, errs.PromptNotFound(serialNos)
	}

	unlock, err := lockSerial(ctx, s.Locker, prompt.Sno)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if newText != prompt.Text {
		exist, err := s.PromptDao.ExistsText(ctx, prompt.Sno, newText)
		if err != nil {
			return nil, err
		}
		if exist {
			return nil, &errs.DuplicatePromptError{Sno: prompt.Sno, Text: newText}
		}
	}

	rows, err := s.PromptDao.UpdateTextByID(ctx, serialNos, newText)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errs.PromptNotFound(serialNos)
	}
	prompt.Text = newText
	return prompt, nil
}

func (s *PromptService) Delete(ctx context.Context, sno int64, text string) error {
	if err := checkSerial(sno); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return err
	}
	defer unlock()

	rows, err := s.PromptDao.Delete(ctx, sno, text)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.PromptTextNotFound(sno, text)
	}
	log.L.Info("prompt deleted", zap.Int64("sno", sno))
	return nil
}
