package dao

import (
	"Moodboard/models"
	"Moodboard/pkg/errs"
	"context"
	"errors"

	"gorm.io/gorm"
)

type Prompt struct {
	Repo[models.Prompt]
}

func NewPrompt(db *gorm.DB) *Prompt {
	return &Prompt{
		Repo: NewRepo[models.Prompt](db),
	}
}

// WithTx 绑定事务
func (d *Prompt) WithTx(tx *gorm.DB) *Prompt {
	return &Prompt{Repo: d.Repo.WithTx(tx)}
}

// ListBySno 某张图片下的全部 prompt, 按 serial_nos 升序
func (d *Prompt) ListBySno(ctx context.Context, sno int64) ([]*models.Prompt, error) {
	db, cancel := d.session(ctx)
	defer cancel()

	prompts := make([]*models.Prompt, 0)
	err := db.Where("sno = ?", sno).Order("serial_nos ASC").Find(&prompts).Error
	return prompts, errs.Store("list prompts", err)
}

// Get 按行号查询, 不存在返回 nil, nil
func (d *Prompt) Get(ctx context.Context, serialNos int64) (*models.Prompt, error) {
	prompt, err := d.FindByWhere(ctx, "serial_nos = ?", serialNos)
	return prompt, errs.Store("get prompt", err)
}

// ExistsText 同一张图下是否已有相同文本
func (d *Prompt) ExistsText(ctx context.Context, sno int64, text string) (bool, error) {
	exist, err := d.IsExist(ctx, "sno = ? AND image_prompts = ?", sno, text)
	return exist, errs.Store("exists prompt", err)
}

// Create 新建 prompt, 图片不存在时返回 ForeignKeyError
func (d *Prompt) Create(ctx context.Context, prompt *models.Prompt) error {
	err := d.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Image{}).Where("sno = ?", prompt.Sno).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &errs.ForeignKeyError{Sno: prompt.Sno}
		}
		return tx.Create(prompt).Error
	})
	return d.translate("create prompt", prompt.Sno, prompt.Text, err)
}

// UpdateText 按 (sno, 旧文本) 改写文本
func (d *Prompt) UpdateText(ctx context.Context, sno int64, oldText, newText string) (int64, error) {
	db, cancel := d.session(ctx)
	defer cancel()

	result := db.Model(&models.Prompt{}).
		Where("sno = ? AND image_prompts = ?", sno, oldText).
		Update("image_prompts", newText)
	return result.RowsAffected, d.translate("update prompt", sno, newText, result.Error)
}

// UpdateTextByID 按行号改写文本
func (d *Prompt) UpdateTextByID(ctx context.Context, serialNos int64, newText string) (int64, error) {
	var (
		rows int64
		sno  int64
	)
	err := d.Transaction(ctx, func(tx *gorm.DB) error {
		var prompt models.Prompt
		err := tx.Where("serial_nos = ?", serialNos).Take(&prompt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		sno = prompt.Sno
		result := tx.Model(&models.Prompt{}).
			Where("serial_nos = ?", serialNos).
			Update("image_prompts", newText)
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, d.translate("update prompt", sno, newText, err)
	}
	return rows, nil
}

// Delete 按 (sno, 文本) 删除
func (d *Prompt) Delete(ctx context.Context, sno int64, text string) (int64, error) {
	db, cancel := d.session(ctx)
	defer cancel()

	result := db.Where("sno = ? AND image_prompts = ?", sno, text).Delete(&models.Prompt{})
	return result.RowsAffected, errs.Store("delete prompt", result.Error)
}

// SetStatusBySno 批量更新某张图片下全部 prompt 的状态
func (d *Prompt) SetStatusBySno(ctx context.Context, sno int64, status models.PromptStatus) (int64, error) {
	db, cancel := d.session(ctx)
	defer cancel()

	result := db.Model(&models.Prompt{}).Where("sno = ?", sno).Update("status", status)
	return result.RowsAffected, errs.Store("set prompts status", result.Error)
}

// SetFeedback 更新 prompt 评分
func (d *Prompt) SetFeedback(ctx context.Context, serialNos int64, feedback int) (int64, error) {
	return d.updateColumn(ctx, "set prompt feedback", serialNos, "prompt_feedback", feedback)
}

// SetCorrelation 更新图文相关性评分
func (d *Prompt) SetCorrelation(ctx context.Context, serialNos int64, feedback int) (int64, error) {
	return d.updateColumn(ctx, "set correlation feedback", serialNos, "correlation_feedback", feedback)
}

func (d *Prompt) updateColumn(ctx context.Context, op string, serialNos int64, column string, value any) (int64, error) {
	db, cancel := d.session(ctx)
	defer cancel()

	result := db.Model(&models.Prompt{}).Where("serial_nos = ?", serialNos).Update(column, value)
	return result.RowsAffected, errs.Store(op, result.Error)
}

func (d *Prompt) translate(op string, sno int64, text string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &errs.DuplicatePromptError{Sno: sno, Text: text}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &errs.ForeignKeyError{Sno: sno}
	}
	return errs.Store(op, err)
}
