package dao

import (
	"Moodboard/models"
	"Moodboard/pkg/errs"
	"context"
	"errors"

	"gorm.io/gorm"
)

type Image struct {
	Repo[models.Image]
}

func NewImage(db *gorm.DB) *Image {
	return &Image{
		Repo: NewRepo[models.Image](db),
	}
}

// WithTx 绑定事务
func (u *Image) WithTx(tx *gorm.DB) *Image {
	return &Image{Repo: u.Repo.WithTx(tx)}
}

// ImageUpdate 部分更新, nil 字段不更新
type ImageUpdate struct {
	Image         *string
	ImagePath     *string
	Status        *models.ImageStatus
	ImageFeedback *int
	Comments      *string
}

func (f ImageUpdate) columns() map[string]any {
	cols := make(map[string]any)
	if f.Image != nil {
		cols["image"] = *f.Image
	}
	if f.ImagePath != nil {
		cols["image_path"] = *f.ImagePath
	}
	if f.Status != nil {
		cols["status"] = *f.Status
	}
	if f.ImageFeedback != nil {
		cols["image_feedback"] = *f.ImageFeedback
	}
	if f.Comments != nil {
		cols["comments"] = *f.Comments
	}
	return cols
}

// Empty 没有任何需要更新的字段
func (f ImageUpdate) Empty() bool {
	return len(f.columns()) == 0
}

// Create 新建图片记录, 序列号已存在时返回 DuplicateSerialError, 不覆盖
func (u *Image) Create(ctx context.Context, image *models.Image) error {
	err := u.Transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Image{}).Where("sno = ?", image.Sno).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &errs.DuplicateSerialError{Sno: image.Sno}
		}
		return tx.Create(image).Error
	})
	// 并发下检查通过但插入撞主键的一方
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &errs.DuplicateSerialError{Sno: image.Sno}
	}
	return errs.Store("create image", err)
}

// Update 部分更新, sno 不存在时返回 0 行而不是错误
func (u *Image) Update(ctx context.Context, sno int64, fields ImageUpdate) (int64, error) {
	cols := fields.columns()
	if len(cols) == 0 {
		return 0, nil
	}
	db, cancel := u.session(ctx)
	defer cancel()

	result := db.Model(&models.Image{}).Where("sno = ?", sno).Updates(cols)
	return result.RowsAffected, errs.Store("update image", result.Error)
}

// Exists 序列号是否存在
func (u *Image) Exists(ctx context.Context, sno int64) (bool, error) {
	exist, err := u.IsExist(ctx, "sno = ?", sno)
	return exist, errs.Store("exists image", err)
}

// Get 按序列号查询, 不存在返回 nil, nil
func (u *Image) Get(ctx context.Context, sno int64) (*models.Image, error) {
	image, err := u.FindByWhere(ctx, "sno = ?", sno)
	return image, errs.Store("get image", err)
}

// NextSerialNo max(sno)+1, 空表返回 1; 并发调用方可能拿到相同的值
func (u *Image) NextSerialNo(ctx context.Context) (int64, error) {
	db, cancel := u.session(ctx)
	defer cancel()

	var max int64
	err := db.Model(&models.Image{}).Select("COALESCE(MAX(sno), 0)").Scan(&max).Error
	if err != nil {
		return 0, errs.Store("next serial no", err)
	}
	return max + 1, nil
}

// SetStatus 更新图片状态
func (u *Image) SetStatus(ctx context.Context, sno int64, status models.ImageStatus) (int64, error) {
	return u.Update(ctx, sno, ImageUpdate{Status: &status})
}

// SetFeedback 更新图片评分
func (u *Image) SetFeedback(ctx context.Context, sno int64, feedback int) (int64, error) {
	return u.Update(ctx, sno, ImageUpdate{ImageFeedback: &feedback})
}

// SetComments 更新备注
func (u *Image) SetComments(ctx context.Context, sno int64, comments string) (int64, error) {
	return u.Update(ctx, sno, ImageUpdate{Comments: &comments})
}

// List 分页列出图片, 按 sno 升序
func (u *Image) List(ctx context.Context, limit, offset int) ([]*models.Image, int64, error) {
	db, cancel := u.session(ctx)
	defer cancel()

	var total int64
	if err := db.Model(&models.Image{}).Count(&total).Error; err != nil {
		return nil, 0, errs.Store("count images", err)
	}

	images := make([]*models.Image, 0, limit)
	err := db.Order("sno ASC").Limit(limit).Offset(offset).Find(&images).Error
	if err != nil {
		return nil, 0, errs.Store("list images", err)
	}
	return images, total, nil
}

// Neighbor 相邻的已存在序列号, forward 为 true 时取下一个
func (u *Image) Neighbor(ctx context.Context, sno int64, forward bool) (int64, bool, error) {
	db, cancel := u.session(ctx)
	defer cancel()

	query := db.Model(&models.Image{})
	if forward {
		query = query.Where("sno > ?", sno).Order("sno ASC")
	} else {
		query = query.Where("sno < ?", sno).Order("sno DESC")
	}

	var found []int64
	if err := query.Limit(1).Pluck("sno", &found).Error; err != nil {
		return 0, false, errs.Store("neighbor image", err)
	}
	if len(found) == 0 {
		return 0, false, nil
	}
	return found[0], true, nil
}

// Bounds 最小/最大序列号, 空表返回 0, 0
func (u *Image) Bounds(ctx context.Context) (int64, int64, error) {
	db, cancel := u.session(ctx)
	defer cancel()

	var res struct {
		MinSno int64
		MaxSno int64
	}
	err := db.Model(&models.Image{}).
		Select("COALESCE(MIN(sno), 0) AS min_sno, COALESCE(MAX(sno), 0) AS max_sno").
		Scan(&res).Error
	if err != nil {
		return 0, 0, errs.Store("image bounds", err)
	}
	return res.MinSno, res.MaxSno, nil
}
