package models

import "time"

const (
	ImageFeedbackMin     = 0
	ImageFeedbackMax     = 10
	DefaultImageFeedback = 10
)

type Image struct {
	Sno           int64       `gorm:"column:sno;primaryKey;autoIncrement:false" json:"sno"`
	Image         string      `gorm:"column:image;type:varchar(255);not null;default:''" json:"image"`
	ImagePath     string      `gorm:"column:image_path;type:varchar(512);not null;default:''" json:"image_path"`
	Status        ImageStatus `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index:idx_images_status" json:"status"`
	ImageFeedback *int        `gorm:"column:image_feedback" json:"image_feedback"`
	Comments      *string     `gorm:"column:comments;type:text" json:"comments"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at" json:"updated_at"`

	// prompts.sno 外键指向 images.sno, 有 prompt 的图片不能删除
	Prompts []Prompt `gorm:"foreignKey:Sno;references:Sno;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName 显式指定表名
func (Image) TableName() string {
	return "images"
}

// Feedback 未评分时按 10 分展示
func (i *Image) Feedback() int {
	if i.ImageFeedback == nil {
		return DefaultImageFeedback
	}
	return *i.ImageFeedback
}
