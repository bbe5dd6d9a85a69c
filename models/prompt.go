package models

import "time"

const (
	PromptFeedbackMin     = 1
	PromptFeedbackMax     = 10
	DefaultPromptFeedback = 10

	CorrelationFeedbackMin = 1
	CorrelationFeedbackMax = 10

	// PromptTextMaxLen 与 image_prompts 列宽一致
	PromptTextMaxLen = 512
)

type Prompt struct {
	SerialNos           int64        `gorm:"column:serial_nos;primaryKey;autoIncrement" json:"serial_nos"`
	Sno                 int64        `gorm:"column:sno;not null;uniqueIndex:idx_prompts_sno_text,priority:1" json:"sno"`
	Text                string       `gorm:"column:image_prompts;type:varchar(512);not null;uniqueIndex:idx_prompts_sno_text,priority:2" json:"image_prompts"`
	PromptFeedback      int          `gorm:"column:prompt_feedback;not null;default:10" json:"prompt_feedback"`
	CorrelationFeedback *int         `gorm:"column:correlation_feedback" json:"correlation_feedback"`
	Status              PromptStatus `gorm:"column:status;type:varchar(16);not null;default:'PENDING'" json:"status"`
	CreatedAt           time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Prompt) TableName() string {
	return "prompts"
}
