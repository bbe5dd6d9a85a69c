package models

// ImageStatus 图片审核状态
type ImageStatus string

const (
	ImageStatusPending  ImageStatus = "PENDING"
	ImageStatusUploaded ImageStatus = "UPLOADED"
	ImageStatusApproved ImageStatus = "APPROVED"
	ImageStatusRejected ImageStatus = "REJECTED"
)

// imageTransitions 允许的状态迁移, 不允许回到 PENDING
var imageTransitions = map[ImageStatus]map[ImageStatus]bool{
	ImageStatusPending: {
		ImageStatusUploaded: true,
		ImageStatusApproved: true,
		ImageStatusRejected: true,
	},
	ImageStatusUploaded: {
		ImageStatusUploaded: true,
		ImageStatusApproved: true,
		ImageStatusRejected: true,
	},
	ImageStatusApproved: {
		ImageStatusUploaded: true,
		ImageStatusApproved: true,
		ImageStatusRejected: true,
	},
	ImageStatusRejected: {
		ImageStatusUploaded: true,
		ImageStatusApproved: true,
		ImageStatusRejected: true,
	},
}

func (s ImageStatus) Valid() bool {
	_, ok := imageTransitions[s]
	return ok
}

// Normalize 空值视为 PENDING
func (s ImageStatus) Normalize() ImageStatus {
	if s == "" {
		return ImageStatusPending
	}
	return s
}

// CanTransitionTo 状态机校验
func (s ImageStatus) CanTransitionTo(to ImageStatus) bool {
	return imageTransitions[s.Normalize()][to]
}

// PromptStatus prompt 审核状态, 跟随所属图片级联
type PromptStatus string

const (
	PromptStatusPending  PromptStatus = "PENDING"
	PromptStatusApproved PromptStatus = "APPROVED"
	PromptStatusRejected PromptStatus = "REJECTED"
)

func (s PromptStatus) Valid() bool {
	switch s {
	case PromptStatusPending, PromptStatusApproved, PromptStatusRejected:
		return true
	}
	return false
}

// CascadeStatus 图片审核结果对应的 prompt 状态
func CascadeStatus(s ImageStatus) (PromptStatus, bool) {
	switch s {
	case ImageStatusApproved:
		return PromptStatusApproved, true
	case ImageStatusRejected:
		return PromptStatusRejected, true
	}
	return "", false
}
