package types

type CreatePromptRequest struct {
	Text string `json:"image_prompts" binding:"required"`
}

// BatchPromptRequest 每行一个 prompt
type BatchPromptRequest struct {
	Text string `json:"text" binding:"required"`
}

type BatchPromptResp struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}

// UpdatePromptRequest 按旧文本定位
type UpdatePromptRequest struct {
	OldText string `json:"old_text" binding:"required"`
	NewText string `json:"new_text" binding:"required"`
}

type EditPromptRequest struct {
	Text string `json:"image_prompts" binding:"required"`
}

type DeletePromptRequest struct {
	Text string `json:"image_prompts" binding:"required"`
}
