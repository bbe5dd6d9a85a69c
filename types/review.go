package types

// CascadeResult 审核结果及级联影响的行数
type CascadeResult struct {
	Sno        int64  `json:"sno"`
	Status     string `json:"status"`
	ImageRows  int64  `json:"image_rows"`
	PromptRows int64  `json:"prompt_rows"`
}

// RatingRequest 评分, 指针用于区分未传和 0
type RatingRequest struct {
	Value *int `json:"value" binding:"required"`
}

type CommentsRequest struct {
	Comments string `json:"comments"`
}
