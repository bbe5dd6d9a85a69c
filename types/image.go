package types

import "Moodboard/models"

// CreateImageRequest 新建图片记录, sno 为 0 时自动分配
type CreateImageRequest struct {
	Sno           int64  `json:"sno"`
	Image         string `json:"image"`
	ImagePath     string `json:"image_path"`
	Status        string `json:"status"`
	ImageFeedback *int   `json:"image_feedback"`
}

// UpdateImageRequest 部分更新, 省略的字段不变
type UpdateImageRequest struct {
	Image         *string `json:"image"`
	ImagePath     *string `json:"image_path"`
	Status        *string `json:"status"`
	ImageFeedback *int    `json:"image_feedback"`
	Comments      *string `json:"comments"`
}

// UploadImage 上传的图片文件
type UploadImage struct {
	Sno      int64
	Filename string
	Data     []byte
}

type UploadImageResp struct {
	Sno         int64  `json:"sno"`
	ImagePath   string `json:"image_path"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type ListImagesReq struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type ListImagesResp struct {
	Images []*ImageItem `json:"images"`
	Total  int64        `json:"total"`
}

// ImageItem 列表和详情展示用, 未评分按默认分展示
type ImageItem struct {
	Sno           int64   `json:"sno"`
	Image         string  `json:"image"`
	ImagePath     string  `json:"image_path"`
	Status        string  `json:"status"`
	ImageFeedback int     `json:"image_feedback"`
	Comments      *string `json:"comments"`
}

func NewImageItem(img *models.Image) *ImageItem {
	return &ImageItem{
		Sno:           img.Sno,
		Image:         img.Image,
		ImagePath:     img.ImagePath,
		Status:        string(img.Status.Normalize()),
		ImageFeedback: img.Feedback(),
		Comments:      img.Comments,
	}
}

// ImageView 浏览页: 图片, 其 prompt, 前后序列号和首尾序列号
type ImageView struct {
	Image    *ImageItem       `json:"image"`
	Prompts  []*models.Prompt `json:"prompts"`
	Previous *int64           `json:"previous"`
	Next     *int64           `json:"next"`
	First    int64            `json:"first"`
	Last     int64            `json:"last"`
}

type NextSerialResp struct {
	Sno int64 `json:"sno"`
}

type MaxBlobNumberResp struct {
	Max int64 `json:"max"`
}
