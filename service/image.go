package service

import (
	"Moodboard/config"
	"Moodboard/dao"
	"Moodboard/dao/cache"
	"Moodboard/models"
	"Moodboard/pkg/blob"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/log"
	"Moodboard/pkg/metrics"
	"Moodboard/types"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var _ IImageService = (*ImageService)(nil)

type IImageService interface {
	// Create 新建图片记录, sno 为 0 时分配 max(sno)+1
	Create(ctx context.Context, req *types.CreateImageRequest) (*models.Image, error)
	// Upload 校验, 查重, 写对象存储, 写记录; 写记录失败时删除已上传的对象
	Upload(ctx context.Context, req *types.UploadImage) (*types.UploadImageResp, error)
	// Replace 为已有序列号换图, 状态回到 UPLOADED 重新审核
	Replace(ctx context.Context, req *types.UploadImage) (*types.UploadImageResp, error)
	Update(ctx context.Context, sno int64, req *types.UpdateImageRequest) error
	Get(ctx context.Context, sno int64) (*models.Image, error)
	Exists(ctx context.Context, sno int64) (bool, error)
	NextSerialNo(ctx context.Context) (int64, error)
	List(ctx context.Context, page, pageSize int) (*types.ListImagesResp, error)
	Browse(ctx context.Context, sno int64) (*types.ImageView, error)
	// Content 图片二进制及其 MIME
	Content(ctx context.Context, sno int64) ([]byte, string, error)
	// MaxBlobImageNumber 对象存储中 image<N> 的最大 N, 没有时为 0
	MaxBlobImageNumber(ctx context.Context) (int64, error)
}

type ImageService struct {
	ImageDao  *dao.Image
	PromptDao *dao.Prompt
	Locker    cache.Locker
	Blob      blob.Store
	BlobConf  *config.Blob
}

// withSerial 持有序列号锁执行 fn, sno 为 0 时先在分配锁内取下一个序列号
func (s *ImageService) withSerial(ctx context.Context, sno int64, fn func(sno int64) error) (int64, error) {
	if sno < 0 {
		return 0, checkSerial(sno)
	}
	if sno == 0 {
		unlockAlloc, err := lockSerial(ctx, s.Locker, 0)
		if err != nil {
			return 0, err
		}
		defer unlockAlloc()

		if sno, err = s.ImageDao.NextSerialNo(ctx); err != nil {
			return 0, err
		}
	}

	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return sno, fn(sno)
}

func (s *ImageService) ensureAbsent(ctx context.Context, sno int64) error {
	exist, err := s.ImageDao.Exists(ctx, sno)
	if err != nil {
		return err
	}
	if exist {
		return &errs.DuplicateSerialError{Sno: sno}
	}
	return nil
}

func (s *ImageService) Create(ctx context.Context, req *types.CreateImageRequest) (*models.Image, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if req.ImageFeedback != nil {
		if err := checkRange("image_feedback", *req.ImageFeedback, models.ImageFeedbackMin, models.ImageFeedbackMax); err != nil {
			return nil, err
		}
	}
	img := &models.Image{
		Image:         strings.TrimSpace(req.Image),
		ImagePath:     strings.TrimSpace(req.ImagePath),
		Status:        status,
		ImageFeedback: req.ImageFeedback,
	}

	_, err = s.withSerial(ctx, req.Sno, func(sno int64) error {
		img.Sno = sno
		if err := s.ensureAbsent(ctx, sno); err != nil {
			return err
		}
		return s.ImageDao.Create(ctx, img)
	})
	if err != nil {
		return nil, err
	}
	log.L.Info("image record created", zap.Int64("sno", img.Sno), zap.String("status", string(img.Status)))
	return img, nil
}

func (s *ImageService) Upload(ctx context.Context, req *types.UploadImage) (*types.UploadImageResp, error) {
	contentType, cfg, err := sniffImage(req.Data)
	if err != nil {
		return nil, err
	}

	resp := &types.UploadImageResp{ContentType: contentType, Width: cfg.Width, Height: cfg.Height}
	_, err = s.withSerial(ctx, req.Sno, func(sno int64) error {
		// 先查重, 重复的序列号不会再写对象存储
		if err := s.ensureAbsent(ctx, sno); err != nil {
			return err
		}

		objectKey := blob.ImagePath(s.BlobConf.Prefix, sno, blob.Extension(contentType))
		if err := s.Blob.Put(ctx, objectKey, req.Data, contentType); err != nil {
			return err
		}

		img := &models.Image{
			Sno:       sno,
			Image:     req.Filename,
			ImagePath: objectKey,
			Status:    models.ImageStatusUploaded,
		}
		if err := s.ImageDao.Create(ctx, img); err != nil {
			s.compensate(ctx, sno, objectKey, err)
			return err
		}

		resp.Sno = sno
		resp.ImagePath = objectKey
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.L.Info("image uploaded", zap.Int64("sno", resp.Sno), zap.String("path", resp.ImagePath))
	return resp, nil
}

// compensate 记录写入失败后撤销对象上传
func (s *ImageService) compensate(ctx context.Context, sno int64, objectKey string, cause error) {
	log.L.Warn("image record insert failed, removing uploaded object",
		zap.Int64("sno", sno), zap.String("path", objectKey), zap.Error(cause))

	if err := s.Blob.Delete(context.WithoutCancel(ctx), objectKey); err != nil {
		metrics.BlobCompensations.WithLabelValues("failed").Inc()
		log.L.Error("compensating delete failed, object is orphaned",
			zap.Int64("sno", sno), zap.String("path", objectKey), zap.Error(err))
		return
	}
	metrics.BlobCompensations.WithLabelValues("deleted").Inc()
}

func (s *ImageService) Replace(ctx context.Context, req *types.UploadImage) (*types.UploadImageResp, error) {
	if err := checkSerial(req.Sno); err != nil {
		return nil, err
	}
	contentType, cfg, err := sniffImage(req.Data)
	if err != nil {
		return nil, err
	}

	unlock, err := lockSerial(ctx, s.Locker, req.Sno)
	if err != nil {
		return nil, err
	}
	defer unlock()

	img, err := s.ImageDao.Get(ctx, req.Sno)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errs.ImageNotFound(req.Sno)
	}
	from := img.Status.Normalize()
	if !from.CanTransitionTo(models.ImageStatusUploaded) {
		return nil, &errs.InvalidTransitionError{Sno: req.Sno, From: string(from), To: string(models.ImageStatusUploaded)}
	}

	objectKey := blob.ImagePath(s.BlobConf.Prefix, req.Sno, blob.Extension(contentType))
	if err := s.Blob.Put(ctx, objectKey, req.Data, contentType); err != nil {
		return nil, err
	}

	status := models.ImageStatusUploaded
	_, err = s.ImageDao.Update(ctx, req.Sno, dao.ImageUpdate{
		Image:     &req.Filename,
		ImagePath: &objectKey,
		Status:    &status,
	})
	if err != nil {
		// 同名对象已被覆盖, 无法还原
		if objectKey != img.ImagePath {
			s.compensate(ctx, req.Sno, objectKey, err)
		}
		return nil, err
	}
	if img.ImagePath != "" && img.ImagePath != objectKey {
		if err := s.Blob.Delete(ctx, img.ImagePath); err != nil {
			log.L.Warn("remove replaced object", zap.Int64("sno", req.Sno), zap.String("path", img.ImagePath), zap.Error(err))
		}
	}

	log.L.Info("image replaced", zap.Int64("sno", req.Sno), zap.String("from", string(from)), zap.String("path", objectKey))
	return &types.UploadImageResp{
		Sno:         req.Sno,
		ImagePath:   objectKey,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func (s *ImageService) Update(ctx context.Context, sno int64, req *types.UpdateImageRequest) error {
	if err := checkSerial(sno); err != nil {
		return err
	}
	if req.ImageFeedback != nil {
		if err := checkRange("image_feedback", *req.ImageFeedback, models.ImageFeedbackMin, models.ImageFeedbackMax); err != nil {
			return err
		}
	}
	fields := dao.ImageUpdate{
		Image:         req.Image,
		ImagePath:     req.ImagePath,
		ImageFeedback: req.ImageFeedback,
		Comments:      req.Comments,
	}
	if fields.Empty() && req.Status == nil {
		return errs.Invalid("body", "nothing to update for Serial No. %d", sno)
	}

	unlock, err := lockSerial(ctx, s.Locker, sno)
	if err != nil {
		return err
	}
	defer unlock()

	// 改状态走状态机, 审核结果同时级联到 prompt
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return err
		}
		_, err = applyTransition(ctx, s.ImageDao, s.PromptDao, sno, status, fields)
		return err
	}

	rows, err := s.ImageDao.Update(ctx, sno, fields)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ImageNotFound(sno)
	}
	return nil
}

func (s *ImageService) Get(ctx context.Context, sno int64) (*models.Image, error) {
	img, err := s.ImageDao.Get(ctx, sno)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errs.ImageNotFound(sno)
	}
	return img, nil
}

func (s *ImageService) Exists(ctx context.Context, sno int64) (bool, error) {
	return s.ImageDao.Exists(ctx, sno)
}

func (s *ImageService) NextSerialNo(ctx context.Context) (int64, error) {
	return s.ImageDao.NextSerialNo(ctx)
}

func (s *ImageService) List(ctx context.Context, page, pageSize int) (*types.ListImagesResp, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	images, total, err := s.ImageDao.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	resp := &types.ListImagesResp{
		Images: make([]*types.ImageItem, 0, len(images)),
		Total:  total,
	}
	for _, img := range images {
		resp.Images = append(resp.Images, types.NewImageItem(img))
	}
	return resp, nil
}

func (s *ImageService) Browse(ctx context.Context, sno int64) (*types.ImageView, error) {
	img, err := s.Get(ctx, sno)
	if err != nil {
		return nil, err
	}
	prompts, err := s.PromptDao.ListBySno(ctx, sno)
	if err != nil {
		return nil, err
	}
	view := &types.ImageView{
		Image:   types.NewImageItem(img),
		Prompts: prompts,
	}

	if prev, ok, err := s.ImageDao.Neighbor(ctx, sno, false); err != nil {
		return nil, err
	} else if ok {
		view.Previous = &prev
	}
	if next, ok, err := s.ImageDao.Neighbor(ctx, sno, true); err != nil {
		return nil, err
	} else if ok {
		view.Next = &next
	}
	if view.First, view.Last, err = s.ImageDao.Bounds(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ImageService) Content(ctx context.Context, sno int64) ([]byte, string, error) {
	img, err := s.Get(ctx, sno)
	if err != nil {
		return nil, "", err
	}
	objectKey := img.ImagePath
	if objectKey == "" {
		objectKey = blob.ImagePath(s.BlobConf.Prefix, sno, "jpg")
	}

	exist, err := s.Blob.Exists(ctx, objectKey)
	if err != nil {
		return nil, "", err
	}
	if !exist {
		return nil, "", &errs.NotFoundError{Entity: "Image", Key: fmt.Sprint(sno)}
	}
	data, err := s.Blob.Get(ctx, objectKey)
	if err != nil {
		return nil, "", err
	}
	return data, blob.ContentType(objectKey), nil
}

func (s *ImageService) MaxBlobImageNumber(ctx context.Context) (int64, error) {
	prefix := strings.TrimSuffix(s.BlobConf.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	keys, err := s.Blob.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, key := range keys {
		if n, ok := blob.ParseImageNumber(key); ok && n > max {
			max = n
		}
	}
	return max, nil
}
