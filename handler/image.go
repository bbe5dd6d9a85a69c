package handler

import (
	"Moodboard/config"
	"Moodboard/middleware"
	"Moodboard/pkg/context"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/response"
	"Moodboard/service"
	"Moodboard/types"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Image struct {
	Config       *config.Config
	ImageService service.IImageService
}

func (h *Image) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/images", authorize)
	g.GET("", context.Wrap(h.List))
	g.GET("/next-serial", context.Wrap(h.NextSerial))
	g.GET("/max-blob-number", context.Wrap(h.MaxBlobNumber))
	g.POST("", context.Wrap(h.Create))
	g.POST("/upload", context.Wrap(h.Upload))
	g.GET("/:sno", context.Wrap(h.Browse))
	g.PATCH("/:sno", context.Wrap(h.Update))
	g.PUT("/:sno/file", context.Wrap(h.Replace))
	g.GET("/:sno/content", context.Wrap(h.Content))
}

func (h *Image) List(c *gin.Context) error {
	var req types.ListImagesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid query: "+err.Error())
	}
	resp, err := h.ImageService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Image) NextSerial(c *gin.Context) error {
	sno, err := h.ImageService.NextSerialNo(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, types.NextSerialResp{Sno: sno})
	return nil
}

func (h *Image) MaxBlobNumber(c *gin.Context) error {
	max, err := h.ImageService.MaxBlobImageNumber(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, types.MaxBlobNumberResp{Max: max})
	return nil
}

// Create 只写记录, 不上传文件
func (h *Image) Create(c *gin.Context) error {
	var req types.CreateImageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	img, err := h.ImageService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Msg: "success", Data: types.NewImageItem(img)})
	return nil
}

// readUpload 读取表单中的 image 文件, 超过上限直接拒绝
func readUpload(c *gin.Context) (string, []byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil, errs.Invalid("image", "missing image file")
	}
	if header.Size > service.MaxImageSize {
		return "", nil, errs.Invalid("image", "image size exceeds 10MB")
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

// Upload 表单字段 sno 可省略, 省略时分配下一个序列号
func (h *Image) Upload(c *gin.Context) error {
	var sno int64
	if raw := c.PostForm("sno"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return errs.Invalid("sno", "Serial No. must be a valid number")
		}
		sno = v
	}
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}

	resp, err := h.ImageService.Upload(c.Request.Context(), &types.UploadImage{Sno: sno, Filename: filename, Data: data})
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Msg: "success", Data: resp})
	return nil
}

func (h *Image) Browse(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	view, err := h.ImageService.Browse(c.Request.Context(), sno)
	if err != nil {
		return err
	}
	response.Success(c, view)
	return nil
}

func (h *Image) Update(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.UpdateImageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.ImageService.Update(c.Request.Context(), sno, &req); err != nil {
		return err
	}
	img, err := h.ImageService.Get(c.Request.Context(), sno)
	if err != nil {
		return err
	}
	response.Success(c, types.NewImageItem(img))
	return nil
}

func (h *Image) Replace(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}
	resp, err := h.ImageService.Replace(c.Request.Context(), &types.UploadImage{Sno: sno, Filename: filename, Data: data})
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Image) Content(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	data, contentType, err := h.ImageService.Content(c.Request.Context(), sno)
	if err != nil {
		return err
	}
	c.Data(http.StatusOK, contentType, data)
	return nil
}
