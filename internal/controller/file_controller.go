package controller

import (
	"mime"

	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/pkg/serverutils"
	"mycloud-drive/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultAccessLogLimit = 50

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AccessLogs(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService      service.IFileService
	accessLogService service.IAccessLogService
	auth             fiber.Handler
}

func NewFileController(fileService service.IFileService, accessLogService service.IAccessLogService, auth fiber.Handler) IFileController {
	return &fileController{
		fileService:      fileService,
		accessLogService: accessLogService,
		auth:             auth,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.auth, c.Upload)
	r.Get("/download/:filename", c.auth, c.Download)
	r.Get("/files", c.auth, c.List)
	r.Delete("/delete/:filename", c.auth, c.Delete)
	r.Get("/access-logs", c.auth, c.AccessLogs)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
	}
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := c.fileService.Upload(ctx.UserContext(), userID, header.Filename, src)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *fileController) Download(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	filename := ctx.Params("filename")

	f, err := c.fileService.Open(ctx.UserContext(), userID, filename)
	if err != nil {
		return httpError(err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": info.Name()}))
	ctx.Type("bin")
	// fasthttp closes the stream once the body is written.
	return ctx.SendStream(f, int(info.Size()))
}

// List, Upload and Delete return bare payloads, the shape the assistant client reads.
func (c *fileController) List(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	files, err := c.fileService.List(ctx.UserContext(), userID)
	if err != nil {
		return httpError(err)
	}
	if files == nil {
		files = []string{}
	}
	return ctx.JSON(dto.ListFilesResponse{Files: files})
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	filename := ctx.Params("filename")

	if err := c.fileService.Delete(ctx.UserContext(), userID, filename); err != nil {
		return httpError(err)
	}
	return ctx.JSON(dto.DeleteFileResponse{Detail: "File '" + filename + "' deleted"})
}

func (c *fileController) AccessLogs(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	limit := ctx.QueryInt("limit", defaultAccessLogLimit)
	if limit <= 0 || limit > 500 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 500")
	}

	logs, err := c.accessLogService.Recent(ctx.UserContext(), userID, limit)
	if err != nil {
		return httpError(err)
	}
	res := make([]dto.AccessLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, dto.AccessLogResponse{
			Filename:   l.Filename,
			Action:     string(l.Action),
			OccurredAt: l.OccurredAt,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get access logs", res))
}
