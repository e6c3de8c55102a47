package controllers

import (
	"strconv"

	"inspection-app/repositories"
	"inspection-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CheckerController struct {
	DB      *gorm.DB
	Service *services.CheckerService
}

func NewCheckerController(db *gorm.DB, service *services.CheckerService) *CheckerController {
	return &CheckerController{DB: db, Service: service}
}

type checkerForm struct {
	UTCNo         string `validate:"required"`
	InspectorName string `validate:"required"`
	Remarks       string
}

// SubmitCheckerData menerima verifikasi checker untuk satu container.
// Engine yang menegakkan gerbang kelengkapan security.
func (c *CheckerController) SubmitCheckerData(ctx *fiber.Ctx) error {
	containerID, err := strconv.ParseUint(ctx.Params("container_id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid container id",
		})
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid multipart form",
			"error":   err.Error(),
		})
	}

	get := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	input := checkerForm{
		UTCNo:         get("utc_no"),
		InspectorName: get("inspector_name"),
		Remarks:       get("remarks"),
	}

	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing required fields",
			"error":   err.Error(),
		})
	}

	photos, closeFiles, err := openPhotoFiles(form.File["photos"])
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read uploaded photos",
			"error":   err.Error(),
		})
	}
	defer closeFiles()

	cd, err := c.Service.SubmitCheckerData(ctx.Context(), sessionFromCtx(ctx), uint(containerID), services.SubmitCheckerInput{
		UTCNo:         input.UTCNo,
		InspectorName: input.InspectorName,
		Remarks:       input.Remarks,
		Photos:        photos,
	})
	if err != nil {
		return respondWorkflowError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Data checker berhasil disimpan",
		"data":    cd,
	})
}

func (c *CheckerController) UpdateCheckerData(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid checker data id",
		})
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid multipart form",
			"error":   err.Error(),
		})
	}

	get := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	input := checkerForm{
		UTCNo:         get("utc_no"),
		InspectorName: get("inspector_name"),
		Remarks:       get("remarks"),
	}

	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing required fields",
			"error":   err.Error(),
		})
	}

	photos, closeFiles, err := openPhotoFiles(form.File["photos"])
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read uploaded photos",
			"error":   err.Error(),
		})
	}
	defer closeFiles()

	err = c.Service.UpdateCheckerData(ctx.Context(), sessionFromCtx(ctx), uint(id), services.UpdateCheckerInput{
		UTCNo:           input.UTCNo,
		InspectorName:   input.InspectorName,
		Remarks:         input.Remarks,
		DeletedPhotoIDs: parseDeletedPhotoIDs(form.Value),
		NewPhotos:       photos,
	})
	if err != nil {
		return respondWorkflowError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Data checker berhasil diupdate",
	})
}

// GetPendingCheckers mengambil container yang sudah diperiksa security
// dan menunggu verifikasi checker.
func (c *CheckerController) GetPendingCheckers(ctx *fiber.Ctx) error {
	repo := repositories.NewInspectionRepository(c.DB)
	inspections, err := repo.ListPendingChecker()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"inspections": inspections},
	})
}
