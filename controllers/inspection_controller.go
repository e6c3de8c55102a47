package controllers

import (
	"strconv"

	"inspection-app/repositories"
	"inspection-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InspectionController struct {
	DB      *gorm.DB
	Service *services.InspectionService
}

func NewInspectionController(db *gorm.DB, service *services.InspectionService) *InspectionController {
	return &InspectionController{DB: db, Service: service}
}

var validate = validator.New()

type inspectionForm struct {
	ContainerNo    string `validate:"required"`
	CompanyName    string `validate:"required"`
	InspectorName  string `validate:"required"`
	SealNo         string
	PlateNo        string
	InspectionDate string
	Remarks        string
}

// CreateInspection menerima multipart form: field container + jawaban
// checklist dinamis + file foto, lalu meneruskan ke engine.
func (c *InspectionController) CreateInspection(ctx *fiber.Ctx) error {
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

	input := inspectionForm{
		ContainerNo:    get("container_no"),
		CompanyName:    get("company_name"),
		SealNo:         get("seal_no"),
		PlateNo:        get("plate_no"),
		InspectionDate: get("inspection_date"),
		InspectorName:  get("inspector_name"),
		Remarks:        get("remarks"),
	}

	// Validasi input menggunakan validator
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

	sc, err := c.Service.CreateInspection(ctx.Context(), sessionFromCtx(ctx), services.CreateInspectionInput{
		Container: services.ContainerFields{
			ContainerNo:    input.ContainerNo,
			CompanyName:    input.CompanyName,
			SealNo:         input.SealNo,
			PlateNo:        input.PlateNo,
			InspectionDate: parseInspectionDate(input.InspectionDate),
		},
		InspectorName: input.InspectorName,
		Remarks:       input.Remarks,
		Answers:       parseAnswers(form.Value),
		Photos:        photos,
	})
	if err != nil {
		return respondWorkflowError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Inspeksi berhasil disimpan",
		"data":    sc,
	})
}

func (c *InspectionController) UpdateInspection(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid inspection id",
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

	input := inspectionForm{
		ContainerNo:    get("container_no"),
		CompanyName:    get("company_name"),
		SealNo:         get("seal_no"),
		PlateNo:        get("plate_no"),
		InspectionDate: get("inspection_date"),
		InspectorName:  get("inspector_name"),
		Remarks:        get("remarks"),
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

	err = c.Service.UpdateInspection(ctx.Context(), sessionFromCtx(ctx), uint(id), services.UpdateInspectionInput{
		Container: services.ContainerFields{
			ContainerNo:    input.ContainerNo,
			CompanyName:    input.CompanyName,
			SealNo:         input.SealNo,
			PlateNo:        input.PlateNo,
			InspectionDate: parseInspectionDate(input.InspectionDate),
		},
		InspectorName:   input.InspectorName,
		Remarks:         input.Remarks,
		Answers:         parseAnswers(form.Value),
		DeletedPhotoIDs: parseDeletedPhotoIDs(form.Value),
		NewPhotos:       photos,
	})
	if err != nil {
		return respondWorkflowError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Inspeksi berhasil diupdate",
	})
}

func (c *InspectionController) GetAllInspections(ctx *fiber.Ctx) error {
	repo := repositories.NewInspectionRepository(c.DB)

	filter := repositories.InspectionFilter{
		Search: ctx.Query("search"),
	}
	if from := ctx.Query("date_from"); from != "" {
		t := parseInspectionDate(from)
		filter.DateFrom = &t
	}
	if to := ctx.Query("date_to"); to != "" {
		t := parseInspectionDate(to)
		filter.DateTo = &t
	}
	filter.State = stateFromQuery(ctx.Query("state"))

	inspections, err := repo.ListInspections(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"inspections": inspections},
	})
}

func (c *InspectionController) GetInspectionByID(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid inspection id",
		})
	}

	repo := repositories.NewInspectionRepository(c.DB)
	container, err := repo.GetInspectionDetail(uint(id))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Data tidak ditemukan",
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    container,
	})
}

func (c *InspectionController) DeleteInspection(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid container id",
		})
	}

	if err := c.Service.DeleteInspection(ctx.Context(), sessionFromCtx(ctx), uint(id)); err != nil {
		return respondWorkflowError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Inspeksi berhasil dihapus",
	})
}

func (c *InspectionController) DeletePhoto(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("photo_id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid photo id",
		})
	}

	if err := c.Service.DeletePhoto(ctx.Context(), sessionFromCtx(ctx), id); err != nil {
		return respondWorkflowError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Foto berhasil dihapus",
	})
}
