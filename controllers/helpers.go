package controllers

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"inspection-app/models"
	"inspection-app/services"

	"github.com/gofiber/fiber/v2"
)

// sessionFromCtx membangun session engine dari hasil AuthMiddleware.
func sessionFromCtx(ctx *fiber.Ctx) services.Session {
	session := services.Session{}
	if userID, ok := ctx.Locals("userID").(float64); ok {
		session.UserID = uint(userID)
	}
	if name, ok := ctx.Locals("name").(string); ok {
		session.Name = name
	}
	if role, ok := ctx.Locals("role").(string); ok {
		session.Role = role
	}
	return session
}

// respondWorkflowError menerjemahkan error engine ke response HTTP.
func respondWorkflowError(ctx *fiber.Ctx, err error) error {
	var incomplete *services.SecurityIncompleteError
	if errors.As(err, &incomplete) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success":     false,
			"message":     "Inspeksi security belum lengkap",
			"outstanding": incomplete.Outstanding,
		})
	}

	var photoCount *services.PhotoCountError
	if errors.As(err, &photoCount) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Jumlah foto di luar batas",
			"min":     photoCount.Min,
			"max":     photoCount.Max,
			"actual":  photoCount.Actual,
		})
	}

	var upload *services.PhotoUploadError
	if errors.As(err, &upload) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":  false,
			"message":  "Gagal upload foto",
			"filename": upload.Filename,
			"error":    upload.Err.Error(),
		})
	}

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden: You do not have permission",
		})
	case errors.Is(err, services.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Data tidak ditemukan",
		})
	case errors.Is(err, services.ErrDuplicateContainer):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Nomor container sudah terdaftar",
		})
	case errors.Is(err, services.ErrDuplicateUTC):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Nomor UTC sudah terdaftar",
		})
	case errors.Is(err, services.ErrAlreadyChecked):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Container sudah diverifikasi checker",
		})
	case errors.Is(err, services.ErrIncompleteChecklist):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Semua item checklist harus dicentang",
		})
	case errors.Is(err, services.ErrPrerequisiteMissing):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "Inspeksi security belum ada",
		})
	case errors.Is(err, services.ErrForeignKeyConstraint):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Data masih direferensikan data lain",
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
}

// parseAnswers membaca field form dinamis checklist_<id> / vehicle_<id>
// beserta notes_<id> / vehicle_notes_<id> menjadi map jawaban terstruktur.
func parseAnswers(values map[string][]string) services.ChecklistAnswers {
	answers := services.ChecklistAnswers{}

	get := func(key string) string {
		if v, ok := values[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	isChecked := func(v string) bool {
		switch strings.ToLower(v) {
		case "true", "on", "1", "yes":
			return true
		}
		return false
	}

	for key := range values {
		switch {
		case strings.HasPrefix(key, "checklist_"):
			id, err := strconv.ParseUint(strings.TrimPrefix(key, "checklist_"), 10, 32)
			if err != nil {
				continue
			}
			answers[services.ResponseTarget{Kind: services.TargetChecklist, ItemID: uint(id)}] = services.Answer{
				Checked: isChecked(get(key)),
				Notes:   get("notes_" + strconv.FormatUint(id, 10)),
			}
		case strings.HasPrefix(key, "vehicle_notes_"):
			// notes saja tanpa checkbox tetap jadi jawaban unchecked
			id, err := strconv.ParseUint(strings.TrimPrefix(key, "vehicle_notes_"), 10, 32)
			if err != nil {
				continue
			}
			target := services.ResponseTarget{Kind: services.TargetVehicle, ItemID: uint(id)}
			if _, ok := answers[target]; !ok {
				answers[target] = services.Answer{
					Checked: isChecked(get("vehicle_" + strconv.FormatUint(id, 10))),
					Notes:   get(key),
				}
			}
		case strings.HasPrefix(key, "vehicle_"):
			id, err := strconv.ParseUint(strings.TrimPrefix(key, "vehicle_"), 10, 32)
			if err != nil {
				continue
			}
			answers[services.ResponseTarget{Kind: services.TargetVehicle, ItemID: uint(id)}] = services.Answer{
				Checked: isChecked(get(key)),
				Notes:   get("vehicle_notes_" + strconv.FormatUint(id, 10)),
			}
		case strings.HasPrefix(key, "notes_"):
			id, err := strconv.ParseUint(strings.TrimPrefix(key, "notes_"), 10, 32)
			if err != nil {
				continue
			}
			target := services.ResponseTarget{Kind: services.TargetChecklist, ItemID: uint(id)}
			if _, ok := answers[target]; !ok {
				answers[target] = services.Answer{
					Checked: isChecked(get("checklist_" + strconv.FormatUint(id, 10))),
					Notes:   get(key),
				}
			}
		}
	}

	return answers
}

// openPhotoFiles membuka file multipart jadi input foto engine.
// Caller wajib memanggil fungsi close yang dikembalikan.
func openPhotoFiles(headers []*multipart.FileHeader) ([]services.PhotoFile, func(), error) {
	photos := make([]services.PhotoFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, file)
		photos = append(photos, services.PhotoFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		})
	}

	return photos, closeAll, nil
}

func parseDeletedPhotoIDs(values map[string][]string) []int64 {
	var ids []int64
	for _, raw := range values["deleted_photo_ids"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if id, err := strconv.ParseInt(part, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func stateFromQuery(value string) models.InspectionState {
	switch strings.ToUpper(value) {
	case string(models.StatePendingSecurity):
		return models.StatePendingSecurity
	case string(models.StatePendingChecker):
		return models.StatePendingChecker
	case string(models.StateComplete):
		return models.StateComplete
	}
	return ""
}

func parseInspectionDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
