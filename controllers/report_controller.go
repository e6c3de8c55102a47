package controllers

import (
	"fmt"
	"net/http"

	"inspection-app/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func (c *ReportController) reportFilter(ctx *fiber.Ctx) repositories.InspectionFilter {
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
	return filter
}

func (c *ReportController) GetReport(ctx *fiber.Ctx) error {
	repo := repositories.NewInspectionRepository(c.DB)
	rows, err := repo.ListInspections(c.reportFilter(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"inspections": rows},
	})
}

// Handler untuk generate dan kirim file Excel
func (c *ReportController) ExportExcel(ctx *fiber.Ctx) error {
	repo := repositories.NewInspectionRepository(c.DB)
	rows, err := repo.ListInspections(c.reportFilter(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Container No")
	f.SetCellValue(sheet, "B1", "Company")
	f.SetCellValue(sheet, "C1", "Seal No")
	f.SetCellValue(sheet, "D1", "Plate No")
	f.SetCellValue(sheet, "E1", "Inspection Date")
	f.SetCellValue(sheet, "F1", "Security Inspector")
	f.SetCellValue(sheet, "G1", "UTC No")
	f.SetCellValue(sheet, "H1", "Checker")
	f.SetCellValue(sheet, "I1", "Photos")
	f.SetCellValue(sheet, "J1", "Status")

	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.ContainerNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.CompanyName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.SealNo)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.PlateNo)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.InspectionDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), row.SecurityInspector)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), row.UTCNo)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), row.CheckerInspector)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", i+2), row.PhotoCount)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", i+2), string(row.State))
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="inspection_report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Gagal generate Excel")
	}

	return nil
}
