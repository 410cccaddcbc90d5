package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/services"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetReport(ctx echo.Context) error {
	var query dto.ReportQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Parámetros del reporte inválidos"), c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	format := strings.ToLower(ctx.QueryParam("format"))
	c.logger.Debug("Запрос на отчет", zap.Any("query", query), zap.String("format", format))

	report, err := c.reportService.GetReport(ctx.Request().Context(), query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, report)
	}
	return utils.SuccessResponse(ctx, report, "Reporte generado", http.StatusOK)
}

var (
	reportHeaders   = []string{"ID", "Título", "Fecha"}
	errorLogHeaders = []string{"ID", "Fecha", "Mensaje", "Componente", "Usuario", "URL", "Navegador"}
)

func reportRows(report *dto.ReportDTO) ([]string, [][]interface{}) {
	if report.Type == services.ReportErrorLogs {
		rows := make([][]interface{}, 0, len(report.ErrorLogs))
		for _, l := range report.ErrorLogs {
			rows = append(rows, []interface{}{l.ID, l.Timestamp, l.Message, l.Component, l.User, l.URL, l.UserAgent})
		}
		return errorLogHeaders, rows
	}
	rows := make([][]interface{}, 0, len(report.Items))
	for _, item := range report.Items {
		rows = append(rows, []interface{}{item.ID, item.Title, item.Date})
	}
	return reportHeaders, rows
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, report *dto.ReportDTO) error {
	headers, rows := reportRows(report)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Reporte"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &headers)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, style)

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &rows[i])
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "C", 45)

	fileName := fmt.Sprintf("reporte_%s_%s.xlsx", report.Type, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
