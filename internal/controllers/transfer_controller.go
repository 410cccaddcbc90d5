package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/services"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
	"kaawa-maintenance/pkg/validation"
)

// TransferController - шаблоны, выгрузка и загрузка данных таблицами.
type TransferController struct {
	transferService services.TransferServiceInterface
	logger          *zap.Logger
}

func NewTransferController(service services.TransferServiceInterface, logger *zap.Logger) *TransferController {
	return &TransferController{transferService: service, logger: logger}
}

func (c *TransferController) DownloadTemplate(ctx echo.Context) error {
	entity := ctx.Param("entity")
	fileName, data, err := c.transferService.Template(ctx.Request().Context(), entity)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (c *TransferController) Export(ctx echo.Context) error {
	f, err := c.transferService.Export(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("kaawa_export_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *TransferController) Import(ctx echo.Context) error {
	entity := ctx.Param("entity")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Falta el archivo 'file'"), c.logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.logger.Error("Import: не удалось открыть файл", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewInternalError("No se pudo leer el archivo"), c.logger)
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, services.TransferUploadContext); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(err.Error()), c.logger)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		c.logger.Error("Import: ошибка чтения файла", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewInternalError("No se pudo leer el archivo"), c.logger)
	}

	res, err := c.transferService.Import(ctx.Request().Context(), entity, fileHeader.Filename, data)
	if err != nil {
		c.logger.Error("Import: ошибка загрузки", zap.String("entity", entity), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("Импорт завершён",
		zap.String("entity", entity),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("failed", res.Failed),
	)
	return utils.SuccessResponse(ctx, res, "Importación completada", http.StatusOK)
}
