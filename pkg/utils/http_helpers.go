package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	filterReq.WithPagination = values.Get("withPagination") == "true"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]

			if existing, ok := filterReq.Filter[field]; ok {
				filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, vals[0])
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = (int(total[0]) + filter.Limit - 1) / filter.Limit
		}
		response.Body = map[string]interface{}{
			"list": body,
			"pagination": types.Pagination{
				TotalCount: total[0],
				Page:       filter.Page,
				Limit:      filter.Limit,
				TotalPages: totalPages,
			},
		}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

// sentinelStatus - коды для известных ошибок, которые сервисы возвращают без обёртки.
var sentinelStatus = []struct {
	err     error
	code    int
	message string
}{
	{apperrors.ErrNotFound, http.StatusNotFound, "Registro no encontrado"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, "Usuario no encontrado"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Usuario o contraseña incorrectos"},
	{apperrors.ErrAccountLocked, http.StatusLocked, "Cuenta bloqueada temporalmente, intenta más tarde"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "No autorizado"},
	{apperrors.ErrUserIDNotFoundInContext, http.StatusUnauthorized, "No autorizado"},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized, "Falta el encabezado de autorización"},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized, "Encabezado de autorización inválido"},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized, "Token inválido"},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized, "Token inválido"},
	{apperrors.ErrTokenNotYetValid, http.StatusUnauthorized, "Token inválido"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, "La sesión ha expirado"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, "La sesión fue cerrada"},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized, "Token inválido"},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized, "Token inválido"},
	{apperrors.ErrForbidden, http.StatusForbidden, "No tienes permiso para esta acción"},
	{apperrors.ErrEquipmentNotForClient, http.StatusBadRequest, "El equipo no pertenece al cliente seleccionado"},
	{apperrors.ErrEquipmentUnavailable, http.StatusBadRequest, "El equipo no está disponible para servicio"},
	{apperrors.ErrUnknownEntity, http.StatusBadRequest, "Tipo de datos desconocido"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, "Solicitud inválida"},
	{apperrors.ErrFolioExhausted, http.StatusConflict, "No se pudo generar un folio único, intenta de nuevo"},
	{apperrors.ErrConflict, http.StatusConflict, "El registro ya existe"},
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}

		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("El campo '%s' no cumple la regla '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Error de validación: " + strings.Join(msgs, "; ")})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		return c.JSON(echoErr.Code, map[string]interface{}{"status": false, "message": "Solicitud inválida"})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": inputErr.Message})
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			logger.Warn("Ошибка запроса", zap.Int("code", s.code), zap.Error(err))
			return c.JSON(s.code, map[string]interface{}{"status": false, "message": s.message})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Error interno del servidor",
	})
}
