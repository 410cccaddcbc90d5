package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

const (
	ReportServices  = "servicios"
	ReportEquipment = "equipos"
	ReportClients   = "clientes"
	ReportErrorLogs = "errorLogs"

	RangeDay     = "dia"
	RangeWeek    = "semana"
	RangeMonth   = "mes"
	RangeQuarter = "trimestre"
	RangeYear    = "ano"
)

// DefaultReportRange используется, когда диапазон не передан.
const DefaultReportRange = RangeMonth

type ReportServiceInterface interface {
	GetReport(ctx context.Context, query dto.ReportQueryDTO) (*dto.ReportDTO, error)
}

type ReportService struct {
	clientRepo    repositories.ClientRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	serviceRepo   repositories.ServiceRepositoryInterface
	errorLogRepo  repositories.ErrorLogRepositoryInterface
	clock         Clock
	logger        *zap.Logger
}

func NewReportService(
	clientRepo repositories.ClientRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	errorLogRepo repositories.ErrorLogRepositoryInterface,
	clock Clock,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		clientRepo:    clientRepo,
		equipmentRepo: equipmentRepo,
		serviceRepo:   serviceRepo,
		errorLogRepo:  errorLogRepo,
		clock:         clock,
		logger:        logger,
	}
}

// calendarDay приводит момент к полуночи UTC того же календарного дня.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InRange сравнивает дату визита с now по календарным правилам диапазона.
// Даты визитов хранятся как полночь UTC, а now берётся в его собственной зоне.
// "semana" - не более 7 дней назад, будущие даты тоже попадают.
func InRange(date, now time.Time, rng string) bool {
	day := calendarDay(date.UTC())
	today := calendarDay(now)
	switch rng {
	case RangeDay:
		return day.Equal(today)
	case RangeWeek:
		return today.Sub(day) <= 7*24*time.Hour
	case RangeMonth:
		return day.Year() == today.Year() && day.Month() == today.Month()
	case RangeQuarter:
		return day.Year() == today.Year() && quarter(day) == quarter(today)
	case RangeYear:
		return day.Year() == today.Year()
	}
	return true
}

func quarter(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

// RangeBounds - границы выборки из БД в UTC, точную проверку делает InRange.
func RangeBounds(now time.Time, rng string) (time.Time, time.Time) {
	today := calendarDay(now)
	y, m, _ := today.Date()
	farFuture := today.AddDate(100, 0, 0)
	switch rng {
	case RangeDay:
		return today, today.AddDate(0, 0, 1)
	case RangeWeek:
		return today.AddDate(0, 0, -7), farFuture
	case RangeMonth:
		from := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	case RangeQuarter:
		from := time.Date(y, time.Month(quarter(today)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 3, 0)
	case RangeYear:
		from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0)
	}
	return time.Time{}, farFuture
}

func (s *ReportService) GetReport(ctx context.Context, query dto.ReportQueryDTO) (*dto.ReportDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ReportsView); err != nil {
		return nil, err
	}

	report := &dto.ReportDTO{Type: query.Type, Items: []dto.ReportItemDTO{}}
	var err error
	switch query.Type {
	case ReportServices:
		report.Range = query.Range
		if report.Range == "" {
			report.Range = DefaultReportRange
		}
		report.Items, err = s.servicesReport(ctx, report.Range)
	case ReportEquipment:
		report.Items, err = s.equipmentReport(ctx)
	case ReportClients:
		report.Items, err = s.clientsReport(ctx)
	case ReportErrorLogs:
		// Для журнала ошибок нужны только записи журнала.
		if _, err := checkPermission(ctx, s.logger, authz.ErrorLogsView); err != nil {
			return nil, err
		}
		report.ErrorLogs, err = s.errorLogsReport(ctx)
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Tipo de reporte desconocido: %s", query.Type))
	}
	if err != nil {
		s.logger.Error("Ошибка формирования отчёта", zap.String("type", query.Type), zap.Error(err))
		return nil, err
	}
	return report, nil
}

func (s *ReportService) servicesReport(ctx context.Context, rng string) ([]dto.ReportItemDTO, error) {
	now := s.clock()
	from, to := RangeBounds(now, rng)
	services, err := s.serviceRepo.FindStartedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := maintenance.IndexClients(clients)

	items := make([]dto.ReportItemDTO, 0, len(services))
	for _, svc := range services {
		if !InRange(svc.DateStart, now, rng) {
			continue
		}
		items = append(items, dto.ReportItemDTO{
			ID:    svc.ID,
			Title: fmt.Sprintf("Servicio: %s - %s", svc.Type, maintenance.ClientName(byID, svc.ClientID)),
			Date:  svc.DateStart.Format(utils.DateLayout),
		})
	}
	return items, nil
}

func (s *ReportService) equipmentReport(ctx context.Context) ([]dto.ReportItemDTO, error) {
	equipment, err := s.equipmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportItemDTO, 0, len(equipment))
	for _, eq := range equipment {
		items = append(items, dto.ReportItemDTO{
			ID:    eq.ID,
			Title: fmt.Sprintf("Equipo: %s %s (%s)", eq.Brand, eq.Model, eq.Serial),
			Date:  utils.FormatNullDate(eq.PurchaseDate, maintenance.UnknownLabel),
		})
	}
	return items, nil
}

func (s *ReportService) clientsReport(ctx context.Context) ([]dto.ReportItemDTO, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportItemDTO, 0, len(clients))
	for _, c := range clients {
		items = append(items, dto.ReportItemDTO{
			ID:    c.ID,
			Title: fmt.Sprintf("Cliente: %s (%s)", c.Name, c.Contact),
			Date:  maintenance.UnknownLabel,
		})
	}
	return items, nil
}

func (s *ReportService) errorLogsReport(ctx context.Context) ([]dto.ErrorLogDTO, error) {
	logs, err := s.errorLogRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ErrorLogDTO, 0, len(logs))
	for i := range logs {
		out = append(out, errorLogToDTO(&logs[i]))
	}
	return out, nil
}
