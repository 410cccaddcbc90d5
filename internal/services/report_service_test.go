package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	apperrors "kaawa-maintenance/pkg/errors"
)

func TestInRange(t *testing.T) {
	now := time.Date(2025, time.May, 14, 12, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	cases := []struct {
		name string
		date time.Time
		rng  string
		want bool
	}{
		{"сегодня", day(2025, time.May, 14), RangeDay, true},
		{"вчера", day(2025, time.May, 13), RangeDay, false},
		{"неделя назад", day(2025, time.May, 8), RangeWeek, true},
		{"восемь дней назад", day(2025, time.May, 6), RangeWeek, false},
		{"будущее в неделе", day(2025, time.December, 1), RangeWeek, true},
		{"тот же месяц", day(2025, time.May, 31), RangeMonth, true},
		{"месяц прошлого года", day(2024, time.May, 14), RangeMonth, false},
		{"тот же квартал", day(2025, time.April, 1), RangeQuarter, true},
		{"другой квартал", day(2025, time.March, 31), RangeQuarter, false},
		{"тот же год", day(2025, time.January, 1), RangeYear, true},
		{"прошлый год", day(2024, time.December, 31), RangeYear, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InRange(tc.date, now, tc.rng))
			if tc.want && tc.rng != RangeWeek {
				from, to := RangeBounds(now, tc.rng)
				assert.False(t, tc.date.Before(from))
				assert.False(t, tc.date.After(to))
			}
		})
	}
}

func TestInRange_LocalClock(t *testing.T) {
	cancun := time.FixedZone("America/Cancun", -5*60*60)
	visit := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		rng  string
		want bool
	}{
		{"утро того же дня", time.Date(2025, time.June, 15, 10, 0, 0, 0, cancun), RangeDay, true},
		{"поздний вечер того же дня", time.Date(2025, time.June, 15, 23, 30, 0, 0, cancun), RangeDay, true},
		{"следующий день", time.Date(2025, time.June, 16, 0, 30, 0, 0, cancun), RangeDay, false},
		{"последний день месяца", time.Date(2025, time.June, 30, 22, 0, 0, 0, cancun), RangeMonth, true},
		{"седьмой день недели", time.Date(2025, time.June, 22, 21, 0, 0, 0, cancun), RangeWeek, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InRange(visit, tc.now, tc.rng))
			from, to := RangeBounds(tc.now, tc.rng)
			inBounds := !visit.Before(from) && visit.Before(to)
			assert.Equal(t, tc.want, inBounds)
		})
	}

	// pgx отдаёт timestamptz в локальной зоне, календарный день не должен сдвигаться.
	assert.True(t, InRange(visit.In(cancun), time.Date(2025, time.June, 15, 10, 0, 0, 0, cancun), RangeDay))
}

func newReportService(s *store) ReportServiceInterface {
	return NewReportService(fakeClientRepo{s}, fakeEquipmentRepo{s}, fakeServiceRepo{s}, fakeErrorLogRepo{s}, fixedClock, zap.NewNop())
}

func TestReportService_Services(t *testing.T) {
	s := seededStore()
	s.services["s1"] = entities.Service{ID: "s1", ClientID: "c1", Type: maintenance.ServicePreventive, DateStart: testNow.AddDate(0, 0, -2)}
	s.services["s2"] = entities.Service{ID: "s2", ClientID: "gone", Type: maintenance.ServiceGeneral, DateStart: testNow.AddDate(0, 0, -1)}
	s.services["s3"] = entities.Service{ID: "s3", ClientID: "c1", Type: maintenance.ServiceGeneral, DateStart: testNow.AddDate(0, -2, 0)}
	svc := newReportService(s)

	report, err := svc.GetReport(techCtx(), dto.ReportQueryDTO{Type: ReportServices})
	require.NoError(t, err)
	assert.Equal(t, RangeMonth, report.Range)
	require.Len(t, report.Items, 2)
	titles := []string{report.Items[0].Title, report.Items[1].Title}
	assert.Contains(t, titles, "Servicio: Mantenimiento Preventivo - Cafetería El Grano")
	assert.Contains(t, titles, "Servicio: Mantenimiento General - N/A")

	report, err = svc.GetReport(techCtx(), dto.ReportQueryDTO{Type: ReportServices, Range: RangeYear})
	require.NoError(t, err)
	assert.Len(t, report.Items, 3)
}

func TestReportService_EquipmentClientsAndLogs(t *testing.T) {
	s := seededStore()
	eq := s.equipment["e1"]
	eq.PurchaseDate = null.TimeFrom(time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC))
	s.equipment["e1"] = eq
	s.errorLogs = []entities.ErrorLog{
		{ID: "l1", Message: "viejo", Timestamp: testNow.Add(-time.Hour)},
		{ID: "l2", Message: "nuevo", Timestamp: testNow},
	}
	svc := newReportService(s)

	report, err := svc.GetReport(techCtx(), dto.ReportQueryDTO{Type: ReportEquipment})
	require.NoError(t, err)
	require.Len(t, report.Items, 3)
	assert.Equal(t, dto.ReportItemDTO{ID: "e1", Title: "Equipo: La Marzocco Linea Mini (LM001)", Date: "2023-01-15"}, report.Items[0])
	assert.Equal(t, maintenance.UnknownLabel, report.Items[1].Date)

	report, err = svc.GetReport(techCtx(), dto.ReportQueryDTO{Type: ReportClients})
	require.NoError(t, err)
	assert.Equal(t, "Cliente: Cafetería El Grano (Juan Pérez)", report.Items[0].Title)

	_, err = svc.GetReport(techCtx(), dto.ReportQueryDTO{Type: ReportErrorLogs})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	report, err = svc.GetReport(adminCtx(), dto.ReportQueryDTO{Type: ReportErrorLogs})
	require.NoError(t, err)
	require.Len(t, report.ErrorLogs, 2)
	assert.Equal(t, "l2", report.ErrorLogs[0].ID)
}
