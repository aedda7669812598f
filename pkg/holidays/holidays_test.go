package holidays_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-payroll-bot/pkg/holidays"
)

const calendar2025 = `{
  "year": 2025,
  "months": [
    {"month": 3, "days": "1,2,7*,8,9,10+"},
    {"month": 5, "days": "2,8"}
  ],
  "transitions": [{"from": "01.04", "to": "05.02"}],
  "statistic": {"workdays": 247, "holidays": 118, "hours40": 1972, "hours36": 1774.4, "hours24": 1181.6}
}`

func TestProductionCalendar_Holidays(t *testing.T) {
	cal, err := holidays.ParseCalendar(strings.NewReader(calendar2025))
	require.NoError(t, err)
	assert.Equal(t, 247, cal.Statistic.Workdays)

	days, err := cal.Days()
	require.NoError(t, err)
	require.Len(t, days, 8)
	assert.Equal(t, holidays.DayShortened, days[2].Kind)
	assert.Equal(t, holidays.DayTransferred, days[5].Kind)

	got, err := cal.Holidays()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"2025-03-08": "Международный женский день",
		"2025-03-10": holidays.TransferredDayOffName,
		"2025-05-02": holidays.NonWorkingDayName,
		"2025-05-08": holidays.NonWorkingDayName,
	}, got)
}

func TestProductionCalendar_InvalidDay(t *testing.T) {
	cal, err := holidays.ParseCalendar(strings.NewReader(`{"year":2025,"months":[{"month":2,"days":"1,30"}]}`))
	require.NoError(t, err)

	_, err = cal.Holidays()
	assert.Error(t, err)

	_, err = holidays.ParseCalendar(strings.NewReader(`{"months":[]}`))
	assert.Error(t, err)
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025.json"), []byte(calendar2025), 0o644))
	provider := holidays.NewFileProvider(dir)

	got, err := provider.Holidays(context.Background(), 2025)
	require.NoError(t, err)
	assert.Contains(t, got, "2025-03-08")

	_, err = provider.Holidays(context.Background(), 2026)
	assert.ErrorIs(t, err, holidays.ErrCalendarNotFound)
}

func TestClient_Holidays(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"date":"2025-01-01","localName":"Новый год","name":"New Year's Day"},
			{"date":"2025-05-09","localName":"","name":"Victory Day"},
			{"date":"2024-12-31","localName":"Канун","name":"Eve"},
			{"date":"not a date","localName":"x","name":"x"}
		]`))
	}))
	defer server.Close()

	client := holidays.NewClient(server.URL+"/", "ru", server.Client())
	got, err := client.Holidays(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, "/PublicHolidays/2025/RU", requested)
	assert.Equal(t, map[string]string{
		"2025-01-01": "Новый год",
		"2025-05-09": "Victory Day",
	}, got)
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := holidays.NewClient(server.URL, "RU", server.Client()).Holidays(context.Background(), 2025)

	var statusErr *holidays.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
