package domain

import (
	"testing"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-15 — четверг.
func at(weekday time.Weekday, hour int) time.Time {
	thursday := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	offset := int(weekday) - int(time.Thursday)
	return thursday.AddDate(0, 0, offset).Add(time.Duration(hour) * time.Hour)
}

func autoSettings(openDay, openHour, closeDay, closeHour int) ShopSettings {
	s := DefaultShopSettings()
	s.OpenDay, s.OpenHour = openDay, openHour
	s.CloseDay, s.CloseHour = closeDay, closeHour
	s.OpeningMsg = "opens soon"
	s.ClosingMsg = "closed for the week"
	return s
}

func TestEvaluate_SameDayWindow(t *testing.T) {
	s := autoSettings(4, 7, 4, 16)

	assert.Equal(t, AvailabilityDecision{IsOpen: true}, Evaluate(s, at(time.Thursday, 10)))
	assert.Equal(t, AvailabilityDecision{IsOpen: true}, Evaluate(s, at(time.Thursday, 7)))
	assert.Equal(t, AvailabilityDecision{Message: "closed for the week"}, Evaluate(s, at(time.Thursday, 17)))
	assert.Equal(t, AvailabilityDecision{Message: "closed for the week"}, Evaluate(s, at(time.Thursday, 16)))
	assert.Equal(t, AvailabilityDecision{Message: "opens soon"}, Evaluate(s, at(time.Wednesday, 23)))
	assert.Equal(t, AvailabilityDecision{Message: "opens soon"}, Evaluate(s, at(time.Thursday, 6)))
	assert.Equal(t, AvailabilityDecision{Message: "closed for the week"}, Evaluate(s, at(time.Saturday, 12)))
}

func TestEvaluate_MultiDayWindow(t *testing.T) {
	s := autoSettings(2, 18, 5, 14) // вторник 18:00 — пятница 14:00

	tests := []struct {
		name string
		now  time.Time
		open bool
		msg  string
	}{
		{"before open day", at(time.Monday, 20), false, "opens soon"},
		{"open day before hour", at(time.Tuesday, 17), false, "opens soon"},
		{"open day at hour", at(time.Tuesday, 18), true, ""},
		{"middle day", at(time.Wednesday, 3), true, ""},
		{"close day before hour", at(time.Friday, 13), true, ""},
		{"close day at hour", at(time.Friday, 14), false, "closed for the week"},
		{"after close day", at(time.Saturday, 9), false, "closed for the week"},
		{"sunday", at(time.Sunday, 12), false, "opens soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(s, tt.now)
			assert.Equal(t, tt.open, d.IsOpen)
			assert.Equal(t, tt.msg, d.Message)
		})
	}
}

func TestEvaluate_WrappingWindowNeverOpens(t *testing.T) {
	s := autoSettings(5, 18, 1, 10) // пятница — понедельник

	for day := time.Sunday; day <= time.Saturday; day++ {
		for hour := 0; hour < 24; hour++ {
			assert.False(t, Evaluate(s, at(day, hour)).IsOpen, "%s %d:00", day, hour)
		}
	}
}

func TestEvaluate_ManualOverride(t *testing.T) {
	closed := autoSettings(4, 7, 4, 16)
	closed.Status = ShopStatusClosed

	open := autoSettings(4, 7, 4, 16)
	open.Status = ShopStatusOpen

	for _, now := range []time.Time{at(time.Thursday, 10), at(time.Monday, 3), at(time.Wednesday, 23)} {
		assert.Equal(t, AvailabilityDecision{Message: "closed for the week"}, Evaluate(closed, now))
		assert.Equal(t, AvailabilityDecision{IsOpen: true}, Evaluate(open, now))
	}
}

func TestEvaluate_UsesLocationOfInstant(t *testing.T) {
	s := autoSettings(4, 7, 4, 16)
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	// 12:00 UTC в четверг — 09:00 в Сан-Паулу.
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC).In(saoPaulo)
	assert.True(t, Evaluate(s, now).IsOpen)

	// 02:00 UTC в четверг — ещё среда в Сан-Паулу.
	now = time.Date(2026, time.October, 15, 2, 0, 0, 0, time.UTC).In(saoPaulo)
	d := Evaluate(s, now)
	assert.False(t, d.IsOpen)
	assert.Equal(t, "opens soon", d.Message)
}

func TestFallbackOpen(t *testing.T) {
	assert.True(t, Evaluate(FallbackOpen(), at(time.Sunday, 3)).IsOpen)
}

func TestParseShopSettings_Defaults(t *testing.T) {
	s, err := ParseShopSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultShopSettings(), s)
	assert.Equal(t, ShopStatusAuto, s.Status)
	assert.Equal(t, 8, s.OpenHour)
	assert.Equal(t, "Aguarde a abertura dos pedidos.", s.OpeningMsg)
	assert.Equal(t, "Pedidos encerrados.", s.ClosingMsg)
}

func TestParseShopSettings_ClosedWithoutMessage(t *testing.T) {
	closed, err := ParseShopSettings(map[string]string{SettingShopStatus: "closed"})
	require.NoError(t, err)
	assert.Equal(t, DefaultClosedMsg, closed.ClosingMsg)
	assert.Equal(t, AvailabilityDecision{Message: "Fechado temporariamente."}, Evaluate(closed, at(time.Thursday, 10)))

	auto, err := ParseShopSettings(map[string]string{SettingShopStatus: "auto", SettingClosingMsg: ""})
	require.NoError(t, err)
	assert.Equal(t, AvailabilityDecision{Message: "Pedidos encerrados."}, Evaluate(auto, at(time.Saturday, 10)))
}

func TestParseShopSettings_Values(t *testing.T) {
	s, err := ParseShopSettings(map[string]string{
		SettingShopStatus: "closed",
		SettingOpenDay:    "2",
		SettingOpenHour:   "18",
		SettingCloseDay:   "5",
		SettingCloseHour:  "14",
		SettingOpeningMsg: "em breve",
		SettingClosingMsg: "fechado",
		"unrelated_key":   "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, ShopSettings{
		Status: ShopStatusClosed, OpenDay: 2, OpenHour: 18, CloseDay: 5, CloseHour: 14,
		OpeningMsg: "em breve", ClosingMsg: "fechado",
	}, s)
}

func TestParseShopSettings_InvalidFallsBackToDefaults(t *testing.T) {
	s, err := ParseShopSettings(map[string]string{
		SettingShopStatus: "maintenance",
		SettingOpenDay:    "7",
		SettingOpenHour:   "eight",
		SettingCloseHour:  "15",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidSetting)
	assert.Contains(t, err.Error(), SettingShopStatus)
	assert.Contains(t, err.Error(), SettingOpenDay)
	assert.Contains(t, err.Error(), SettingOpenHour)

	assert.Equal(t, ShopStatusAuto, s.Status)
	assert.Equal(t, DefaultOpenDay, s.OpenDay)
	assert.Equal(t, DefaultOpenHour, s.OpenHour)
	assert.Equal(t, 15, s.CloseHour)
}

func TestShopSettings_Validate(t *testing.T) {
	valid := DefaultFormSettings()
	require.NoError(t, valid.Validate())
	assert.Equal(t, 7, valid.OpenHour)

	wrapping := autoSettings(5, 18, 1, 10)
	assert.ErrorIs(t, wrapping.Validate(), e.ErrWrappingSchedule)

	empty := autoSettings(4, 16, 4, 16)
	assert.ErrorIs(t, empty.Validate(), e.ErrEmptySchedule)

	badStatus := valid
	badStatus.Status = "sometimes"
	assert.ErrorIs(t, badStatus.Validate(), e.ErrInvalidSetting)

	badHour := valid
	badHour.CloseHour = 24
	assert.ErrorIs(t, badHour.Validate(), e.ErrInvalidSetting)

	badDay := valid
	badDay.OpenDay = -1
	assert.ErrorIs(t, badDay.Validate(), e.ErrInvalidSetting)
}

func TestShopSettings_ToMapRoundTrip(t *testing.T) {
	s := autoSettings(2, 18, 5, 14)
	parsed, err := ParseShopSettings(s.ToMap())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
}
