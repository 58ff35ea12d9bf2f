package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
)

// ShopStatus — режим приёма заказов.
type ShopStatus string

const (
	ShopStatusAuto   ShopStatus = "auto"
	ShopStatusOpen   ShopStatus = "open"
	ShopStatusClosed ShopStatus = "closed"
)

// Ключи настроек в хранилище конфигурации.
const (
	SettingShopStatus = "shop_status"
	SettingOpenDay    = "schedule_open_day"
	SettingOpenHour   = "schedule_open_hour"
	SettingCloseDay   = "schedule_close_day"
	SettingCloseHour  = "schedule_close_hour"
	SettingOpeningMsg = "opening_msg"
	SettingClosingMsg = "closing_msg"
)

// Значения по умолчанию для отсутствующих ключей.
// DefaultOpenHour используется при расчёте доступности, а DefaultFormOpenHour — в форме
// настроек и начальных данных. Расхождение 8 / 7 сохранено намеренно, пока
// бизнес не подтвердит реальный час открытия.
const (
	DefaultOpenDay      = 4 // четверг
	DefaultOpenHour     = 8
	DefaultFormOpenHour = 7
	DefaultCloseDay     = 4
	DefaultCloseHour    = 16
	DefaultOpeningMsg   = "Aguarde a abertura dos pedidos."
	DefaultClosingMsg   = "Pedidos encerrados."
	DefaultClosedMsg    = "Fechado temporariamente." // ручное закрытие без closing_msg

	DefaultFormOpeningMsg = "Os pedidos abrem na quinta-feira de manhã."
	DefaultFormClosingMsg = "Pedidos encerrados para esta semana."
)

// ShopSettings — типизированный снимок настроек приёма заказов.
type ShopSettings struct {
	Status     ShopStatus
	OpenDay    int // 0 = воскресенье .. 6 = суббота
	OpenHour   int // 0..23
	CloseDay   int
	CloseHour  int
	OpeningMsg string
	ClosingMsg string
}

// AvailabilityDecision — можно ли сейчас принимать заказы и что показать, если нельзя.
type AvailabilityDecision struct {
	IsOpen  bool
	Message string
}

// DefaultShopSettings возвращает настройки, которыми заполняются отсутствующие ключи.
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		Status:     ShopStatusAuto,
		OpenDay:    DefaultOpenDay,
		OpenHour:   DefaultOpenHour,
		CloseDay:   DefaultCloseDay,
		CloseHour:  DefaultCloseHour,
		OpeningMsg: DefaultOpeningMsg,
		ClosingMsg: DefaultClosingMsg,
	}
}

// DefaultFormSettings возвращает значения, предлагаемые формой настроек администратора.
func DefaultFormSettings() ShopSettings {
	s := DefaultShopSettings()
	s.OpenHour = DefaultFormOpenHour
	s.OpeningMsg = DefaultFormOpeningMsg
	s.ClosingMsg = DefaultFormClosingMsg
	return s
}

// FallbackOpen — снимок, который используется, если настройки получить не удалось.
// Приём заказов в этом случае не блокируется.
func FallbackOpen() ShopSettings {
	s := DefaultShopSettings()
	s.Status = ShopStatusOpen
	return s
}

// ParseShopSettings собирает настройки из пар ключ-значение.
// Отсутствующие и некорректные значения заменяются значениями по умолчанию;
// некорректные дополнительно возвращаются в ошибке, обёрнутой в e.ErrInvalidSetting.
func ParseShopSettings(values map[string]string) (ShopSettings, error) {
	s := DefaultShopSettings()
	var errs []error

	if v, ok := values[SettingShopStatus]; ok && strings.TrimSpace(v) != "" {
		status, err := parseStatus(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.Status = status
		}
	}

	intFields := []struct {
		key      string
		dst      *int
		min, max int
	}{
		{SettingOpenDay, &s.OpenDay, 0, 6},
		{SettingOpenHour, &s.OpenHour, 0, 23},
		{SettingCloseDay, &s.CloseDay, 0, 6},
		{SettingCloseHour, &s.CloseHour, 0, 23},
	}
	for _, f := range intFields {
		v, ok := values[f.key]
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := parseBounded(f.key, v, f.min, f.max)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*f.dst = n
	}

	if v := values[SettingOpeningMsg]; v != "" {
		s.OpeningMsg = v
	}
	if v := values[SettingClosingMsg]; v != "" {
		s.ClosingMsg = v
	} else if s.Status == ShopStatusClosed {
		s.ClosingMsg = DefaultClosedMsg
	}

	return s, errors.Join(errs...)
}

// ToMap переводит настройки в пары ключ-значение для хранилища.
func (s ShopSettings) ToMap() map[string]string {
	return map[string]string{
		SettingShopStatus: string(s.Status),
		SettingOpenDay:    strconv.Itoa(s.OpenDay),
		SettingOpenHour:   strconv.Itoa(s.OpenHour),
		SettingCloseDay:   strconv.Itoa(s.CloseDay),
		SettingCloseHour:  strconv.Itoa(s.CloseHour),
		SettingOpeningMsg: s.OpeningMsg,
		SettingClosingMsg: s.ClosingMsg,
	}
}

// Validate проверяет настройки перед сохранением. Окна, переходящие через границу недели,
// и пустые окна в пределах одного дня отклоняются.
func (s ShopSettings) Validate() error {
	if _, err := parseStatus(string(s.Status)); err != nil {
		return err
	}
	if !inRange(s.OpenDay, 0, 6) || !inRange(s.CloseDay, 0, 6) {
		return e.Wrap("day must be within 0..6", e.ErrInvalidSetting)
	}
	if !inRange(s.OpenHour, 0, 23) || !inRange(s.CloseHour, 0, 23) {
		return e.Wrap("hour must be within 0..23", e.ErrInvalidSetting)
	}
	if s.CloseDay < s.OpenDay {
		return e.ErrWrappingSchedule
	}
	if s.CloseDay == s.OpenDay && s.OpenHour >= s.CloseHour {
		return e.ErrEmptySchedule
	}
	return nil
}

// Evaluate решает, принимаются ли заказы в момент now.
// День недели и час берутся из часового пояса now.
func Evaluate(s ShopSettings, now time.Time) AvailabilityDecision {
	switch s.Status {
	case ShopStatusOpen:
		return AvailabilityDecision{IsOpen: true}
	case ShopStatusClosed:
		return AvailabilityDecision{IsOpen: false, Message: s.ClosingMsg}
	}

	day := int(now.Weekday())
	hour := now.Hour()

	if s.withinWindow(day, hour) {
		return AvailabilityDecision{IsOpen: true}
	}

	if day < s.OpenDay || (day == s.OpenDay && hour < s.OpenHour) {
		return AvailabilityDecision{IsOpen: false, Message: s.OpeningMsg}
	}
	return AvailabilityDecision{IsOpen: false, Message: s.ClosingMsg}
}

// withinWindow проверяет попадание в недельное окно. Окна с CloseDay < OpenDay не открываются никогда.
func (s ShopSettings) withinWindow(day, hour int) bool {
	switch {
	case s.OpenDay == s.CloseDay:
		return day == s.OpenDay && hour >= s.OpenHour && hour < s.CloseHour
	case s.CloseDay > s.OpenDay:
		return (day > s.OpenDay && day < s.CloseDay) ||
			(day == s.OpenDay && hour >= s.OpenHour) ||
			(day == s.CloseDay && hour < s.CloseHour)
	default:
		return false
	}
}

func parseStatus(v string) (ShopStatus, error) {
	switch ShopStatus(v) {
	case ShopStatusAuto, ShopStatusOpen, ShopStatusClosed:
		return ShopStatus(v), nil
	default:
		return "", e.Wrap(fmt.Sprintf("%s=%q", SettingShopStatus, v), e.ErrInvalidSetting)
	}
}

func parseBounded(key, v string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || !inRange(n, min, max) {
		return 0, e.Wrap(fmt.Sprintf("%s=%q", key, v), e.ErrInvalidSetting)
	}
	return n, nil
}

func inRange(n, min, max int) bool {
	return n >= min && n <= max
}
