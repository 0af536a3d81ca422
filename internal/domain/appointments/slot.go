package appointments

import (
	"fmt"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// Bookable day, every SlotInterval from FirstSlot up to (excluding) LastSlotEnd
const (
	FirstSlot    = "08:00"
	LastSlotEnd  = "18:00"
	SlotInterval = 30 * time.Minute
)

// Slot records whether a date and time has been booked
type Slot struct {
	ID          int64
	Date        string
	Time        string
	IsAvailable bool
}

// SlotAvailability is one entry of the daily slot grid
type SlotAvailability struct {
	Time        string
	IsAvailable bool
}

// DailySlots returns the start times of the bookable day: 08:00, 08:30 ... 17:30
func DailySlots() []string {
	start, _ := time.Parse(validators.TimeOfDayLayout, FirstSlot)
	end, _ := time.Parse(validators.TimeOfDayLayout, LastSlotEnd)

	var slots []string
	for t := start; t.Before(end); t = t.Add(SlotInterval) {
		slots = append(slots, t.Format(validators.TimeOfDayLayout))
	}
	return slots
}

// BuildAvailability overlays the known slots of a day on the daily grid.
// Times without a stored slot are available.
func BuildAvailability(known []*Slot) []SlotAvailability {
	byTime := make(map[string]bool, len(known))
	for _, slot := range known {
		byTime[slot.Time] = slot.IsAvailable
	}

	grid := DailySlots()
	result := make([]SlotAvailability, 0, len(grid))
	for _, t := range grid {
		available, ok := byTime[t]
		result = append(result, SlotAvailability{Time: t, IsAvailable: !ok || available})
	}
	return result
}

// MonthRange returns the first and last day of a month as YYYY-MM-DD
func MonthRange(year, month int) (string, string, error) {
	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1 || year > 9999 {
		return "", "", fmt.Errorf("year out of range: %d", year)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(validators.DateLayout), last.Format(validators.DateLayout), nil
}
