package catalog

import (
	"strings"
	"time"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
)

// FilterAvailable keeps slots on the requested date that still have
// capacity. An unset date yields no slots: the user must pick a date
// before seeing options. Backend ordering is preserved.
func FilterAvailable(slots []model.Slot, date string) []model.Slot {
	date = NormalizeDate(date)
	if date == "" {
		return nil
	}

	var available []model.Slot
	for _, slot := range slots {
		if slot.SlotDate != date {
			continue
		}
		if !slot.Bookable() {
			continue
		}
		available = append(available, slot)
	}
	return available
}

// NormalizeDate coerces a date string to the backend's YYYY-MM-DD
// convention. Timestamps are truncated to their date part; anything
// unparseable normalizes to empty.
func NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}

	if idx := strings.IndexByte(date, 'T'); idx > 0 {
		date = date[:idx]
	}

	if _, err := time.Parse(model.SlotDateLayout, date); err != nil {
		return ""
	}
	return date
}
