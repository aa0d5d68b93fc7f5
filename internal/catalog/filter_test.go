package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
)

func slot(id int64, date string, booked, capacity int) model.Slot {
	return model.Slot{
		ID:        id,
		DoctorID:  1,
		SlotDate:  date,
		StartTime: "09:00:00",
		EndTime:   "09:30:00",
		Capacity:  capacity,
		Booked:    booked,
	}
}

func TestFilterAvailableExcludesFullSlots(t *testing.T) {
	slots := []model.Slot{
		slot(1, "2024-05-01", 0, 1),
		slot(2, "2024-05-01", 1, 1),
		slot(3, "2024-05-01", 3, 2),
	}

	got := FilterAvailable(slots, "2024-05-01")

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterAvailableUnknownDateIsEmpty(t *testing.T) {
	slots := []model.Slot{
		slot(1, "2024-05-01", 0, 2),
		slot(2, "2024-05-02", 0, 2),
	}

	assert.Empty(t, FilterAvailable(slots, "2024-06-15"))
}

func TestFilterAvailableEmptyDateIsEmpty(t *testing.T) {
	slots := []model.Slot{slot(1, "2024-05-01", 0, 2)}

	assert.Empty(t, FilterAvailable(slots, ""))
	assert.Empty(t, FilterAvailable(slots, "   "))
}

func TestFilterAvailablePreservesBackendOrder(t *testing.T) {
	slots := []model.Slot{
		slot(5, "2024-05-01", 0, 2),
		slot(2, "2024-05-01", 0, 2),
		slot(9, "2024-05-01", 0, 2),
	}

	got := FilterAvailable(slots, "2024-05-01")

	ids := []int64{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []int64{5, 2, 9}, ids)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01"))
	assert.Equal(t, "2024-05-01", NormalizeDate(" 2024-05-01 "))
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01T09:00:00Z"))
	assert.Equal(t, "", NormalizeDate("01/05/2024"))
	assert.Equal(t, "", NormalizeDate("not-a-date"))
	assert.Equal(t, "", NormalizeDate(""))
}
