package model

// SlotDateLayout is the backend's calendar-date convention.
const SlotDateLayout = "2006-01-02"

// Slot is a bookable time window for a doctor with a fixed capacity.
// Booked is incremented by the backend when an appointment is created
// against the slot; the gateway only re-fetches it.
type Slot struct {
	ID        int64  `json:"id"`
	DoctorID  int64  `json:"doctor_id"`
	SlotDate  string `json:"slot_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
}

// Bookable reports whether the slot still has capacity.
func (s Slot) Bookable() bool {
	return s.Booked < s.Capacity
}
