package booking

import (
	"encoding/json"
	"strings"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
)

// Selection is the client-side choice the user submitted, used as the
// fallback when the backend response omits slot detail. The backend is
// authoritative: server-echoed values win whenever present.
type Selection struct {
	DoctorID  int64
	SlotID    int64
	PatientID string
	SlotDate  string // YYYY-MM-DD
	StartTime string
	EndTime   string
}

// The backend's success body comes in known variants: a full appointment
// (has "id", may nest "slot"), a bare acknowledgement (only
// "appointmentId"), or an opaque body. Each is normalized by its own
// function, resolved by presence of fields.

type responseProbe struct {
	ID            json.Number `json:"id"`
	AppointmentID json.Number `json:"appointmentId"`
	SlotDate      string      `json:"slot_date"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	SlotTime      string      `json:"slot_time"`
	Slot          *model.Slot `json:"slot"`
}

// Normalize maps a raw backend response body onto the single
// confirmation view model.
func Normalize(raw json.RawMessage, sel Selection) model.AppointmentView {
	var probe responseProbe
	// An unparseable body falls through to the pure-fallback view.
	_ = json.Unmarshal(raw, &probe)

	switch {
	case probe.ID.String() != "":
		return normalizeAppointment(&probe, raw, sel, probe.ID.String())
	case probe.AppointmentID.String() != "":
		return normalizeAppointment(&probe, raw, sel, probe.AppointmentID.String())
	default:
		return normalizeOpaque(raw, sel)
	}
}

func normalizeAppointment(probe *responseProbe, raw json.RawMessage, sel Selection, id string) model.AppointmentView {
	view := baseView(raw, sel)
	view.ID = id

	if date := serverDate(probe); date != "" {
		view.Date = displayDate(date)
	}
	if t := serverTime(probe); t != "" {
		view.Time = t
	}
	return view
}

func normalizeOpaque(raw json.RawMessage, sel Selection) model.AppointmentView {
	return baseView(raw, sel)
}

func baseView(raw json.RawMessage, sel Selection) model.AppointmentView {
	return model.AppointmentView{
		Date:      displayDate(sel.SlotDate),
		Time:      displayTimeRange(sel.StartTime, sel.EndTime),
		DoctorID:  sel.DoctorID,
		SlotID:    sel.SlotID,
		PatientID: sel.PatientID,
		Raw:       raw,
	}
}

func serverDate(probe *responseProbe) string {
	if probe.Slot != nil && probe.Slot.SlotDate != "" {
		return probe.Slot.SlotDate
	}
	if probe.SlotDate != "" {
		return probe.SlotDate
	}
	return probe.Date
}

func serverTime(probe *responseProbe) string {
	if probe.Slot != nil && (probe.Slot.StartTime != "" || probe.Slot.EndTime != "") {
		return displayTimeRange(probe.Slot.StartTime, probe.Slot.EndTime)
	}
	if probe.Time != "" {
		return probe.Time
	}
	return probe.SlotTime
}

// displayDate renders YYYY-MM-DD as DD/MM/YYYY; anything else passes
// through unchanged.
func displayDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// displayTimeRange renders "HH:MM - HH:MM", dropping seconds. Display
// only; comparison logic never uses these strings.
func displayTimeRange(start, end string) string {
	start = truncateTime(start)
	end = truncateTime(end)
	if start == "" && end == "" {
		return ""
	}
	return start + " - " + end
}

func truncateTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
