package medify

import "github.com/DIVIJ08070/doctor-appointment-app/internal/model"

// CreateAppointmentRequest is the wire payload for appointment creation.
// Field names follow the backend's snake_case contract.
type CreateAppointmentRequest struct {
	DoctorID  int64  `json:"doctor_id"`
	SlotID    int64  `json:"slot_id"`
	PatientID string `json:"patient_id"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes_internal,omitempty"`
}

// The backend wraps collections in named envelopes ({"doctors": [...]},
// {"slots": [...]}); each response type unwraps one of them.

type doctorsResponse struct {
	Doctors []model.Doctor `json:"doctors"`
}

type slotsResponse struct {
	Slots []model.Slot `json:"slots"`
}

type patientsResponse struct {
	Patients []model.Patient `json:"patients"`
}

type appointmentsResponse struct {
	Appointments []model.Appointment `json:"appointments"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
