package model

import "encoding/json"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment mirrors the backend's appointment resource. The gateway
// creates appointments but never transitions their status afterwards.
type Appointment struct {
	ID        json.Number       `json:"id"`
	DoctorID  int64             `json:"doctor_id,omitempty"`
	PatientID string            `json:"patient_id,omitempty"`
	SlotID    int64             `json:"slot_id,omitempty"`
	Status    AppointmentStatus `json:"status,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Notes     string            `json:"notes_internal,omitempty"`
	Price     json.Number       `json:"price,omitempty"`

	Doctor *struct {
		Name           string `json:"name"`
		Specialization string `json:"specialization,omitempty"`
	} `json:"doctor,omitempty"`
	Patient *struct {
		Name string `json:"name"`
	} `json:"patient,omitempty"`
	Slot *Slot `json:"slot,omitempty"`
}

// BookingRequest is the gateway's booking submission payload.
type BookingRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	SlotID    int64  `json:"slot_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Notes     string `json:"notes" binding:"omitempty,max=1000"`
}

// Outcome classifies a booking submission attempt.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeStaleSlot Outcome = "stale_slot"
	OutcomeFailed    Outcome = "failed"
)

// AppointmentView is the normalized confirmation view model. Date is
// DD/MM/YYYY and Time is "HH:MM - HH:MM", both display formats only.
type AppointmentView struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	DoctorID  int64           `json:"doctor_id"`
	SlotID    int64           `json:"slot_id"`
	PatientID string          `json:"patient_id"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// BookingResult is returned on a successful submission.
type BookingResult struct {
	Appointment AppointmentView `json:"appointment"`
	Price       string          `json:"price"`
}
