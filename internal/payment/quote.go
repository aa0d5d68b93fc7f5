package payment

import "github.com/DIVIJ08070/doctor-appointment-app/internal/model"

// Quote returns the display consultation price for a doctor. Pricing is
// enforced upstream; this figure is informational only. Doctors with
// under two years of experience carry the introductory rate.
func Quote(doctor *model.Doctor) string {
	if doctor == nil {
		return ""
	}
	if doctor.Experience >= 2 {
		return "100"
	}
	return "500"
}
