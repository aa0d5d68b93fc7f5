package model

// Patient is created via the external patient CRUD screens; many-to-one
// with the authenticated account.
type Patient struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Gender  string   `json:"gender"`
	Phone   string   `json:"phone"`
	Address string   `json:"address,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
	DOB     string   `json:"dob,omitempty"`
}
