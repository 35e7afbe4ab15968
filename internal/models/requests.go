package models

// RegisterRequest is the payload for POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=190"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Timezone string `json:"timezone" validate:"omitempty,iana_timezone"`
}

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the payload for POST /api/auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateTimezoneRequest is the payload for PUT /api/me/timezone
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone" validate:"required,iana_timezone"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CreateMedicationRequest is the payload for POST /api/medications
type CreateMedicationRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=150"`
	Dosage      string  `json:"dosage" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateMedicationRequest is the payload for PUT /api/medications/{id}
type UpdateMedicationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Dosage      *string `json:"dosage" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Active      *bool   `json:"active"`
}

// CreateReminderRequest is the payload for POST /api/reminders
type CreateReminderRequest struct {
	MedicationID uint64 `json:"medication_id" validate:"required"`
	TimeOfDay    string `json:"time_of_day" validate:"required,time_of_day"`
}

// UpdateReminderRequest is the payload for PUT /api/reminders/{id}
type UpdateReminderRequest struct {
	TimeOfDay *string `json:"time_of_day" validate:"omitempty,time_of_day"`
	Active    *bool   `json:"active"`
}

// CreateIntakeRequest is the payload for POST /api/intakes
type CreateIntakeRequest struct {
	MedicationID uint64  `json:"medication_id" validate:"required"`
	ReminderID   *uint64 `json:"reminder_id"`
	Status       string  `json:"status" validate:"required,intake_status"`
	Notes        *string `json:"notes" validate:"omitempty,max=1000"`
}
