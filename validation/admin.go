package validation

type Login struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type NotesUpdate struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type BulkStatusUpdate struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Status string   `json:"status" validate:"required,oneof=pending approved rejected"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}
