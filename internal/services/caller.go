package services

// Caller is the authenticated identity a service acts on behalf of.
type Caller struct {
	UserID  uint
	IsStaff bool
}
