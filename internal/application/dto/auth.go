package dto

import "time"

type GuestRequest struct {
	DisplayName string `json:"displayName" validate:"omitempty,max=50,player_name"`
}

type ResumeRequest struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	RecoveryKey string `json:"recoveryKey" validate:"required,len=32,hexadecimal"`
}

// GuestSession is returned when a guest account is created or resumed. The
// recovery key is only present on creation.
type GuestSession struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	RecoveryKey string    `json:"recoveryKey,omitempty"`
}
