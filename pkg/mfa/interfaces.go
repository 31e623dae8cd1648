package mfa

import "time"

// FactorType is the kind of second factor enrolled for a user.
type FactorType string

const (
	FactorTypeGenericOTP FactorType = "generic_otp"
	FactorTypeSMS        FactorType = "sms"
	FactorTypeTOTP       FactorType = "totp"
)

// TOTP holds the enrollment material of a time-based one-time password factor.
// Secret and QRCode are only returned at enrollment time.
type TOTP struct {
	Issuer string
	User   string
	QRCode string
	Secret string
	URI    string
}

type TOTPResponse struct {
	Issuer string `json:"issuer"`
	User   string `json:"user"`
	QRCode string `json:"qr_code,omitempty"`
	Secret string `json:"secret,omitempty"`
	URI    string `json:"uri,omitempty"`
}

type SMS struct {
	PhoneNumber string
}

type SMSResponse struct {
	PhoneNumber string `json:"phone_number"`
}

// Factor is an enrolled multi-factor authentication method.
type Factor struct {
	Object    string
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Type      FactorType
	SMS       *SMS
	TOTP      *TOTP
	UserID    string
}

type FactorResponse struct {
	Object    string        `json:"object"`
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Type      string        `json:"type"`
	SMS       *SMSResponse  `json:"sms,omitempty"`
	TOTP      *TOTPResponse `json:"totp,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
}

// Challenge is a pending verification against a Factor.
type Challenge struct {
	Object                 string
	ID                     string
	CreatedAt              time.Time
	UpdatedAt              time.Time
	ExpiresAt              *time.Time
	Code                   string
	AuthenticationFactorID string
}

type ChallengeResponse struct {
	Object                 string     `json:"object"`
	ID                     string     `json:"id"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	ExpiresAt              *time.Time `json:"expires_at,omitempty"`
	Code                   string     `json:"code,omitempty"`
	AuthenticationFactorID string     `json:"authentication_factor_id"`
}
