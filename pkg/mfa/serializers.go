package mfa

func DeserializeFactor(r FactorResponse) Factor {
	f := Factor{
		Object:    r.Object,
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Type:      FactorType(r.Type),
		UserID:    r.UserID,
	}
	if r.SMS != nil {
		f.SMS = &SMS{PhoneNumber: r.SMS.PhoneNumber}
	}
	if r.TOTP != nil {
		f.TOTP = &TOTP{
			Issuer: r.TOTP.Issuer,
			User:   r.TOTP.User,
			QRCode: r.TOTP.QRCode,
			Secret: r.TOTP.Secret,
			URI:    r.TOTP.URI,
		}
	}
	return f
}

func SerializeFactor(f Factor) FactorResponse {
	r := FactorResponse{
		Object:    f.Object,
		ID:        f.ID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		Type:      string(f.Type),
		UserID:    f.UserID,
	}
	if f.SMS != nil {
		r.SMS = &SMSResponse{PhoneNumber: f.SMS.PhoneNumber}
	}
	if f.TOTP != nil {
		r.TOTP = &TOTPResponse{
			Issuer: f.TOTP.Issuer,
			User:   f.TOTP.User,
			QRCode: f.TOTP.QRCode,
			Secret: f.TOTP.Secret,
			URI:    f.TOTP.URI,
		}
	}
	return r
}

func DeserializeChallenge(r ChallengeResponse) Challenge {
	return Challenge{
		Object:                 r.Object,
		ID:                     r.ID,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
		ExpiresAt:              r.ExpiresAt,
		Code:                   r.Code,
		AuthenticationFactorID: r.AuthenticationFactorID,
	}
}

func SerializeChallenge(c Challenge) ChallengeResponse {
	return ChallengeResponse{
		Object:                 c.Object,
		ID:                     c.ID,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
		ExpiresAt:              c.ExpiresAt,
		Code:                   c.Code,
		AuthenticationFactorID: c.AuthenticationFactorID,
	}
}
