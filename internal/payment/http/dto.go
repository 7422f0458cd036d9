package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/payment"
)

type AttachProofRequest struct {
	Code   string `uri:"code" binding:"required,alphanum,len=8"`
	Method string `form:"method" binding:"omitempty,oneof=transfer qris cash"`
}

type PaymentResponse struct {
	ID                 string     `json:"id"`
	Amount             int64      `json:"amount"`
	Method             string     `json:"method"`
	ProofURL           string     `json:"proof_url"`
	ThumbnailURL       *string    `json:"thumbnail_url"`
	VerificationStatus string     `json:"verification_status"`
	VerifiedAt         *time.Time `json:"verified_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewPaymentResponse renders p with object paths turned into URLs by urlFor.
func NewPaymentResponse(p *payment.Payment, urlFor func(string) string) PaymentResponse {
	var thumb *string
	if p.ThumbnailPath != nil {
		u := urlFor(*p.ThumbnailPath)
		thumb = &u
	}
	return PaymentResponse{
		ID:                 p.ID,
		Amount:             p.Amount,
		Method:             string(p.Method),
		ProofURL:           urlFor(p.ProofPath),
		ThumbnailURL:       thumb,
		VerificationStatus: string(p.VerificationStatus),
		VerifiedAt:         p.VerifiedAt,
		CreatedAt:          p.CreatedAt,
	}
}
