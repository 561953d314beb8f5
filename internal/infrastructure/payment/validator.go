// Package payment resolves payment codes to acceleration tiers.
package payment

import (
	"context"
	"strings"

	"PubrootReview/internal/ports"
)

// Tiers recognized when resolving a payment code.
const (
	TierFree    = 0
	TierPaid    = 1
	TierPremium = 2
)

// CodeValidator maps a payment code to a tier without charging anything.
// Any non-empty code grants the paid tier; codes listed as premium grant
// tier 2. Settlement against the payment provider happens out of band.
type CodeValidator struct {
	premiumCodes map[string]bool
}

var _ ports.PaymentValidator = (*CodeValidator)(nil)

// NewCodeValidator registers the known premium codes.
func NewCodeValidator(premiumCodes []string) *CodeValidator {
	known := make(map[string]bool, len(premiumCodes))
	for _, code := range premiumCodes {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			known[trimmed] = true
		}
	}
	return &CodeValidator{premiumCodes: known}
}

// Tier resolves the code. Empty means the free tier.
func (v *CodeValidator) Tier(_ context.Context, paymentCode string) (int, error) {
	code := strings.TrimSpace(paymentCode)
	if code == "" {
		return TierFree, nil
	}
	if v.premiumCodes[code] {
		return TierPremium, nil
	}
	return TierPaid, nil
}
