package otp

import (
	"github.com/vikramraju/customer-feedback/backend/internal/domain/providers"
	"github.com/vikramraju/customer-feedback/backend/pkg/config"
)

// NewOTPProvider creates the configured OTP provider. An unconfigured or
// unknown provider falls back to the mock adapter for dev.
func NewOTPProvider(cfg *config.OTPConfig) (providers.OTPProvider, error) {
	switch cfg.Provider {
	case "twilio":
		return NewTwilioAdapter(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifySID)
	default:
		return NewMockAdapter(), nil
	}
}
