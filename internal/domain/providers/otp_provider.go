package providers

import "context"

// OTP delivery channels supported by the verification providers.
const (
	OTPChannelSMS = "sms"
)

// OTPProvider defines the interface for one-time passcode delivery and
// verification. Implementations must not retry; failures surface to the
// caller immediately.
type OTPProvider interface {
	// Send asks the provider to deliver a code to the phone number
	Send(ctx context.Context, phone, channel string) error

	// Check verifies a submitted code; approved is false for a wrong or
	// expired code, err is reserved for provider failures
	Check(ctx context.Context, phone, code string) (approved bool, err error)
}
