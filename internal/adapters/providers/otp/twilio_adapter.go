package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vikramraju/customer-feedback/backend/internal/domain/providers"
)

const twilioVerifyBaseURL = "https://verify.twilio.com/v2"

// TwilioAdapter implements OTPProvider against the Twilio Verify API.
type TwilioAdapter struct {
	accountSID string
	authToken  string
	serviceSID string
	httpClient *http.Client
	baseURL    string
}

// NewTwilioAdapter creates a new Twilio Verify adapter.
func NewTwilioAdapter(accountSID, authToken, serviceSID string) (*TwilioAdapter, error) {
	if accountSID == "" || authToken == "" || serviceSID == "" {
		return nil, fmt.Errorf("twilio account sid, auth token and verify service sid must be set")
	}

	return &TwilioAdapter{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: twilioVerifyBaseURL,
	}, nil
}

type twilioVerification struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send starts a verification for the phone number on the given channel.
func (a *TwilioAdapter) Send(ctx context.Context, phone, channel string) error {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", channel)

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", a.baseURL, a.serviceSID)
	verification, err := a.post(ctx, endpoint, form)
	if err != nil {
		return err
	}

	if verification.Status != "pending" && verification.Status != "approved" {
		return fmt.Errorf("unexpected verification status %q", verification.Status)
	}

	return nil
}

// Check verifies a submitted code against the pending verification.
func (a *TwilioAdapter) Check(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", a.baseURL, a.serviceSID)
	verification, err := a.post(ctx, endpoint, form)
	if err != nil {
		return false, err
	}

	return verification.Status == "approved", nil
}

func (a *TwilioAdapter) post(ctx context.Context, endpoint string, form url.Values) (*twilioVerification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.SetBasicAuth(a.accountSID, a.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read verify response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr twilioError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("verify API error %d: %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("verify API returned status %d", resp.StatusCode)
	}

	var verification twilioVerification
	if err := json.Unmarshal(body, &verification); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	return &verification, nil
}

var _ providers.OTPProvider = (*TwilioAdapter)(nil)
