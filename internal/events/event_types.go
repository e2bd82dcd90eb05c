package events

// EventType identifies a published domain event.
type EventType string

const (
	// EventAdminSignedUp fires when a new admin registers and needs OTP
	// verification.
	EventAdminSignedUp EventType = "admin.signed_up"

	// EventOTPIssued fires whenever a fresh one-time code is attached to an
	// account (forgot password, resend).
	EventOTPIssued EventType = "auth.otp_issued"

	// EventCredentialsIssued fires when an account is provisioned with
	// generated or operator-supplied credentials that must be delivered.
	EventCredentialsIssued EventType = "account.credentials_issued"
)

// Event carries a domain event and its notification payload.
type Event struct {
	Type    EventType
	Email   string
	Payload map[string]any
}
