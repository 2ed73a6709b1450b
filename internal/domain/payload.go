package domain

// Envelope holds the fields every payload variant carries.
type Envelope struct {
	Version          Version          `json:"version"`
	NotificationType NotificationType `json:"notificationType"`
	EventType        EventType        `json:"eventType"`
}

func (e Envelope) Variant() Variant {
	return Variant{Version: e.Version, NotificationType: e.NotificationType}
}

// Payload is the closed set of typed notification payloads. Only the six
// structs in this file implement it.
type Payload interface {
	Variant() Variant
	payload()
}

type EmailV1 struct {
	Envelope
	To           string        `json:"to"`
	Subject      string        `json:"subject"`
	Body         string        `json:"body"`
	FeatureFlags *FeatureFlags `json:"featureFlags,omitempty"`
	DeepLinkURL  *string       `json:"deepLinkUrl,omitempty"`
}

type PushV1 struct {
	Envelope
	DeviceToken  string        `json:"deviceToken"`
	Message      string        `json:"message"`
	FeatureFlags *FeatureFlags `json:"featureFlags,omitempty"`
	Priority     *Priority     `json:"priority,omitempty"`
}

type InAppV1 struct {
	Envelope
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type EmailV2 struct {
	Envelope
	To           string        `json:"to"`
	Subject      *string       `json:"subject,omitempty"`
	Body         string        `json:"body"`
	FeatureFlags *FeatureFlags `json:"featureFlags,omitempty"`
	DeepLinkURL  *string       `json:"deepLinkUrl,omitempty"`
	Footer       *string       `json:"footer,omitempty"`
}

type PushV2 struct {
	Envelope
	DeviceToken  string        `json:"deviceToken"`
	Message      string        `json:"message"`
	FeatureFlags *FeatureFlags `json:"featureFlags,omitempty"`
	Priority     *Priority     `json:"priority,omitempty"`
}

type InAppV2 struct {
	Envelope
	UserID   string  `json:"userId"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (EmailV1) payload() {}
func (PushV1) payload()  {}
func (InAppV1) payload() {}
func (EmailV2) payload() {}
func (PushV2) payload()  {}
func (InAppV2) payload() {}
