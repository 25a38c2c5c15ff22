package handlers

import (
	"finitefield.org/marketing-web/internal/analytics"
	"finitefield.org/marketing-web/internal/config"
)

// Consent values stored in the session.
const (
	ConsentAccepted = "accepted"
	ConsentDeclined = "declined"
)

// Integrations holds the third-party client snippets surfaced to templates.
type Integrations struct {
	Analytics analytics.ClientConfig
	Chat      ChatWidget
	Consent   ConsentPrompt
}

// ChatWidget configures the chat provider script.
type ChatWidget struct {
	Enabled    bool
	Provider   string // tawk | crisp | intercom
	PropertyID string
}

// Show reports whether a provider script should be emitted.
func (c ChatWidget) Show() bool { return c.Enabled && c.Provider != "" && c.PropertyID != "" }

// ConsentPrompt configures the cookie consent banner or modal.
type ConsentPrompt struct {
	Enabled bool
	Mode    string // banner | modal
	Decided bool
}

// Show reports whether the prompt is still pending for this visitor.
func (c ConsentPrompt) Show() bool { return c.Enabled && !c.Decided }

// IsModal reports whether the prompt renders as a modal dialog.
func (c ConsentPrompt) IsModal() bool { return c.Mode == "modal" }

// BuildIntegrations derives client integrations from the feature flags and the
// visitor's consent choice. Declining consent suppresses analytics snippets.
func BuildIntegrations(f config.Features, consent string) Integrations {
	out := Integrations{
		Analytics: analytics.Client(f.Analytics),
		Chat: ChatWidget{
			Enabled:    f.ChatWidget.Enabled,
			Provider:   f.ChatWidget.Provider,
			PropertyID: f.ChatWidget.PropertyID,
		},
		Consent: ConsentPrompt{
			Enabled: f.CookieConsent.Enabled,
			Mode:    f.CookieConsent.Mode,
			Decided: consent == ConsentAccepted || consent == ConsentDeclined,
		},
	}
	if f.CookieConsent.Enabled && consent == ConsentDeclined {
		out.Analytics.Enabled = false
	}
	return out
}
