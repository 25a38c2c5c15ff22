package config

// FeatureKey names one optional integration.
type FeatureKey string

// Known feature keys.
const (
	FeatureAnimations    FeatureKey = "animations"
	FeatureNewsletter    FeatureKey = "newsletter"
	FeatureAnalytics     FeatureKey = "analytics"
	FeatureContactForm   FeatureKey = "contactForm"
	FeatureChatWidget    FeatureKey = "chatWidget"
	FeatureCookieConsent FeatureKey = "cookieConsent"
)

// Toggle is implemented by every feature configuration.
type Toggle interface {
	IsEnabled() bool
}

// AnimationFeature controls micro-animations and transitions.
type AnimationFeature struct {
	Enabled bool
	Preset  string // none | subtle | full
}

// NewsletterFeature controls newsletter signup. An empty provider means stub mode.
type NewsletterFeature struct {
	Enabled  bool
	Provider string // mailchimp | convertkit | resend | ""
}

// AnalyticsFeature controls analytics tracking.
type AnalyticsFeature struct {
	Enabled     bool
	GAID        string
	GAAPISecret string
	MetaPixelID string
}

// ContactFormFeature controls the contact and quote forms.
type ContactFormFeature struct {
	Enabled  bool
	Endpoint string
}

// ChatWidgetFeature controls the third-party chat widget.
type ChatWidgetFeature struct {
	Enabled    bool
	Provider   string // tawk | crisp | intercom | ""
	PropertyID string
}

// CookieConsentFeature controls the cookie consent prompt.
type CookieConsentFeature struct {
	Enabled bool
	Mode    string // banner | modal
}

func (f AnimationFeature) IsEnabled() bool     { return f.Enabled }
func (f NewsletterFeature) IsEnabled() bool    { return f.Enabled }
func (f AnalyticsFeature) IsEnabled() bool     { return f.Enabled }
func (f ContactFormFeature) IsEnabled() bool   { return f.Enabled }
func (f ChatWidgetFeature) IsEnabled() bool    { return f.Enabled }
func (f CookieConsentFeature) IsEnabled() bool { return f.Enabled }

// Features is the full flag set. All features are opt-in and disabled by default.
type Features struct {
	Animations    AnimationFeature
	Newsletter    NewsletterFeature
	Analytics     AnalyticsFeature
	ContactForm   ContactFormFeature
	ChatWidget    ChatWidgetFeature
	CookieConsent CookieConsentFeature
}

// DefaultFeatures returns the flag set with every integration disabled.
func DefaultFeatures() Features {
	return Features{
		Animations:    AnimationFeature{Preset: "subtle"},
		CookieConsent: CookieConsentFeature{Mode: "banner"},
	}
}

// FeaturesFromEnv builds the flag set from a parsed environment.
func FeaturesFromEnv(e Env) Features {
	f := DefaultFeatures()
	f.Animations = AnimationFeature{Enabled: e.EnableAnimations, Preset: firstNonEmpty(e.AnimationPreset, "subtle")}
	f.Newsletter = NewsletterFeature{Enabled: e.EnableNewsletter, Provider: e.NewsletterProvider}
	f.Analytics = AnalyticsFeature{
		Enabled:     e.EnableAnalytics,
		GAID:        e.GAID,
		GAAPISecret: e.GAAPISecret,
		MetaPixelID: e.MetaPixelID,
	}
	f.ContactForm = ContactFormFeature{Enabled: e.EnableContactForm, Endpoint: e.ContactFormEndpoint}
	f.ChatWidget = ChatWidgetFeature{Enabled: e.EnableChatWidget, Provider: e.ChatProvider, PropertyID: e.ChatPropertyID}
	f.CookieConsent = CookieConsentFeature{Enabled: e.EnableCookieConsent, Mode: firstNonEmpty(e.CookieConsentMode, "banner")}
	return f
}

// Get returns the configuration for key.
func (f Features) Get(key FeatureKey) (Toggle, bool) {
	switch key {
	case FeatureAnimations:
		return f.Animations, true
	case FeatureNewsletter:
		return f.Newsletter, true
	case FeatureAnalytics:
		return f.Analytics, true
	case FeatureContactForm:
		return f.ContactForm, true
	case FeatureChatWidget:
		return f.ChatWidget, true
	case FeatureCookieConsent:
		return f.CookieConsent, true
	default:
		return nil, false
	}
}

// IsEnabled reports whether key names a known, enabled feature.
func (f Features) IsEnabled(key FeatureKey) bool {
	t, ok := f.Get(key)
	return ok && t.IsEnabled()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
