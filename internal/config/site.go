package config

// Site is the central source of truth for site metadata.
type Site struct {
	Name          string
	Description   string
	URL           string
	Author        Author
	Social        Social
	Locales       []string
	DefaultLocale string
	Contact       Contact
}

// Author describes who publishes the site.
type Author struct {
	Name  string
	Email string
	URL   string
}

// Social lists profile URLs; empty values are omitted from structured data.
type Social struct {
	Twitter   string
	GitHub    string
	LinkedIn  string
	Instagram string
	Facebook  string
}

// Contact holds public contact details.
type Contact struct {
	Email   string
	Phone   string
	Address string
}

// DefaultSite returns the site literal with the production URL taken from the environment.
// Update these values for each client.
func DefaultSite(appURL string) Site {
	if appURL == "" {
		appURL = "https://example.com"
	}
	return Site{
		Name:          "Site Name",
		Description:   "A modern marketing website built with Go",
		URL:           appURL,
		Locales:       []string{"en", "ar"},
		DefaultLocale: "en",
	}
}

// SameAs returns the non-empty social profile URLs in a stable order.
func (s Social) SameAs() []string {
	out := make([]string, 0, 4)
	for _, v := range []string{s.Twitter, s.LinkedIn, s.Facebook, s.Instagram} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// HasLocale reports whether locale is one of the supported locales.
func (s Site) HasLocale(locale string) bool {
	for _, l := range s.Locales {
		if l == locale {
			return true
		}
	}
	return false
}
