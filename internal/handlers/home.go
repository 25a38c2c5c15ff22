package handlers

import (
	"finitefield.org/marketing-web/internal/i18n"
	"finitefield.org/marketing-web/internal/marketing"
)

// MarketingNamespace is the catalog namespace section content keys are relative to.
const MarketingNamespace = "marketing"

// HomeView is the view model for the landing page.
type HomeView struct {
	Hero         marketing.HeroData
	Stats        marketing.StatsData
	Features     marketing.FeaturesData
	Testimonials marketing.TestimonialsData
	CTA          marketing.CTAData
}

// AboutView is the view model for the about page.
type AboutView struct {
	Hero   marketing.HeroData
	Values marketing.FeaturesData
	Stats  marketing.StatsData
	CTA    marketing.CTAData
}

// ServicesView is the view model for the services page.
type ServicesView struct {
	Hero     marketing.HeroData
	Services marketing.FeaturesData
	CTA      marketing.CTAData
}

// PricingView is the view model for the pricing page.
type PricingView struct {
	Pricing marketing.PricingData
	FAQ     marketing.FAQData
	CTA     marketing.CTAData
}

// BuildHomeData resolves the landing page content for the translator's locale.
func BuildHomeData(t i18n.Translator) HomeView {
	mt := t.Namespace(MarketingNamespace)
	c := marketing.Home()
	return HomeView{
		Hero:         marketing.HeroView(c.Hero, mt),
		Stats:        marketing.StatsView(c.Stats, mt),
		Features:     marketing.FeaturesView(c.Features, mt),
		Testimonials: marketing.TestimonialsView(c.Testimonials, mt),
		CTA:          marketing.CTAView(c.CTA, mt),
	}
}

// BuildAboutData resolves the about page content.
func BuildAboutData(t i18n.Translator) AboutView {
	mt := t.Namespace(MarketingNamespace)
	c := marketing.About()
	return AboutView{
		Hero:   marketing.HeroView(c.Hero, mt),
		Values: marketing.FeaturesView(c.Values, mt),
		Stats:  marketing.StatsView(c.Stats, mt),
		CTA:    marketing.CTAView(c.CTA, mt),
	}
}

// BuildServicesData resolves the services page content.
func BuildServicesData(t i18n.Translator) ServicesView {
	mt := t.Namespace(MarketingNamespace)
	c := marketing.Services()
	return ServicesView{
		Hero:     marketing.HeroView(c.Hero, mt),
		Services: marketing.FeaturesView(c.Services, mt),
		CTA:      marketing.CTAView(c.CTA, mt),
	}
}

// BuildPricingData resolves the pricing page content.
func BuildPricingData(t i18n.Translator) PricingView {
	mt := t.Namespace(MarketingNamespace)
	c := marketing.PricingContent()
	return PricingView{
		Pricing: marketing.PricingView(c.Pricing, mt),
		FAQ:     marketing.FAQView(c.FAQ, mt),
		CTA:     marketing.CTAView(c.CTA, mt),
	}
}
