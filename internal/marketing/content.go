package marketing

import (
	"errors"
	"strconv"
)

// HomePage is the landing page composition.
type HomePage struct {
	Hero         Hero
	Stats        Stats
	Features     Features
	Testimonials Testimonials
	CTA          CTA
}

type AboutPage struct {
	Hero   Hero
	Values Features
	Stats  Stats
	CTA    CTA
}

type ServicesPage struct {
	Hero     Hero
	Services Features
	CTA      CTA
}

type PricingPage struct {
	Pricing Pricing
	FAQ     FAQ
	CTA     CTA
}

func stats() Stats {
	return Stats{
		Title: "stats.title",
		Items: []Stat{
			{Value: "500+", Label: "stats.projects"},
			{Value: "99%", Label: "stats.satisfaction"},
			{Value: "24/7", Label: "stats.support"},
			{Value: "50+", Label: "stats.countries"},
		},
	}
}

// Home returns the landing page content.
func Home() HomePage {
	return HomePage{
		Hero: Hero{
			Variant:      HeroCentered,
			Headline:     "hero.headline",
			Subheadline:  "hero.subheadline",
			PrimaryCTA:   Button{Label: "hero.primaryCta", Href: "/contact"},
			SecondaryCTA: &Button{Label: "hero.secondaryCta", Href: "/services", Variant: "outline"},
		},
		Stats: stats(),
		Features: Features{
			Variant:  FeaturesGrid,
			Title:    "features.title",
			Subtitle: "features.subtitle",
			Columns:  3,
			Items: []FeatureItem{
				{Icon: "Zap", Title: "features.items.0.title", Description: "features.items.0.description"},
				{Icon: "Shield", Title: "features.items.1.title", Description: "features.items.1.description"},
				{Icon: "Sparkles", Title: "features.items.2.title", Description: "features.items.2.description"},
				{Icon: "Globe", Title: "features.items.3.title", Description: "features.items.3.description"},
				{Icon: "Rocket", Title: "features.items.4.title", Description: "features.items.4.description"},
				{Icon: "HeartHandshake", Title: "features.items.5.title", Description: "features.items.5.description"},
			},
		},
		Testimonials: Testimonials{
			Variant:  TestimonialsGrid,
			Title:    "testimonials.title",
			Subtitle: "testimonials.subtitle",
			Items: []Testimonial{
				{Quote: "testimonials.items.0.quote", Author: "Sarah Johnson", Role: "CEO", Company: "TechCorp", Rating: 5},
				{Quote: "testimonials.items.1.quote", Author: "Michael Chen", Role: "Founder", Company: "StartupXYZ", Rating: 5},
				{Quote: "testimonials.items.2.quote", Author: "Emily Davis", Role: "Marketing Director", Company: "GrowthCo", Rating: 5},
			},
		},
		CTA: CTA{
			Variant:         CTASimple,
			Headline:        "cta.headline",
			Description:     "cta.description",
			PrimaryButton:   Button{Label: "cta.primaryButton", Href: "/contact"},
			SecondaryButton: &Button{Label: "cta.secondaryButton", Href: "/pricing", Variant: "outline"},
			Background:      BackgroundPrimary,
		},
	}
}

// About returns the about page content.
func About() AboutPage {
	return AboutPage{
		Hero: Hero{
			Variant:     HeroCentered,
			Headline:    "about.hero.headline",
			Subheadline: "about.hero.subheadline",
			PrimaryCTA:  Button{Label: "about.hero.primaryCta", Href: "/contact"},
		},
		Values: Features{
			Variant:  FeaturesIcons,
			Title:    "about.values.title",
			Subtitle: "about.values.subtitle",
			Columns:  3,
			Items: []FeatureItem{
				{Icon: "Eye", Title: "about.values.items.0.title", Description: "about.values.items.0.description"},
				{Icon: "HeartHandshake", Title: "about.values.items.1.title", Description: "about.values.items.1.description"},
				{Icon: "MessageCircle", Title: "about.values.items.2.title", Description: "about.values.items.2.description"},
			},
		},
		Stats: stats(),
		CTA: CTA{
			Variant:       CTABanner,
			Headline:      "about.cta.headline",
			PrimaryButton: Button{Label: "about.cta.primaryButton", Href: "/contact"},
			Background:    BackgroundGradient,
		},
	}
}

// Services returns the services page content.
func Services() ServicesPage {
	return ServicesPage{
		Hero: Hero{
			Variant:      HeroSplit,
			Headline:     "services.hero.headline",
			Subheadline:  "services.hero.subheadline",
			PrimaryCTA:   Button{Label: "services.hero.primaryCta", Href: "/quote"},
			SecondaryCTA: &Button{Label: "services.hero.secondaryCta", Href: "/pricing", Variant: "outline"},
			Image:        "/assets/img/services.svg",
		},
		Services: Features{
			Variant:  FeaturesAlternating,
			Title:    "services.list.title",
			Subtitle: "services.list.subtitle",
			Columns:  2,
			Items: []FeatureItem{
				{Icon: "Compass", Title: "services.list.items.0.title", Description: "services.list.items.0.description"},
				{Icon: "PenTool", Title: "services.list.items.1.title", Description: "services.list.items.1.description"},
				{Icon: "Code", Title: "services.list.items.2.title", Description: "services.list.items.2.description"},
				{Icon: "TrendingUp", Title: "services.list.items.3.title", Description: "services.list.items.3.description"},
			},
		},
		CTA: CTA{
			Variant:       CTASplit,
			Headline:      "services.cta.headline",
			PrimaryButton: Button{Label: "services.cta.primaryButton", Href: "/contact"},
			Background:    BackgroundSecondary,
		},
	}
}

func tierFeatures(tier string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "pricing.tiers." + tier + ".features." + strconv.Itoa(i)
	}
	return out
}

// PricingContent returns the pricing page content.
func PricingContent() PricingPage {
	return PricingPage{
		Pricing: Pricing{
			Title:    "pricing.title",
			Subtitle: "pricing.subtitle",
			Tiers: []PricingTier{
				{
					Name:        "pricing.tiers.0.name",
					Price:       "$2,900",
					Period:      "pricing.tiers.0.period",
					Description: "pricing.tiers.0.description",
					Features:    tierFeatures("0", 3),
					CTA:         Button{Label: "pricing.tiers.0.cta", Href: "/contact", Variant: "outline"},
				},
				{
					Name:        "pricing.tiers.1.name",
					Price:       "$7,500",
					Period:      "pricing.tiers.1.period",
					Description: "pricing.tiers.1.description",
					Features:    tierFeatures("1", 4),
					CTA:         Button{Label: "pricing.tiers.1.cta", Href: "/quote"},
					Highlighted: true,
					Badge:       "pricing.tiers.1.badge",
				},
				{
					Name:        "pricing.tiers.2.name",
					Period:      "pricing.tiers.2.period",
					Description: "pricing.tiers.2.description",
					Features:    tierFeatures("2", 3),
					CTA:         Button{Label: "pricing.tiers.2.cta", Href: "/contact", Variant: "outline"},
				},
			},
		},
		FAQ: FAQ{
			Title: "pricing.faq.title",
			Items: []FAQItem{
				{Question: "pricing.faq.items.0.question", Answer: "pricing.faq.items.0.answer"},
				{Question: "pricing.faq.items.1.question", Answer: "pricing.faq.items.1.answer"},
				{Question: "pricing.faq.items.2.question", Answer: "pricing.faq.items.2.answer"},
			},
		},
		CTA: Home().CTA,
	}
}

// ValidateAll checks every static page so a broken literal fails at startup.
func ValidateAll() error {
	home, about, services, pricing := Home(), About(), Services(), PricingContent()
	return errors.Join(
		home.Hero.Validate(), home.Stats.Validate(), home.Features.Validate(),
		home.Testimonials.Validate(), home.CTA.Validate(),
		about.Hero.Validate(), about.Values.Validate(), about.Stats.Validate(), about.CTA.Validate(),
		services.Hero.Validate(), services.Services.Validate(), services.CTA.Validate(),
		pricing.Pricing.Validate(), pricing.FAQ.Validate(), pricing.CTA.Validate(),
	)
}
