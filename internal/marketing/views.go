package marketing

import (
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"finitefield.org/marketing-web/internal/nav"
)

// Translator resolves keys for one locale. i18n.Translator satisfies it.
type Translator interface {
	T(key string) string
	Lang() string
}

// Link is a resolved button.
type Link struct {
	Label   string
	Href    string
	Variant string
}

type HeroData struct {
	Variant         string
	Class           string
	Headline        string
	Subheadline     string
	Primary         Link
	Secondary       *Link
	BackgroundImage string
	Image           string
	VideoURL        string
}

type FeatureData struct {
	Icon        template.HTML
	Title       string
	Description string
	// Reverse flips media and text in the alternating variant.
	Reverse bool
}

type FeaturesData struct {
	Variant   string
	Title     string
	Subtitle  string
	GridClass string
	Items     []FeatureData
}

type TestimonialData struct {
	Quote   string
	Author  string
	Initial string
	Role    string
	Company string
	Avatar  string
	Rating  int
	// Stars has one entry per star; true is filled.
	Stars []bool
}

type TestimonialsData struct {
	Variant  string
	Title    string
	Subtitle string
	Items    []TestimonialData
	Featured *TestimonialData
	Rest     []TestimonialData
}

type CTAData struct {
	Variant         string
	Class           string
	Headline        string
	Description     string
	Primary         Link
	Secondary       *Link
	BackgroundImage string
}

type StatData struct {
	Value string
	Label string
}

type StatsData struct {
	Title string
	Items []StatData
}

type TierData struct {
	Name        string
	Price       string
	Period      string
	Description string
	Features    []string
	CTA         Link
	Highlighted bool
	Badge       string
}

type PricingData struct {
	Title    string
	Subtitle string
	Tiers    []TierData
}

type FAQData struct {
	Title string
	Items []FAQItem
}

func link(b Button, t Translator) Link {
	return Link{Label: t.T(b.Label), Href: nav.LocalizedPath(t.Lang(), b.Href), Variant: b.Variant}
}

func optLink(b *Button, t Translator) *Link {
	if b == nil {
		return nil
	}
	l := link(*b, t)
	return &l
}

// tr translates non-empty keys; empty optional fields stay empty.
func tr(t Translator, key string) string {
	if key == "" {
		return ""
	}
	return t.T(key)
}

// HeroView resolves a hero for rendering.
func HeroView(h Hero, t Translator) HeroData {
	variant := h.Variant
	if variant == "" {
		variant = HeroCentered
	}
	return HeroData{
		Variant:         string(variant),
		Class:           "hero hero--" + string(variant),
		Headline:        tr(t, h.Headline),
		Subheadline:     tr(t, h.Subheadline),
		Primary:         link(h.PrimaryCTA, t),
		Secondary:       optLink(h.SecondaryCTA, t),
		BackgroundImage: h.BackgroundImage,
		Image:           h.Image,
		VideoURL:        h.VideoURL,
	}
}

// GridClass returns the responsive grid classes for a column count.
func GridClass(columns int) string {
	switch columns {
	case 2:
		return "grid grid-cols-1 md:grid-cols-2"
	case 4:
		return "grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4"
	default:
		return "grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3"
	}
}

// FeaturesView resolves a features section for rendering.
func FeaturesView(f Features, t Translator) FeaturesData {
	variant := f.Variant
	if variant == "" {
		variant = FeaturesGrid
	}
	items := make([]FeatureData, 0, len(f.Items))
	for i, it := range f.Items {
		items = append(items, FeatureData{
			Icon:        Icon(it.Icon, "feature__icon"),
			Title:       tr(t, it.Title),
			Description: tr(t, it.Description),
			Reverse:     variant == FeaturesAlternating && i%2 == 1,
		})
	}
	return FeaturesData{
		Variant:   string(variant),
		Title:     tr(t, f.Title),
		Subtitle:  tr(t, f.Subtitle),
		GridClass: GridClass(f.Columns),
		Items:     items,
	}
}

// Stars returns five entries with the first rating filled. Out of range ratings are clamped.
func Stars(rating int) []bool {
	if rating <= 0 {
		return nil
	}
	if rating > 5 {
		rating = 5
	}
	out := make([]bool, 5)
	for i := 0; i < rating; i++ {
		out[i] = true
	}
	return out
}

// Initial returns the upper-cased first letter of name.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// TestimonialsView resolves testimonials. The featured variant splits the first
// item from the rest.
func TestimonialsView(ts Testimonials, t Translator) TestimonialsData {
	variant := ts.Variant
	if variant == "" {
		variant = TestimonialsGrid
	}
	items := make([]TestimonialData, 0, len(ts.Items))
	for _, it := range ts.Items {
		items = append(items, TestimonialData{
			Quote:   tr(t, it.Quote),
			Author:  it.Author,
			Initial: Initial(it.Author),
			Role:    it.Role,
			Company: it.Company,
			Avatar:  it.Avatar,
			Rating:  it.Rating,
			Stars:   Stars(it.Rating),
		})
	}
	out := TestimonialsData{
		Variant:  string(variant),
		Title:    tr(t, ts.Title),
		Subtitle: tr(t, ts.Subtitle),
		Items:    items,
	}
	if variant == TestimonialsFeatured && len(items) > 0 {
		out.Featured = &items[0]
		out.Rest = items[1:]
	}
	return out
}

// CTAView resolves a call-to-action section.
func CTAView(c CTA, t Translator) CTAData {
	variant := c.Variant
	if variant == "" {
		variant = CTASimple
	}
	bg := c.Background
	if bg == "" {
		bg = BackgroundPrimary
	}
	out := CTAData{
		Variant:     string(variant),
		Class:       "cta cta--" + string(variant) + " cta--bg-" + string(bg),
		Headline:    tr(t, c.Headline),
		Description: tr(t, c.Description),
		Primary:     link(c.PrimaryButton, t),
		Secondary:   optLink(c.SecondaryButton, t),
	}
	if bg == BackgroundImage {
		out.BackgroundImage = c.BackgroundImage
	}
	return out
}

// StatsView resolves stat labels; values are literals.
func StatsView(s Stats, t Translator) StatsData {
	items := make([]StatData, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, StatData{Value: it.Value, Label: tr(t, it.Label)})
	}
	return StatsData{Title: tr(t, s.Title), Items: items}
}

// PricingView resolves pricing tiers. A tier without a price shows its period
// as the price label.
func PricingView(p Pricing, t Translator) PricingData {
	tiers := make([]TierData, 0, len(p.Tiers))
	for _, tier := range p.Tiers {
		features := make([]string, 0, len(tier.Features))
		for _, f := range tier.Features {
			features = append(features, tr(t, f))
		}
		td := TierData{
			Name:        tr(t, tier.Name),
			Price:       tier.Price,
			Period:      tr(t, tier.Period),
			Description: tr(t, tier.Description),
			Features:    features,
			CTA:         link(tier.CTA, t),
			Highlighted: tier.Highlighted,
			Badge:       tr(t, tier.Badge),
		}
		if td.Price == "" {
			td.Price, td.Period = td.Period, ""
		}
		tiers = append(tiers, td)
	}
	return PricingData{Title: tr(t, p.Title), Subtitle: tr(t, p.Subtitle), Tiers: tiers}
}

// FAQView resolves questions and answers.
func FAQView(f FAQ, t Translator) FAQData {
	items := make([]FAQItem, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, FAQItem{Question: tr(t, it.Question), Answer: tr(t, it.Answer)})
	}
	return FAQData{Title: tr(t, f.Title), Items: items}
}
