// Package marketing defines the marketing section shapes, the site's static
// page content and the view functions that resolve them for templates.
//
// Text fields on content values are translation keys relative to the
// "marketing" namespace; literals (names, prices, stat values) are kept as is.
package marketing

import (
	"errors"
	"fmt"
)

// ErrInvalidContent is wrapped by every Validate error.
var ErrInvalidContent = errors.New("marketing: invalid content")

type HeroVariant string

const (
	HeroCentered HeroVariant = "centered"
	HeroSplit    HeroVariant = "split"
	HeroVideo    HeroVariant = "video"
	HeroImageBG  HeroVariant = "image-bg"
)

type FeaturesVariant string

const (
	FeaturesGrid        FeaturesVariant = "grid"
	FeaturesAlternating FeaturesVariant = "alternating"
	FeaturesIcons       FeaturesVariant = "icons"
)

type TestimonialsVariant string

const (
	TestimonialsCarousel TestimonialsVariant = "carousel"
	TestimonialsGrid     TestimonialsVariant = "grid"
	TestimonialsFeatured TestimonialsVariant = "featured"
)

type CTAVariant string

const (
	CTASimple   CTAVariant = "simple"
	CTASplit    CTAVariant = "split"
	CTABanner   CTAVariant = "banner"
	CTAFloating CTAVariant = "floating"
)

type CTABackground string

const (
	BackgroundPrimary   CTABackground = "primary"
	BackgroundSecondary CTABackground = "secondary"
	BackgroundGradient  CTABackground = "gradient"
	BackgroundImage     CTABackground = "image"
)

// Button is a call-to-action link. Label is a translation key.
type Button struct {
	Label   string
	Href    string
	Variant string // "", "outline" or "ghost"
}

type Hero struct {
	Variant         HeroVariant
	Headline        string
	Subheadline     string
	PrimaryCTA      Button
	SecondaryCTA    *Button
	BackgroundImage string
	Image           string
	VideoURL        string
}

type FeatureItem struct {
	Icon        string
	Title       string
	Description string
}

type Features struct {
	Variant  FeaturesVariant
	Title    string
	Subtitle string
	Items    []FeatureItem
	// Columns is 2, 3 or 4; zero means 3.
	Columns int
}

type Testimonial struct {
	Quote   string
	Author  string
	Role    string
	Company string
	Avatar  string
	// Rating is 1..5; zero hides the stars.
	Rating int
}

type Testimonials struct {
	Variant  TestimonialsVariant
	Title    string
	Subtitle string
	Items    []Testimonial
}

type CTA struct {
	Variant         CTAVariant
	Headline        string
	Description     string
	PrimaryButton   Button
	SecondaryButton *Button
	// Background defaults to primary.
	Background      CTABackground
	BackgroundImage string
}

type Stat struct {
	Value string
	Label string
}

type Stats struct {
	Title string
	Items []Stat
}

type PricingTier struct {
	Name        string
	Price       string
	Period      string
	Description string
	Features    []string
	CTA         Button
	Highlighted bool
	Badge       string
}

type Pricing struct {
	Title    string
	Subtitle string
	Tiers    []PricingTier
}

type FAQItem struct {
	Question string
	Answer   string
}

type FAQ struct {
	Title string
	Items []FAQItem
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidContent, fmt.Sprintf(format, args...))
}

func (b Button) validate(field string) error {
	if b.Label == "" || b.Href == "" {
		return invalid("%s requires label and href", field)
	}
	return nil
}

// Validate checks the hero variant and required keys.
func (h Hero) Validate() error {
	var errs []error
	switch h.Variant {
	case HeroCentered, HeroSplit, HeroVideo, HeroImageBG:
	default:
		errs = append(errs, invalid("unknown hero variant %q", h.Variant))
	}
	if h.Headline == "" {
		errs = append(errs, invalid("hero headline is required"))
	}
	if err := h.PrimaryCTA.validate("hero primary cta"); err != nil {
		errs = append(errs, err)
	}
	if h.SecondaryCTA != nil {
		if err := h.SecondaryCTA.validate("hero secondary cta"); err != nil {
			errs = append(errs, err)
		}
	}
	if h.Variant == HeroVideo && h.VideoURL == "" {
		errs = append(errs, invalid("video hero requires a video url"))
	}
	if h.Variant == HeroImageBG && h.BackgroundImage == "" {
		errs = append(errs, invalid("image-bg hero requires a background image"))
	}
	return errors.Join(errs...)
}

// Validate checks the variant, the column count and every item.
func (f Features) Validate() error {
	var errs []error
	switch f.Variant {
	case FeaturesGrid, FeaturesAlternating, FeaturesIcons:
	default:
		errs = append(errs, invalid("unknown features variant %q", f.Variant))
	}
	if f.Columns != 0 && (f.Columns < 2 || f.Columns > 4) {
		errs = append(errs, invalid("features columns must be 2..4, got %d", f.Columns))
	}
	if len(f.Items) == 0 {
		errs = append(errs, invalid("features require at least one item"))
	}
	for i, it := range f.Items {
		if it.Title == "" {
			errs = append(errs, invalid("feature %d title is required", i))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the variant, required quote/author and the rating range.
func (t Testimonials) Validate() error {
	var errs []error
	switch t.Variant {
	case TestimonialsCarousel, TestimonialsGrid, TestimonialsFeatured:
	default:
		errs = append(errs, invalid("unknown testimonials variant %q", t.Variant))
	}
	for i, it := range t.Items {
		if it.Quote == "" || it.Author == "" {
			errs = append(errs, invalid("testimonial %d requires quote and author", i))
		}
		if it.Rating < 0 || it.Rating > 5 {
			errs = append(errs, invalid("testimonial %d rating must be 1..5, got %d", i, it.Rating))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the variant, background and buttons.
func (c CTA) Validate() error {
	var errs []error
	switch c.Variant {
	case CTASimple, CTASplit, CTABanner, CTAFloating:
	default:
		errs = append(errs, invalid("unknown cta variant %q", c.Variant))
	}
	switch c.Background {
	case "", BackgroundPrimary, BackgroundSecondary, BackgroundGradient:
	case BackgroundImage:
		if c.BackgroundImage == "" {
			errs = append(errs, invalid("image background requires an image"))
		}
	default:
		errs = append(errs, invalid("unknown cta background %q", c.Background))
	}
	if c.Headline == "" {
		errs = append(errs, invalid("cta headline is required"))
	}
	if err := c.PrimaryButton.validate("cta primary button"); err != nil {
		errs = append(errs, err)
	}
	if c.SecondaryButton != nil {
		if err := c.SecondaryButton.validate("cta secondary button"); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s Stats) Validate() error {
	var errs []error
	for i, it := range s.Items {
		if it.Value == "" || it.Label == "" {
			errs = append(errs, invalid("stat %d requires value and label", i))
		}
	}
	return errors.Join(errs...)
}

// Validate checks every tier; at most one tier may be highlighted.
func (p Pricing) Validate() error {
	var errs []error
	if len(p.Tiers) == 0 {
		errs = append(errs, invalid("pricing requires at least one tier"))
	}
	highlighted := 0
	for i, tier := range p.Tiers {
		if tier.Name == "" {
			errs = append(errs, invalid("tier %d name is required", i))
		}
		if err := tier.CTA.validate(fmt.Sprintf("tier %d cta", i)); err != nil {
			errs = append(errs, err)
		}
		if tier.Highlighted {
			highlighted++
		}
	}
	if highlighted > 1 {
		errs = append(errs, invalid("only one tier may be highlighted, got %d", highlighted))
	}
	return errors.Join(errs...)
}

func (f FAQ) Validate() error {
	var errs []error
	for i, it := range f.Items {
		if it.Question == "" || it.Answer == "" {
			errs = append(errs, invalid("faq %d requires question and answer", i))
		}
	}
	return errors.Join(errs...)
}
