package seo

import (
	"encoding/json"

	"finitefield.org/marketing-web/internal/config"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns the Organization schema for the site. The contact point
// is present only when a contact email is configured.
func Organization(site config.Site) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     site.Name,
		"url":      site.URL,
		"logo":     Absolute(site.URL, "/logo.png"),
	}
	if site.Description != "" {
		m["description"] = site.Description
	}
	if site.Contact.Email != "" {
		cp := map[string]any{
			"@type":       "ContactPoint",
			"email":       site.Contact.Email,
			"contactType": "customer service",
		}
		if site.Contact.Phone != "" {
			cp["telephone"] = site.Contact.Phone
		}
		m["contactPoint"] = cp
	}
	if sameAs := site.Social.SameAs(); len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns the WebSite schema with a site search action.
func WebSite(site config.Site) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      site.URL,
		"potentialAction": map[string]any{
			"@type":  "SearchAction",
			"target": Absolute(site.URL, "/search?q={search_term_string}"),
			"query-input": "required name=search_term_string",
		},
	}
	if site.Description != "" {
		m["description"] = site.Description
	}
	return m
}

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// Geo is a pair of coordinates.
type Geo struct {
	Latitude  float64
	Longitude float64
}

// LocalBusinessInfo carries the optional LocalBusiness fields. Empty name and
// description fall back to the site values.
type LocalBusinessInfo struct {
	Name         string
	Description  string
	Image        string
	Address      *PostalAddress
	Geo          *Geo
	OpeningHours []string
	PriceRange   string
}

// LocalBusiness returns a LocalBusiness schema.
func LocalBusiness(site config.Site, info LocalBusinessInfo) map[string]any {
	name := info.Name
	if name == "" {
		name = site.Name
	}
	description := info.Description
	if description == "" {
		description = site.Description
	}
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "LocalBusiness",
		"name":        name,
		"description": description,
		"url":         site.URL,
	}
	if site.Contact.Phone != "" {
		m["telephone"] = site.Contact.Phone
	}
	if site.Contact.Email != "" {
		m["email"] = site.Contact.Email
	}
	if info.Image != "" {
		m["image"] = Absolute(site.URL, info.Image)
	}
	if a := info.Address; a != nil {
		addr := map[string]any{"@type": "PostalAddress"}
		set := func(k, v string) {
			if v != "" {
				addr[k] = v
			}
		}
		set("streetAddress", a.Street)
		set("addressLocality", a.Locality)
		set("addressRegion", a.Region)
		set("postalCode", a.PostalCode)
		set("addressCountry", a.Country)
		m["address"] = addr
	}
	if g := info.Geo; g != nil {
		m["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  g.Latitude,
			"longitude": g.Longitude,
		}
	}
	if len(info.OpeningHours) > 0 {
		m["openingHoursSpecification"] = info.OpeningHours
	}
	if info.PriceRange != "" {
		m["priceRange"] = info.PriceRange
	}
	return m
}

// FAQEntry is one resolved question and answer.
type FAQEntry struct {
	Question string
	Answer   string
}

// FAQPage builds schema.org FAQPage.
func FAQPage(items []FAQEntry) map[string]any {
	entities := make([]map[string]any, 0, len(items))
	for _, it := range items {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  it.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  it.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
