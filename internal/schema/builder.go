package schema

import (
	"github.com/xenlixai/aeoscan/internal/model"
)

// Context is the JSON-LD context every block carries
const Context = "https://schema.org"

// LocalBusiness builds a schema.org/LocalBusiness block from a profile.
// Fields absent from the profile are omitted; rating markup is only
// emitted when the profile actually carries rating data.
func LocalBusiness(p model.BusinessProfile) map[string]any {
	block := baseOrganization(p, "LocalBusiness")

	if p.Address != nil {
		block["address"] = postalAddress(*p.Address)
	}
	if p.Latitude != 0 || p.Longitude != 0 {
		block["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  p.Latitude,
			"longitude": p.Longitude,
		}
	}
	if len(p.OpeningHours) > 0 {
		block["openingHours"] = p.OpeningHours
	}
	if p.PriceRange != "" {
		block["priceRange"] = p.PriceRange
	}

	return block
}

// Organization builds a schema.org/Organization block from a profile
func Organization(p model.BusinessProfile) map[string]any {
	return baseOrganization(p, "Organization")
}

// FAQPage builds a schema.org/FAQPage block. Returns nil when there are
// no FAQ entries: an empty FAQPage is worse than none.
func FAQPage(faqs []model.FAQ) map[string]any {
	if len(faqs) == 0 {
		return nil
	}

	entities := make([]map[string]any, 0, len(faqs))
	for _, faq := range faqs {
		if faq.Question == "" || faq.Answer == "" {
			continue
		}
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  faq.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  faq.Answer,
			},
		})
	}
	if len(entities) == 0 {
		return nil
	}

	return map[string]any{
		"@context":   Context,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// AggregateRating builds a standalone schema.org/AggregateRating block.
// Returns nil unless the profile carries both a rating value and a review
// count; rating data is never fabricated.
func AggregateRating(p model.BusinessProfile) map[string]any {
	if p.RatingValue <= 0 || p.ReviewCount <= 0 {
		return nil
	}
	return map[string]any{
		"@context":    Context,
		"@type":       "AggregateRating",
		"ratingValue": p.RatingValue,
		"reviewCount": p.ReviewCount,
		"bestRating":  5,
		"itemReviewed": map[string]any{
			"@type": "Organization",
			"name":  p.Name,
		},
	}
}

func baseOrganization(p model.BusinessProfile, blockType string) map[string]any {
	block := map[string]any{
		"@context": Context,
		"@type":    blockType,
		"name":     p.Name,
	}

	if p.URL != "" {
		block["url"] = p.URL
	}
	if p.Description != "" {
		block["description"] = p.Description
	}
	if p.Phone != "" {
		block["telephone"] = p.Phone
	}
	if p.Email != "" {
		block["email"] = p.Email
	}
	if p.LogoURL != "" {
		block["logo"] = p.LogoURL
	}
	if p.ImageURL != "" {
		block["image"] = p.ImageURL
	}
	if len(p.SameAs) > 0 {
		block["sameAs"] = append([]string(nil), p.SameAs...)
	}
	if p.RatingValue > 0 && p.ReviewCount > 0 {
		block["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": p.RatingValue,
			"reviewCount": p.ReviewCount,
			"bestRating":  5,
		}
	}

	return block
}

func postalAddress(a model.PostalAddress) map[string]any {
	addr := map[string]any{"@type": "PostalAddress"}
	if a.Street != "" {
		addr["streetAddress"] = a.Street
	}
	if a.City != "" {
		addr["addressLocality"] = a.City
	}
	if a.Region != "" {
		addr["addressRegion"] = a.Region
	}
	if a.PostalCode != "" {
		addr["postalCode"] = a.PostalCode
	}
	if a.Country != "" {
		addr["addressCountry"] = a.Country
	}
	return addr
}
