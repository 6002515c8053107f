package service

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/samber/lo"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
)

const (
	missingValue          = "N/A"
	additionalFieldsTitle = "Additional Fields"
)

type renderField struct {
	key      string
	label    string
	required bool
}

type renderSection struct {
	title  string
	fields []renderField
}

func requiredField(key, label string) renderField { return renderField{key: key, label: label, required: true} }
func optionalField(key, label string) renderField { return renderField{key: key, label: label} }

// onboardingLayout orders the questionnaire for display. Required fields show N/A when missing;
// optional ones are left out.
var onboardingLayout = []renderSection{
	{"Company Information", []renderField{
		requiredField("company_name", "Company Name"),
		requiredField("years_in_business", "Years in Business"),
		requiredField("industry", "Industry"),
		requiredField("company_founded_reason", "Why Founded"),
		requiredField("problems_solved", "Problems Solved"),
		requiredField("long_term_goals", "Long-term Goals"),
	}},
	{"Target Audience", []renderField{
		requiredField("primary_audience", "Primary Audience"),
		optionalField("secondary_audience", "Secondary Audience"),
		optionalField("tertiary_audience", "Tertiary Audience"),
		requiredField("ideal_consumer", "Ideal Consumer"),
		optionalField("market_research", "Market Research"),
		requiredField("audience_pain_points", "Audience Pain Points"),
		optionalField("brand_perception", "Brand Perception"),
		optionalField("not_target", "Not Our Audience"),
	}},
	{"Brand Ecosystem", []renderField{
		optionalField("website_url", "Website"),
		optionalField("facebook", "Facebook"),
		optionalField("instagram", "Instagram"),
		optionalField("linkedin", "LinkedIn"),
		optionalField("twitter", "Twitter/X"),
		optionalField("tiktok", "TikTok"),
		optionalField("other_presence", "Other Presence"),
	}},
	{"Business Goals", []renderField{
		requiredField("business_problem", "Business Problem"),
		requiredField("project_goals", "Project Goals"),
		requiredField("success_definition", "Success Definition"),
	}},
	{"Brand Values & Tonality", []renderField{
		requiredField("company_stands_for", "What Company Stands For"),
		requiredField("mission_vision", "Mission/Vision"),
		requiredField("brand_values", "Brand Values"),
		requiredField("brand_adjectives", "Brand Adjectives"),
		optionalField("not_associated_with", "Not Associated With"),
		requiredField("brand_personality", "Brand Personality"),
		requiredField("tone_of_voice", "Tone of Voice"),
		requiredField("brand_emotions", "Brand Emotions"),
		optionalField("perception_change", "Perception Change"),
	}},
	{"Brand Logistics", []renderField{
		optionalField("brand_guidelines", "Brand Guidelines"),
		optionalField("voice_document", "Voice Document"),
		optionalField("asset_library", "Asset Library"),
		optionalField("brand_changes", "Brand Changes"),
	}},
	{"Messaging Goals", []renderField{
		requiredField("visitor_feeling", "Visitor Feeling"),
		requiredField("visitor_goals", "Visitor Goals"),
		requiredField("key_message", "Key Message"),
		optionalField("ctas", "Calls to Action"),
	}},
	{"Existing Marketing", []renderField{
		optionalField("marketing_campaigns", "Marketing Campaigns"),
		optionalField("other_agencies", "Other Agencies"),
		optionalField("agency_pain_points", "Agency Pain Points"),
	}},
	{"Competitor Analysis", []renderField{
		requiredField("competitors", "Top Competitors"),
		requiredField("differentiation", "Differentiation"),
		optionalField("competitor_advantages", "Competitor Advantages"),
		optionalField("inspiring_brands", "Inspiring Brands"),
	}},
	{"Project Details", []renderField{
		requiredField("budget", "Budget"),
		requiredField("referral_source", "Referral Source"),
		optionalField("multiple_languages", "Multiple Languages"),
		optionalField("languages", "Languages"),
		optionalField("important_dates", "Important Dates"),
		optionalField("stock_photography", "Stock Photography"),
		optionalField("photoshoot", "Custom Photoshoot"),
		optionalField("copywriting", "Copywriting"),
		optionalField("seo", "SEO Services"),
		optionalField("existing_analytics", "Existing Analytics"),
	}},
	{"Login Information", []renderField{
		optionalField("hosting_login", "Hosting"),
		optionalField("domain_login", "Domain"),
		optionalField("cms_login", "CMS"),
		optionalField("email_platform_login", "Email Platform"),
		optionalField("other_integrations", "Other Integrations"),
	}},
	{"Uploaded Assets", []renderField{
		optionalField("brand_guide_urls", "Brand Guides"),
		optionalField("logo_urls", "Logos"),
		optionalField("font_urls", "Fonts"),
		optionalField("media_urls", "Media"),
	}},
	{"Contact Information", []renderField{
		requiredField("first_name", "First Name"),
		requiredField("last_name", "Last Name"),
		requiredField("email", "Email"),
		requiredField("phone", "Phone"),
		requiredField("role", "Role"),
		requiredField("contact_preference", "Preferred Contact Method"),
		optionalField("additional_notes", "Additional Notes"),
	}},
}

// RenderOnboarding turns a document into display sections. A section with none of its fields
// present is omitted. Keys outside the schema are listed under "Additional Fields".
func RenderOnboarding(doc *domain.OnboardingDocumentV1) []dto.OnboardingSection {
	fields, err := doc.Fields()
	if err != nil {
		fields = map[string]json.RawMessage{}
	}

	sections := make([]dto.OnboardingSection, 0, len(onboardingLayout)+1)
	for _, layout := range onboardingLayout {
		var out []dto.OnboardingField
		present := false
		for _, f := range layout.fields {
			value, ok := displayValue(fields[f.key])
			switch {
			case ok:
				present = true
				out = append(out, dto.OnboardingField{Label: f.label, Value: value})
			case f.required:
				out = append(out, dto.OnboardingField{Label: f.label, Value: missingValue})
			}
		}
		if present {
			sections = append(sections, dto.OnboardingSection{Title: layout.title, Fields: out})
		}
	}

	if extra := renderExtra(doc.Extra); len(extra) > 0 {
		sections = append(sections, dto.OnboardingSection{Title: additionalFieldsTitle, Fields: extra})
	}
	return sections
}

func renderExtra(extra map[string]json.RawMessage) []dto.OnboardingField {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.OnboardingField, 0, len(keys))
	for _, k := range keys {
		if value, ok := displayValue(extra[k]); ok {
			out = append(out, dto.OnboardingField{Label: k, Value: value})
		}
	}
	return out
}

// displayValue formats a raw JSON value. ok is false for null, blank strings and empty lists.
func displayValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "Yes", true
		}
		return "No", true
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		list = lo.Compact(list)
		return strings.Join(list, "\n"), len(list) > 0
	}

	return string(raw), true
}
