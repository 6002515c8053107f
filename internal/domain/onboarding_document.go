package domain

import (
	"encoding/json"
	"reflect"
	"strings"
)

// OnboardingSchemaVersion is the document version written by this service.
const OnboardingSchemaVersion = 1

// OnboardingDocumentV1 is the questionnaire payload. Every field is optional;
// keys the schema does not know are preserved in Extra and written back under "extra_fields".
type OnboardingDocumentV1 struct {
	SchemaVersion int `json:"schema_version"`

	// Company information
	CompanyName          *string `json:"company_name,omitempty"`
	CompanyFoundedReason *string `json:"company_founded_reason,omitempty"`
	YearsInBusiness      *string `json:"years_in_business,omitempty"`
	Industry             *string `json:"industry,omitempty"`
	ProblemsSolved       *string `json:"problems_solved,omitempty"`
	LongTermGoals        *string `json:"long_term_goals,omitempty"`

	// Target audience
	PrimaryAudience    *string `json:"primary_audience,omitempty"`
	SecondaryAudience  *string `json:"secondary_audience,omitempty"`
	TertiaryAudience   *string `json:"tertiary_audience,omitempty"`
	IdealConsumer      *string `json:"ideal_consumer,omitempty"`
	MarketResearch     *string `json:"market_research,omitempty"`
	AudiencePainPoints *string `json:"audience_pain_points,omitempty"`
	BrandPerception    *string `json:"brand_perception,omitempty"`
	NotTarget          *string `json:"not_target,omitempty"`

	// Brand ecosystem
	WebsiteURL    *string `json:"website_url,omitempty"`
	Facebook      *string `json:"facebook,omitempty"`
	Twitter       *string `json:"twitter,omitempty"`
	LinkedIn      *string `json:"linkedin,omitempty"`
	Instagram     *string `json:"instagram,omitempty"`
	TikTok        *string `json:"tiktok,omitempty"`
	OtherPresence *string `json:"other_presence,omitempty"`

	// Business goals
	BusinessProblem   *string `json:"business_problem,omitempty"`
	ProjectGoals      *string `json:"project_goals,omitempty"`
	SuccessDefinition *string `json:"success_definition,omitempty"`

	// Brand values and tonality
	CompanyStandsFor  *string `json:"company_stands_for,omitempty"`
	MissionVision     *string `json:"mission_vision,omitempty"`
	BrandValues       *string `json:"brand_values,omitempty"`
	BrandAdjectives   *string `json:"brand_adjectives,omitempty"`
	NotAssociatedWith *string `json:"not_associated_with,omitempty"`
	BrandPersonality  *string `json:"brand_personality,omitempty"`
	ToneOfVoice       *string `json:"tone_of_voice,omitempty"`
	BrandEmotions     *string `json:"brand_emotions,omitempty"`
	PerceptionChange  *string `json:"perception_change,omitempty"`

	// Brand logistics
	BrandGuidelines *string `json:"brand_guidelines,omitempty"`
	VoiceDocument   *string `json:"voice_document,omitempty"`
	AssetLibrary    *string `json:"asset_library,omitempty"`
	BrandChanges    *string `json:"brand_changes,omitempty"`

	// Messaging goals
	VisitorFeeling *string `json:"visitor_feeling,omitempty"`
	VisitorGoals   *string `json:"visitor_goals,omitempty"`
	KeyMessage     *string `json:"key_message,omitempty"`
	CTAs           *string `json:"ctas,omitempty"`

	// Existing marketing
	MarketingCampaigns *string `json:"marketing_campaigns,omitempty"`
	OtherAgencies      *string `json:"other_agencies,omitempty"`
	AgencyPainPoints   *string `json:"agency_pain_points,omitempty"`

	// Competitor analysis
	Competitors          *string `json:"competitors,omitempty"`
	Differentiation      *string `json:"differentiation,omitempty"`
	CompetitorAdvantages *string `json:"competitor_advantages,omitempty"`
	InspiringBrands      *string `json:"inspiring_brands,omitempty"`

	// Project details
	Budget            *string `json:"budget,omitempty"`
	ReferralSource    *string `json:"referral_source,omitempty"`
	MultipleLanguages *string `json:"multiple_languages,omitempty"`
	Languages         *string `json:"languages,omitempty"`
	ImportantDates    *string `json:"important_dates,omitempty"`
	StockPhotography  *bool   `json:"stock_photography,omitempty"`
	Photoshoot        *bool   `json:"photoshoot,omitempty"`
	Copywriting       *bool   `json:"copywriting,omitempty"`
	SEO               *bool   `json:"seo,omitempty"`
	ExistingAnalytics *string `json:"existing_analytics,omitempty"`

	// Login information
	HostingLogin       *string `json:"hosting_login,omitempty"`
	DomainLogin        *string `json:"domain_login,omitempty"`
	CMSLogin           *string `json:"cms_login,omitempty"`
	EmailPlatformLogin *string `json:"email_platform_login,omitempty"`
	OtherIntegrations  *string `json:"other_integrations,omitempty"`

	// Asset upload
	BrandGuideURLs []string `json:"brand_guide_urls,omitempty"`
	LogoURLs       []string `json:"logo_urls,omitempty"`
	FontURLs       []string `json:"font_urls,omitempty"`
	MediaURLs      []string `json:"media_urls,omitempty"`

	// Contact information
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Role              *string `json:"role,omitempty"`
	ContactPreference *string `json:"contact_preference,omitempty"`
	AdditionalNotes   *string `json:"additional_notes,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

const extraFieldsKey = "extra_fields"

// onboardingKnownKeys is the set of json keys declared on OnboardingDocumentV1.
var onboardingKnownKeys = func() map[string]struct{} {
	keys := map[string]struct{}{extraFieldsKey: {}}
	t := reflect.TypeOf(OnboardingDocumentV1{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		keys[name] = struct{}{}
	}
	return keys
}()

// IsKnownOnboardingKey reports whether key is a typed field of the current schema.
func IsKnownOnboardingKey(key string) bool {
	_, ok := onboardingKnownKeys[key]
	return ok
}

type onboardingDocumentAlias OnboardingDocumentV1

func (d *OnboardingDocumentV1) UnmarshalJSON(data []byte) error {
	var alias onboardingDocumentAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	extra := make(map[string]json.RawMessage)
	if nested, ok := raw[extraFieldsKey]; ok {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(nested, &fields); err == nil {
			for k, v := range fields {
				extra[k] = v
			}
		}
	}
	for k, v := range raw {
		if !IsKnownOnboardingKey(k) {
			extra[k] = v
		}
	}

	*d = OnboardingDocumentV1(alias)
	if len(extra) > 0 {
		d.Extra = extra
	}
	if d.SchemaVersion == 0 {
		d.SchemaVersion = OnboardingSchemaVersion
	}
	return nil
}

func (d OnboardingDocumentV1) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(onboardingDocumentAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	extra, err := json.Marshal(d.Extra)
	if err != nil {
		return nil, err
	}
	out[extraFieldsKey] = extra
	return json.Marshal(out)
}

// Fields flattens the typed fields into a key-value view for rendering.
func (d OnboardingDocumentV1) Fields() (map[string]json.RawMessage, error) {
	data, err := json.Marshal(onboardingDocumentAlias(d))
	if err != nil {
		return nil, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssetURLs returns every uploaded URL referenced by the document.
func (d OnboardingDocumentV1) AssetURLs() []string {
	urls := make([]string, 0, len(d.BrandGuideURLs)+len(d.LogoURLs)+len(d.FontURLs)+len(d.MediaURLs))
	urls = append(urls, d.BrandGuideURLs...)
	urls = append(urls, d.LogoURLs...)
	urls = append(urls, d.FontURLs...)
	urls = append(urls, d.MediaURLs...)
	return urls
}
