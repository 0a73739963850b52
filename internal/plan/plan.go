package plan

// Tier identifies a billing plan. Changes only arrive via billing events.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Unlimited is the sentinel for numeric limits without a cap.
const Unlimited = -1

// Hard limits that apply regardless of plan tier.
const (
	MaxFieldValueLength    = 10000
	MaxFieldsPerSubmission = 50
	MaxFieldsPerForm       = 50
	MaxResponsesPerForm    = 1000
	MaxNotifyEmails        = 10
)

// Feature keys accepted by HasFeature.
const (
	FeatureCustomTheme  = "custom_theme"
	FeatureHideBranding = "hide_branding"
	FeatureCaptcha      = "captcha"
)

type Limits struct {
	MaxForms          int
	ResponsesPerMonth int
	CustomTheme       bool
	HideBranding      bool
	Captcha           bool
}

var limitsByTier = map[Tier]Limits{
	TierFree: {
		MaxForms:          5,
		ResponsesPerMonth: 100,
		CustomTheme:       false,
		HideBranding:      false,
		Captcha:           false,
	},
	TierPro: {
		MaxForms:          Unlimited,
		ResponsesPerMonth: Unlimited,
		CustomTheme:       true,
		HideBranding:      true,
		Captcha:           true,
	},
}

// LimitsFor returns the limit table for a tier. Unknown tiers get free limits.
func LimitsFor(tier Tier) Limits {
	if l, ok := limitsByTier[tier]; ok {
		return l
	}
	return limitsByTier[TierFree]
}

func IsPro(tier Tier) bool {
	return tier == TierPro
}

func HasFeature(tier Tier, feature string) bool {
	l := LimitsFor(tier)
	switch feature {
	case FeatureCustomTheme:
		return l.CustomTheme
	case FeatureHideBranding:
		return l.HideBranding
	case FeatureCaptcha:
		return l.Captcha
	default:
		return false
	}
}

// WithinFormCap reports whether an account holding count forms may create another.
func WithinFormCap(tier Tier, count int) bool {
	max := LimitsFor(tier).MaxForms
	return max == Unlimited || count < max
}
