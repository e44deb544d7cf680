package dto

type SetModeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

type SetProviderRequest struct {
	Provider string `json:"provider" validate:"required"`
}

// SetCredentialsRequest is a partial update: nil leaves a key untouched and
// an empty string clears it.
type SetCredentialsRequest struct {
	Gemini    *string `json:"gemini"`
	OpenAI    *string `json:"openai"`
	Anthropic *string `json:"anthropic"`
}

type ProviderStatus struct {
	Provider   string `json:"provider"`
	Label      string `json:"label"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	Hint       string `json:"hint,omitempty"`
	Selected   bool   `json:"selected"`
}

type SettingsResponse struct {
	Mode              string           `json:"mode"`
	ModeLabel         string           `json:"mode_label"`
	AllowedCategories []string         `json:"allowed_categories"`
	Provider          string           `json:"provider"`
	ProviderLabel     string           `json:"provider_label"`
	Providers         []ProviderStatus `json:"providers"`
}
