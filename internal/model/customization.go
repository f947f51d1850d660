package model

type GetCustomizationRequest struct{}

type GetCustomizationResponse Customization

type UpdateCustomizationRequest struct {
	// Settings are keyed by the json names of Customization.
	Settings map[string]string `json:"settings"`
}

type UpdateCustomizationResponse Customization
