package model

type InstallRequest struct {
	Shop string `json:"shop" form:"shop"`
}

type InstallResponse struct {
	URL string `json:"url"`
}

func (r *InstallResponse) RedirectURL() string {
	return r.URL
}

type CallbackRequest struct {
	Code      string `form:"code"`
	Shop      string `form:"shop"`
	State     string `form:"state"`
	Hmac      string `form:"hmac"`
	Host      string `form:"host"`
	Timestamp string `form:"timestamp"`
}

type CallbackResponse struct {
	URL string `json:"url"`
}

func (r *CallbackResponse) RedirectURL() string {
	return r.URL
}

type GetMeRequest struct{}

type GetMeResponse struct {
	Shop       string `json:"shop"`
	CustomerID string `json:"customer_id,omitempty"`
	Email      string `json:"email,omitempty"`
}
