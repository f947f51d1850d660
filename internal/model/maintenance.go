package model

type ShopDiagnostic struct {
	Shop         string   `json:"shop"`
	Valid        bool     `json:"valid"`
	Normalized   string   `json:"normalized"`
	Installed    bool     `json:"installed"`
	Challenges   int64    `json:"challenges"`
	Participants int64    `json:"participants"`
	HasSettings  bool     `json:"has_settings"`
	Problems     []string `json:"problems,omitempty"`
}

type DiagnoseShopsRequest struct{}

type DiagnoseShopsResponse struct {
	Shops []ShopDiagnostic `json:"shops"`
}

type FixShopDomainRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	DryRun bool   `json:"dry_run"`
}

type FixShopDomainResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Challenges   int64  `json:"challenges"`
	Participants int64  `json:"participants"`
	Settings     int64  `json:"settings"`
	DryRun       bool   `json:"dry_run"`
}

type BackfillOrdersRequest struct {
	Shop        string `json:"shop"`
	Concurrency int    `json:"concurrency"`
}

type BackfillOrdersResponse RefreshOrdersResponse
