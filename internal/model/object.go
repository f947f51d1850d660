package model

type Challenge struct {
	ID          string `json:"id"`
	Shop        string `json:"shop"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type Participant struct {
	ID                string   `json:"id"`
	ChallengeID       string   `json:"challenge_id"`
	CustomerID        string   `json:"customer_id"`
	Email             string   `json:"email"`
	FirstName         string   `json:"first_name,omitempty"`
	LastName          string   `json:"last_name,omitempty"`
	Status            string   `json:"status"`
	StartWeight       *float64 `json:"start_weight,omitempty"`
	EndWeight         *float64 `json:"end_weight,omitempty"`
	WeightLoss        *float64 `json:"weight_loss,omitempty"`
	WeightLossPercent *float64 `json:"weight_loss_percent,omitempty"`
	StartedAt         string   `json:"started_at,omitempty"`
	CompletedAt       string   `json:"completed_at,omitempty"`
	OrdersCount       *int64   `json:"orders_count,omitempty"`
	TotalSpent        *float64 `json:"total_spent,omitempty"`
	OrdersSyncedAt    string   `json:"orders_synced_at,omitempty"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

type Photo struct {
	Order       int    `json:"order"`
	Orientation string `json:"orientation"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type"`
}

type Submission struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Weight      float64 `json:"weight"`
	SubmittedAt string  `json:"submitted_at"`
	Notes       string  `json:"notes,omitempty"`
	Photos      []Photo `json:"photos"`
}

// Eligibility is the result of an eligibility check. Reason is empty if the
// shopper is eligible.
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

type Customization struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	StartButtonLabel string `json:"start_button_label"`
	EndButtonLabel   string `json:"end_button_label"`
	EmailLabel       string `json:"email_label"`
	WeightLabel      string `json:"weight_label"`
	FrontPhotoLabel  string `json:"front_photo_label"`
	SidePhotoLabel   string `json:"side_photo_label"`
	BackPhotoLabel   string `json:"back_photo_label"`
	SubmitLabel      string `json:"submit_label"`
	SuccessMessage   string `json:"success_message"`
	PrimaryColor     string `json:"primary_color"`
	SecondaryColor   string `json:"secondary_color"`
	BackgroundColor  string `json:"background_color"`
	TextColor        string `json:"text_color"`
	ButtonTextColor  string `json:"button_text_color"`
}
