package entity

// CustomizationSettings controls the texts and colors of the storefront
// forms. The column names are also the keys accepted by the update request.
type CustomizationSettings struct {
	Base `structs:"-"`

	Shop string `gorm:"size:255;unique" structs:"-"`

	Title            string `gorm:"size:255" structs:"title"`
	Description      string `gorm:"type:text" structs:"description"`
	StartButtonLabel string `gorm:"size:255" structs:"start_button_label"`
	EndButtonLabel   string `gorm:"size:255" structs:"end_button_label"`
	EmailLabel       string `gorm:"size:255" structs:"email_label"`
	WeightLabel      string `gorm:"size:255" structs:"weight_label"`
	FrontPhotoLabel  string `gorm:"size:255" structs:"front_photo_label"`
	SidePhotoLabel   string `gorm:"size:255" structs:"side_photo_label"`
	BackPhotoLabel   string `gorm:"size:255" structs:"back_photo_label"`
	SubmitLabel      string `gorm:"size:255" structs:"submit_label"`
	SuccessMessage   string `gorm:"type:text" structs:"success_message"`

	PrimaryColor    string `gorm:"size:7" structs:"primary_color"`
	SecondaryColor  string `gorm:"size:7" structs:"secondary_color"`
	BackgroundColor string `gorm:"size:7" structs:"background_color"`
	TextColor       string `gorm:"size:7" structs:"text_color"`
	ButtonTextColor string `gorm:"size:7" structs:"button_text_color"`
}

func DefaultCustomizationSettings(shop string) CustomizationSettings {
	return CustomizationSettings{
		Shop:             shop,
		Title:            "Weight Loss Challenge",
		Description:      "Join the challenge, share your progress and win.",
		StartButtonLabel: "Start the challenge",
		EndButtonLabel:   "Complete the challenge",
		EmailLabel:       "Email",
		WeightLabel:      "Current weight (lbs)",
		FrontPhotoLabel:  "Front photo",
		SidePhotoLabel:   "Side photo",
		BackPhotoLabel:   "Back photo",
		SubmitLabel:      "Submit",
		SuccessMessage:   "Thank you! Your submission has been received.",
		PrimaryColor:     "#2c6ecb",
		SecondaryColor:   "#f4f6f8",
		BackgroundColor:  "#ffffff",
		TextColor:        "#202223",
		ButtonTextColor:  "#ffffff",
	}
}
