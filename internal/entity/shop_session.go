package entity

// ShopSession is the offline access token granted when the shop installed the
// app.
type ShopSession struct {
	Base

	Shop        string `gorm:"size:255;unique"`
	AccessToken string `gorm:"size:255"`
	Scope       string `gorm:"size:1024"`
}
