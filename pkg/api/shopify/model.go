package shopify

import (
	"errors"
	"strconv"
)

var ErrCustomerNotFound = errors.New("customer not found")

type AccessToken struct {
	AccessToken string `mapstructure:"access_token"`
	Scope       string `mapstructure:"scope"`
}

type Customer struct {
	ID          int64   `mapstructure:"id" json:"id"`
	Email       string  `mapstructure:"email" json:"email"`
	FirstName   string  `mapstructure:"first_name" json:"first_name"`
	LastName    string  `mapstructure:"last_name" json:"last_name"`
	OrdersCount int     `mapstructure:"orders_count" json:"orders_count"`
	TotalSpent  float64 `mapstructure:"total_spent" json:"total_spent"`
}

func (c Customer) IDString() string {
	return strconv.FormatInt(c.ID, 10)
}
