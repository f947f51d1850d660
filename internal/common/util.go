package common

import (
	"math"
	"regexp"
	"strings"
)

var shopDomainRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*\.myshopify\.com$`)

// NormalizeShopDomain turns what a merchant may type (a full url, upper case,
// only the store handle) into the canonical myshopify domain.
func NormalizeShopDomain(shop string) string {
	shop = strings.ToLower(strings.TrimSpace(shop))
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	if i := strings.IndexAny(shop, "/?#"); i >= 0 {
		shop = shop[:i]
	}

	if shop != "" && !strings.Contains(shop, ".") {
		shop += ".myshopify.com"
	}

	return shop
}

func IsValidShopDomain(shop string) bool {
	return shopDomainRegex.MatchString(shop)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// WeightLoss returns the loss and the loss percentage relative to the start
// weight. Both are nil if either weight is missing.
func WeightLoss(start, end *float64) (*float64, *float64) {
	if start == nil || end == nil || *start <= 0 {
		return nil, nil
	}

	loss := Round(*start-*end, 2)
	percent := Round((*start-*end) / *start * 100, 2)
	return &loss, &percent
}

func Ptr[T any](v T) *T {
	return &v
}
