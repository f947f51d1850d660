package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeShopDomain(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "abc.myshopify.com", want: "abc.myshopify.com"},
		{in: " https://ABC.myshopify.com/admin ", want: "abc.myshopify.com"},
		{in: "http://abc.myshopify.com?x=1", want: "abc.myshopify.com"},
		{in: "abc", want: "abc.myshopify.com"},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeShopDomain(tc.in))
		})
	}

	require.True(t, IsValidShopDomain("abc-1.myshopify.com"))
	require.False(t, IsValidShopDomain("abc.example.com"))
	require.False(t, IsValidShopDomain("-abc.myshopify.com"))
}

func TestWeightLoss(t *testing.T) {
	loss, percent := WeightLoss(Ptr(200.0), Ptr(180.0))
	require.Equal(t, 20.0, *loss)
	require.Equal(t, 10.0, *percent)

	loss, percent = WeightLoss(Ptr(150.0), Ptr(149.0))
	require.Equal(t, 1.0, *loss)
	require.Equal(t, 0.67, *percent)

	loss, percent = WeightLoss(Ptr(150.0), Ptr(155.5))
	require.Equal(t, -5.5, *loss)
	require.Equal(t, -3.67, *percent)

	loss, percent = WeightLoss(Ptr(150.0), nil)
	require.Nil(t, loss)
	require.Nil(t, percent)
}
