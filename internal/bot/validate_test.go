package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateLiters(t *testing.T) {
	cases := []struct {
		liters float64
		ok     bool
		reject string
	}{
		{0, false, "Количество литров должно быть больше 0!"},
		{-3, false, "Количество литров должно быть больше 0!"},
		{1500, false, "Слишком большое количество литров! Максимум 1000л."},
		{1000.5, false, "Слишком большое количество литров! Максимум 1000л."},
		{0.5, true, ""},
		{1, true, ""},
		{1000, true, ""},
	}
	for _, tc := range cases {
		reject, ok := validateLiters(tc.liters)
		require.Equal(t, tc.ok, ok, "liters=%v", tc.liters)
		require.Equal(t, tc.reject, reject, "liters=%v", tc.liters)
	}
}
