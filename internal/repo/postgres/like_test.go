package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Cluj", want: "%Cluj%"},
		{in: "%", want: `%\%%`},
		{in: "_", want: `%\_%`},
		{in: `50%_off\`, want: `%50\%\_off\\%`},
		{in: "", want: "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.in))
		})
	}
}
