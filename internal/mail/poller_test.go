package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTicketNumber(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		want    string
	}{
		{"bare subject", "TKT-2025-0001 - Printer offline", "TKT-2025-0001"},
		{"reply prefix", "Re: TKT-2025-0001 - Printer offline", "TKT-2025-0001"},
		{"forward prefix", "Fwd: Re: TKT-2025-0012 update", "TKT-2025-0012"},
		{"lowercase is normalized", "re: tkt-2025-0003 still broken", "TKT-2025-0003"},
		{"long sequence", "TKT-2025-12345", "TKT-2025-12345"},
		{"no match", "Hello, I need help", ""},
		{"wrong year width", "TKT-25-0001", ""},
		{"empty subject", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchTicketNumber(tc.subject))
		})
	}
}
