package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	t.Run("canonical spellings", func(t *testing.T) {
		for _, raw := range []string{"Open", "In-Progress", "Closed"} {
			status, err := ParseTicketStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, string(status))
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		status, err := ParseTicketStatus("cLoSeD")
		require.NoError(t, err)
		assert.Equal(t, TicketStatusClosed, status)

		status, err = ParseTicketStatus("in-progress")
		require.NoError(t, err)
		assert.Equal(t, TicketStatusInProgress, status)
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := ParseTicketStatus("Reopened")
		assert.Error(t, err)
	})
}

func TestNoteJSON(t *testing.T) {
	t.Run("technician note is a plain string", func(t *testing.T) {
		data, err := json.Marshal(NewNote("Checked cable"))
		require.NoError(t, err)
		assert.JSONEq(t, `"Checked cable"`, string(data))
	})

	t.Run("email note is a wrapped object", func(t *testing.T) {
		data, err := json.Marshal(NewEmailNote("It works now, thanks"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"ticket_message":"It works now, thanks"}`, string(data))
	})

	t.Run("both forms round-trip", func(t *testing.T) {
		var notes []Note
		raw := `["Checked cable", {"ticket_message":"It works now, thanks"}]`
		require.NoError(t, json.Unmarshal([]byte(raw), &notes))
		require.Len(t, notes, 2)

		assert.Equal(t, Note{Message: "Checked cable"}, notes[0])
		assert.Equal(t, Note{Message: "It works now, thanks", FromEmail: true}, notes[1])

		out, err := json.Marshal(notes)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	})

	t.Run("malformed note", func(t *testing.T) {
		var note Note
		assert.Error(t, json.Unmarshal([]byte(`42`), &note))
	})
}

func TestSetStatus(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("closing records technician and timestamp", func(t *testing.T) {
		ticket := Ticket{TicketNumber: "TKT-2025-0001", Status: TicketStatusOpen}
		ticket.SetStatus(TicketStatusClosed, "alice", now)

		assert.True(t, ticket.IsClosed())
		assert.Equal(t, "alice", ticket.ClosedBy)
		assert.Equal(t, "2025-03-14 09:30:00", ticket.ClosureDate)
	})

	t.Run("other transitions leave closure metadata alone", func(t *testing.T) {
		ticket := Ticket{TicketNumber: "TKT-2025-0001", Status: TicketStatusOpen}
		ticket.SetStatus(TicketStatusInProgress, "alice", now)

		assert.False(t, ticket.IsClosed())
		assert.Empty(t, ticket.ClosedBy)
		assert.Empty(t, ticket.ClosureDate)
	})
}

func TestEmployeeCredential(t *testing.T) {
	t.Run("legacy wins when both are present", func(t *testing.T) {
		employee := Employee{Username: "alice", LegacyAuthcode: "hunter2", PasswordHash: "$2a$12$x"}
		assert.Equal(t, CredentialLegacy, employee.Credential())
	})

	t.Run("migrate clears the authcode", func(t *testing.T) {
		employee := Employee{Username: "alice", LegacyAuthcode: "hunter2"}
		employee.Migrate("$2a$12$x")

		assert.Equal(t, CredentialHashed, employee.Credential())
		assert.Empty(t, employee.LegacyAuthcode)
	})

	t.Run("empty record has no credential", func(t *testing.T) {
		employee := Employee{Username: "alice"}
		assert.Equal(t, CredentialNone, employee.Credential())
	})
}
