package domain

// CredentialKind tags the authoritative credential on an employee record.
// Exactly one of the two credential fields is set at rest; a legacy
// plaintext authcode signals a pending migration to a bcrypt hash.
type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	CredentialLegacy
	CredentialHashed
)

// Employee is a technician record. tech_username is unique within the
// employee store file.
type Employee struct {
	Username       string `json:"tech_username"`
	LegacyAuthcode string `json:"tech_authcode,omitempty"`
	PasswordHash   string `json:"password_hash,omitempty"`
}

// Credential reports which credential scheme the record currently carries.
// A legacy authcode wins when both are present, matching the migration
// semantics: its presence always means the hash is not yet authoritative.
func (e *Employee) Credential() CredentialKind {
	switch {
	case e.LegacyAuthcode != "":
		return CredentialLegacy
	case e.PasswordHash != "":
		return CredentialHashed
	default:
		return CredentialNone
	}
}

// Migrate replaces the legacy authcode with a bcrypt hash. This is the only
// legal credential transition.
func (e *Employee) Migrate(passwordHash string) {
	e.PasswordHash = passwordHash
	e.LegacyAuthcode = ""
}
