package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt hash of a random value nobody knows. Failed logins
// verify against it so that a miss costs the same as a wrong password for a
// real account.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// BurnComparison spends one bcrypt verification on a throwaway hash. Called
// on login paths that already know they will fail, to keep response latency
// independent of whether the username exists.
func BurnComparison(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
