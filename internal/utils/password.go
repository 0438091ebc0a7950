package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt digest of an account password. The cost
// comes from configuration so operators can tune the work factor without a
// rebuild.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt digest.
// A malformed digest simply fails to verify; it is never surfaced to the
// client as anything other than bad credentials.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
