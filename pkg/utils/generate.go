package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== VERIFICATION CODES ====================

// GenerateVerificationCode returns a 6-digit numeric code drawn uniformly
// from [100000, 999999].
func GenerateVerificationCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
