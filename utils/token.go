package utils

import (
	"fmt"
	"math/rand"
)

// GenerateResetCode returns a 6-digit numeric code for password resets.
func GenerateResetCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
