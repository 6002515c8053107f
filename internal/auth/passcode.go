package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// PasscodeAlphabet omits 0, O, 1 and I so codes can be read aloud and retyped.
const PasscodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const passcodeGroupLen = 4

var passcodePattern = regexp.MustCompile(`^[` + PasscodeAlphabet + `]{4}-[` + PasscodeAlphabet + `]{4}$`)

// GeneratePasscode returns a code shaped XXXX-XXXX.
func GeneratePasscode() (string, error) {
	max := big.NewInt(int64(len(PasscodeAlphabet)))
	var b strings.Builder
	b.Grow(2*passcodeGroupLen + 1)
	for i := 0; i < 2*passcodeGroupLen; i++ {
		if i == passcodeGroupLen {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate passcode: %w", err)
		}
		b.WriteByte(PasscodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizePasscode trims and upper-cases a submitted code.
func NormalizePasscode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidPasscode reports whether code, once normalized, has the generated shape.
func ValidPasscode(code string) bool {
	return passcodePattern.MatchString(NormalizePasscode(code))
}
