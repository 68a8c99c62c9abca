package provisioning

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	lowerChars        = "abcdefghijklmnopqrstuvwxyz"
	upperChars        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars        = "0123456789"
	symbolChars       = "!@#$%^&*"
	passwordSet       = lowerChars + upperChars + digitChars + symbolChars
	minPasswordLength = 4
)

// GenerateTemporaryPassword returns n crypto-random characters containing at
// least one lowercase letter, uppercase letter, digit and symbol.
func GenerateTemporaryPassword(n int) (string, error) {
	if n < minPasswordLength {
		return "", errors.New("password length must be at least 4")
	}

	out := make([]byte, n)
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	for i, set := range classes {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	for i := len(classes); i < n; i++ {
		c, err := randomChar(passwordSet)
		if err != nil {
			return "", err
		}
		out[i] = c
	}

	// Fisher-Yates so the guaranteed classes are not always up front.
	for i := n - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		k := int(j.Int64())
		out[i], out[k] = out[k], out[i]
	}

	return string(out), nil
}

func randomChar(set string) (byte, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[idx.Int64()], nil
}
