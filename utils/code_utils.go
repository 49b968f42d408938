package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"os"
	"strings"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

const receiptCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureToken creates a hex token (length = bytes), used for
// password-reset tokens.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateReceiptCode creates an A-Z0-9 code like "AB4D93KF" for printed
// move-out receipts. Uses crypto/rand with big.Int to avoid modulo bias.
func GenerateReceiptCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(receiptCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(receiptCharset[num.Int64()])
	}
	return sb.String(), nil
}

// FormatReceiptCode renders a raw 8-char code as "XXXX-XXXX".
func FormatReceiptCode(raw string) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "-", "")
	if len(raw) != 8 {
		return "", errors.New("raw must be length 8")
	}
	return raw[:4] + "-" + raw[4:], nil
}
