package util

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}

// RedactSecret keeps only a short prefix of a secret for logging
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return TrimString(secret, 8) + "..."
}
