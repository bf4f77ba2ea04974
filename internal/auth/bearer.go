package auth

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearer returns the token from an Authorization header value.
// The scheme is matched case-sensitively.
func ExtractBearer(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
