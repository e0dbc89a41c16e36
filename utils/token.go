package utils

import "math/rand"

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns an alphanumeric token of the given
// length. Used for the per-session CSRF tokens handed to the client.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		token[i] = tokenCharset[rand.Intn(len(tokenCharset))]
	}
	return string(token)
}
