package server

import (
	"crypto/rsa"

	"github.com/go-mclib/server/crypto"
)

func decryptRSA(key *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return crypto.DecryptWithPrivateKey(key, ciphertext)
}
