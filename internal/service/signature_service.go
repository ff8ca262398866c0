package service

import (
	"crypto/ed25519"
	"fmt"

	"donation-ledger/internal/core/domain"
)

// Ed25519SignatureService implements ports.SignatureService. A request is
// accepted only when signed by the private key behind the signer identity.
type Ed25519SignatureService struct{}

// NewEd25519SignatureService creates a new ed25519 signature service.
func NewEd25519SignatureService() *Ed25519SignatureService {
	return &Ed25519SignatureService{}
}

// Verify checks signature over message against signer's public key.
func (s *Ed25519SignatureService) Verify(signer domain.Pubkey, message []byte, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(signer[:]), message, signature)
}

// BuildCanonicalString constructs the canonical payload for signing.
// Format: METHOD|PATH|TIMESTAMP|NONCE|BODY
func (s *Ed25519SignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", method, path, timestamp, nonce, body)
}
