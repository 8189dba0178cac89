package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/deptshare/pkg/cryptox"
)

// KeyManager owns the in-memory signing keys of one process together with
// the KeySet that publishes them and the verifier that trusts them.
//
// Keys are ephemeral: a restart invalidates every outstanding session.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Issuer is stamped into and required on every token.
	Issuer string

	// NumKeys is how many signing keys to generate. Defaults to 3, capped at 10.
	NumKeys int

	// KIDPrefix is prepended to generated key IDs.
	KIDPrefix string
}

// NewEphemeralKeyManager generates fresh Ed25519 keys.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	if numKeys > 10 {
		numKeys = 10
	}

	prefix := opts.KIDPrefix
	if prefix == "" {
		prefix = "deptshare"
	}

	km := &KeyManager{KeySet: NewKeySet()}
	km.Verifier = NewVerifier(km.KeySet, opts.Issuer)

	for i := range numKeys {
		signer, err := GenerateSigner(prefix)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signer %d: %w", i+1, err)
		}
		if err := km.AddSigner(signer); err != nil {
			return nil, err
		}
	}

	return km, nil
}

// GenerateSigner creates a signer over a new Ed25519 key with a random kid.
func GenerateSigner(kidPrefix string) (*EdDSASigner, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}

	key, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}

	return NewSignerFromKey(kidPrefix+"-"+token, key), nil
}

// IsReady reports whether any verification key is loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner picks one of the active signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// Sign signs claims with one of the active keys.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	signer := km.GetSigner()
	if signer == nil {
		return "", fmt.Errorf("jwtx: no signing keys loaded")
	}
	return signer.Sign(claims)
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// AddSigner makes signer available for both signing and verification.
func (km *KeyManager) AddSigner(signer Signer) error {
	if signer == nil {
		return fmt.Errorf("signer cannot be nil")
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.AddSigner(signer); err != nil {
		return fmt.Errorf("failed to add signer to keyset: %w", err)
	}
	km.signers = append(km.signers, signer)
	return nil
}
