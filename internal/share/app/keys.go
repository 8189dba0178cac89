package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
)

// InitSessionKeys generates the Ed25519 keys that sign session tokens.
//
// Keys live only in memory, so every restart ends all outstanding sessions.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing ephemeral key manager", "num_keys", cfg.NumKeys)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("all existing sessions are now invalid due to key rotation on startup")

	return keyManager, nil
}
