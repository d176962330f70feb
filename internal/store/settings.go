package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const sessionSecretKey = "session_secret"

// ensureSetting stores value under key unless the key is already set, and
// returns whichever value the table holds afterwards. The upsert is a single
// statement, so concurrent first runs agree on one value.
func ensureSetting(ctx context.Context, q Querier, key, value string) (string, error) {
	var stored string
	err := q.QueryRowContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = settings.value
		RETURNING value`,
		key, value,
	).Scan(&stored)
	if err != nil {
		return "", fmt.Errorf("ensuring setting %q: %w", key, err)
	}
	return stored, nil
}

// GetSessionSecret returns the key sessions are signed with, creating a
// random one on first use.
func GetSessionSecret(ctx context.Context, q Querier) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return ensureSetting(ctx, q, sessionSecretKey, hex.EncodeToString(buf))
}
