//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all tables between tests.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"crew_members",
		"staff_members",
		"admins",
		"login_attempts",
	}

	for _, table := range tables {
		_, _ = env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
}
