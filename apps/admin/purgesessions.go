package main

import (
	"context"
	"time"
)

const purgeTimeout = 30 * time.Second

func (cli *commandLine) purgeSessions() error {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := cli.store.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	logger.Printf("purged %d expired session(s)", n)
	return nil
}
