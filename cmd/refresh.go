package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Clear the cache and refetch the post list",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, s, err := openFetcher(true)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := fetcher.InvalidateAll(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		posts, err := fetcher.ListPosts(ctx)
		if err != nil {
			return fmt.Errorf("fetching posts: %w", err)
		}

		fmt.Printf("Fetched %d post(s).\n", len(posts))
		return nil
	},
}
