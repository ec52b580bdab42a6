package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stackread/internal/render"
)

var readCmd = &cobra.Command{
	Use:   "read <slug>",
	Short: "Print one post as Markdown",
	Long:  "Fetch a post by slug (cached for a day) and print the rendered document followed by its metadata.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, s, err := openFetcher(true)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		post, err := fetcher.GetPost(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetching post: %w", err)
		}

		fmt.Println(render.Document(post))
		fmt.Println()
		for _, f := range render.Summary(post) {
			fmt.Printf("%-13s %s\n", f.Label+":", f.Value)
		}
		return nil
	},
}
