package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/light-bringer/procat-orm/internal/app/post/usecases/create_posts"
	"github.com/light-bringer/procat-orm/internal/services"
)

// Post seed flags
const (
	countFlag  = "count"
	prefixFlag = "title-prefix"
)

func newPostCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Generate and list posts",
	}
	cmd.AddCommand(newPostSeedCommand(c), newPostListCommand(c))
	return cmd
}

func newPostSeedCommand(c *cli) *cobra.Command {
	defaults := create_posts.DefaultRequest()
	flags := map[string]cobraflags.Flag{
		countFlag: &cobraflags.StringFlag{
			Name:  countFlag,
			Value: strconv.Itoa(defaults.Count),
			Usage: "Number of posts to save in one unit of work",
		},
		prefixFlag: &cobraflags.StringFlag{
			Name:  prefixFlag,
			Value: defaults.TitlePrefix,
			Usage: "Title prefix; each post appends its sequence number",
		},
	}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Save a batch of generated posts",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string, svc *services.ServiceOptions) error {
		count, err := strconv.Atoi(flags[countFlag].GetString())
		if err != nil {
			return fmt.Errorf("invalid count: %w", err)
		}

		req := create_posts.DefaultRequest()
		req.Count = count
		req.TitlePrefix = flags[prefixFlag].GetString()

		posts, err := svc.CreatePosts.Execute(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %d posts\n", len(posts))
		return nil
	})
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newPostListCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every post",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, _ []string, svc *services.ServiceOptions) error {
		posts, err := svc.ListPosts.Execute(cmd.Context())
		if err != nil {
			return err
		}
		renderPosts(cmd.OutOrStdout(), posts)
		return nil
	})
	return cmd
}
