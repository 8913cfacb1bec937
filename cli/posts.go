package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimiolaniyan/feed"
)

const listTimeFormat = "Jan 2 2006 15:04"

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the feed, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			printPosts(cmd.OutOrStdout(), store.Posts())
			return nil
		},
	}
}

func newPostCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "post <text>",
		Short: "Create a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			p, err := store.CreatePost(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			_, err = store.EditPost(feed.PostID(args[0]), strings.Join(args[1:], " "))
			return err
		},
	}
}

func newLikeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Like or unlike a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			p, err := store.ToggleLike(feed.PostID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "likes: %d liked: %t\n", p.Likes, p.Liked)
			return nil
		},
	}
}

func newCommentCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			_, err = store.AddComment(feed.PostID(args[0]), strings.Join(args[1:], " "))
			return err
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			c := feed.Always
			if !yes {
				c = promptConfirmer(a.in, cmd.OutOrStdout())
			}
			deleted, err := store.DeletePost(feed.PostID(args[0]), c)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "not deleted")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirmer asks on out and accepts y or yes from in.
func promptConfirmer(in io.Reader, out io.Writer) feed.Confirmer {
	return feed.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

func printPosts(w io.Writer, posts []feed.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts yet")
		return
	}
	for _, p := range posts {
		liked := ""
		if p.Liked {
			liked = " (liked)"
		}
		fmt.Fprintf(w, "%s  %s  likes: %d%s  comments: %d\n", p.ID, p.Timestamp.Format(listTimeFormat), p.Likes, liked, len(p.Comments))
		for _, line := range strings.Split(p.Content, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		for _, c := range p.Comments {
			fmt.Fprintf(w, "    > %s: %s\n", c.Username, c.Content)
		}
	}
}
