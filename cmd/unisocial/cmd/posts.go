package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/posts"
)

var (
	feedPersonalized bool
	feedSort         string

	postTitle    string
	postContent  string
	postCategory string
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the post feed",
	Long: `Show the post feed. Signed-in users with interests can ask for the
personalized feed; everyone else gets every post.

Examples:
  unisocial feed                        # every post, most liked first
  unisocial feed --sort recent          # newest first
  unisocial feed --personalized         # posts matching your interests`,
	RunE: runFeed,
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a post",
	Long: `Publish a post as the signed-in user.

Examples:
  unisocial post --content "Hola a todos" --category general
  unisocial post --title "Parcial" --content "¿Alguien tiene apuntes?" --category academico`,
	RunE: runPost,
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runLike,
}

var shareCmd = &cobra.Command{
	Use:   "share <post-id>",
	Short: "Print the public link to a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

var reportCmd = &cobra.Command{
	Use:   "report <post-id>",
	Short: "Report a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	feedCmd.Flags().BoolVar(&feedPersonalized, "personalized", false, "only posts matching your interests")
	feedCmd.Flags().StringVar(&feedSort, "sort", string(posts.SortPopular), "order: popular or recent")

	postCmd.Flags().StringVar(&postTitle, "title", "", "optional title")
	postCmd.Flags().StringVar(&postContent, "content", "", "post body")
	postCmd.Flags().StringVar(&postCategory, "category", "", "category tag (default general)")

	rootCmd.AddCommand(feedCmd, postCmd, likeCmd, shareCmd, reportCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	pm := c.Deps().Posts
	if _, err := pm.LoadPosts(cmd.Context(), feedPersonalized); err != nil {
		return reported(err)
	}
	pm.SetSortType(posts.ParseSortType(feedSort))
	c.println(c.styles.Feed(pm.View()))
	return nil
}

func runPost(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	return reported(c.Deps().Posts.CreatePost(cmd.Context(), domain.PostForm{
		Title:    postTitle,
		Content:  postContent,
		Category: postCategory,
	}))
}

func runLike(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	pm := c.Deps().Posts
	if _, err := pm.LoadPosts(cmd.Context(), false); err != nil {
		return reported(err)
	}
	if _, err := pm.ToggleLike(cmd.Context(), args[0]); err != nil {
		return reported(err)
	}
	if card, err := pm.Card(args[0]); err == nil {
		c.println(c.styles.PostCard(card))
	}
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	link, err := c.Deps().Posts.ShareLink(cmd.Context(), args[0])
	if err != nil {
		return reported(err)
	}
	c.println(link)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	c, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := requireSession(c); err != nil {
		return err
	}
	c.Deps().Posts.Report(cmd.Context(), args[0])
	return nil
}
