// forumctl is the operator tool for the forum backend: it mints development
// access tokens, generates signing keys and checks seed files.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/jwt"
)

var configFolder string

var rootCmd = &cobra.Command{
	Use:           "forumctl",
	Short:         "Operator tool for the forum backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var tokenCmd = &cobra.Command{
	Use:   "token <name>",
	Short: "Mint an access token for a display name",
	Long: `Mint an access token signed with jwt_key from private.yaml.

Send it as the accessToken cookie or as "Authorization: Bearer <token>".`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a random jwt_key",
	Args:  cobra.NoArgs,
	RunE:  runKeygen,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Work with seed files",
}

var seedCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a seed file and print what it would load",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeedCheck,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to jwt_ttl from config)")

	seedCmd.AddCommand(seedCheckCmd)
	rootCmd.AddCommand(tokenCmd, keygenCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := config.MustLoad(configFolder)
	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = cfg.JwtTTL()
	}

	token, err := jwt.New(cfg.JwtKey(), ttl).NewToken(domain.Identity{Name: args[0]})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runKeygen(cmd *cobra.Command, args []string) error {
	key, err := generateKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Add this to your config/private.yaml:")
	fmt.Fprintf(out, "jwt_key: \"%s\"\n", key)
	return nil
}

// generateKey returns 32 random bytes, base64 encoded.
func generateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func runSeedCheck(cmd *cobra.Command, args []string) error {
	seed, err := config.LoadSeed(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	now := time.Now()
	for _, d := range config.ToDomain(seed, now) {
		fmt.Fprintf(out, "%-50q by %-12s replies=%-3d views=%-4d last active %s ago\n",
			d.Title, d.Author, d.ReplyCount, d.ViewCount, now.Sub(d.LastActiveAt).Round(time.Minute))
	}
	fmt.Fprintf(out, "%d discussions ok\n", len(seed))
	return nil
}
