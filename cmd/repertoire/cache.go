package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/repertoire/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the response cache",
	Long: `Display statistics about the response cache including:
- Number of cached responses
- Total size of the decoded responses`,
	Args: cobra.NoArgs,
	RunE: runCacheStats,
}

var cacheVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the response cache",
	Long: `Verify that every cached response can be read back.

This command checks:
- Each entry can be decompressed
- Each entry contains valid JSON`,
	Args: cobra.NoArgs,
	RunE: runCacheVerify,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheVerifyCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openLister opens the backing cache store and checks that it can list keys.
func openLister(cmd *cobra.Command) (store.Store, store.Lister, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, "", err
	}
	if cfg.NoCache {
		return nil, nil, "", fmt.Errorf("caching is disabled")
	}
	s, err := openBackingStore(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, "", err
	}
	lister, ok := s.(store.Lister)
	if !ok {
		s.Close()
		return nil, nil, "", fmt.Errorf("cache %q cannot list its entries", cacheLocation(cfg))
	}
	return s, lister, cacheLocation(cfg), nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	s, lister, location, err := openLister(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	keys, err := lister.Keys(ctx)
	if err != nil {
		return fmt.Errorf("listing cache: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintln(out, "No cached responses.")
		return nil
	}

	var total int64
	for _, key := range keys {
		data, err := s.Get(ctx, key)
		if err != nil {
			continue
		}
		total += int64(len(data))
	}

	fmt.Fprintf(out, "Cache:      %s\n", location)
	fmt.Fprintf(out, "Responses:  %d\n", len(keys))
	fmt.Fprintf(out, "Total size: %s\n", formatBytes(total))
	return nil
}

func runCacheVerify(cmd *cobra.Command, args []string) error {
	s, lister, _, err := openLister(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	keys, err := lister.Keys(ctx)
	if err != nil {
		return fmt.Errorf("listing cache: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintln(out, "No cached responses.")
		return nil
	}
	fmt.Fprintf(out, "Verifying %d responses...\n", len(keys))

	var errCount int
	for _, key := range keys {
		data, err := s.Get(ctx, key)
		if err != nil {
			fmt.Fprintf(out, "  ERROR: %s: %v\n", key, err)
			errCount++
			continue
		}
		if !json.Valid(data) {
			fmt.Fprintf(out, "  ERROR: %s: invalid JSON\n", key)
			errCount++
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d responses failed verification", errCount)
	}
	fmt.Fprintln(out, "All responses verified successfully.")
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
