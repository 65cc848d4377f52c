// Package cmd defines the command-line interface for calheat.
package cmd

import (
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("paths", "", "Comma-separated list of explicit repository paths to include")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("range", string(schema.YearRange), "Time range: month, quarter, halfyear, year, custom")
	rootCmd.PersistentFlags().String("start", "", "Custom range start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end", "", "Custom range end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("user", string(schema.AllUsersScope), "User scope: current, all, custom")
	rootCmd.PersistentFlags().String("custom-user", "", "Author email or name pattern for the custom user scope")
	rootCmd.PersistentFlags().String("metric", string(schema.CommitCountMetric), "Aggregated metric: commits, lines, added, deleted")
	rootCmd.PersistentFlags().String("scheme", string(schema.GithubScheme), "Color scheme: github, fire, ocean, mono")
	rootCmd.PersistentFlags().Bool("merges", false, "Include merge commits")
	rootCmd.PersistentFlags().String("date-source", string(schema.CommitterDate), "Commit timestamp to bucket by: committer, author")
	rootCmd.PersistentFlags().Bool("refresh", false, "Bypass the cache and recompute")
	rootCmd.PersistentFlags().Bool("saved", false, "Apply the saved filter selection from 'calheat configure'")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent repository queries")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "Cache freshness window (e.g. 5m)")
	rootCmd.PersistentFlags().String("git-timeout", contract.DefaultGitTimeout.String(), "Timeout for a single git invocation (e.g. 30s)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of commitsCmd to Viper
	commitsCmd.Flags().String("date", "", "The calendar day to inspect (YYYY-MM-DD)")
	if err := viper.BindPFlags(commitsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding commits flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("format", string(schema.CSVOut), "Export format: csv, json, parquet")
	exportCmd.Flags().Bool("with-commits", false, "Export commit records alongside day cells (parquet only)")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}
}
