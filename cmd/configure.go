package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/spf13/cobra"
)

// configureCmd walks through the filter options interactively and saves them.
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively build and save a filter selection.",
	Long: `Walk through the heatmap filter options one by one and persist the
result. Saved settings are applied by passing --saved to any command.

Examples:
  calheat configure
  calheat heatmap --saved`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		sel, err := promptFilterSelection(cfg.FilterSelection())
		if err != nil {
			contract.LogFatal("Configuration aborted", err)
		}
		if err := engine.SaveFilterSettings(sel); err != nil {
			contract.LogFatal("Cannot save filter settings", err)
		}
		fmt.Println("Filter settings saved. Apply them with --saved.")
	},
}

// promptFilterSelection asks for each filter field, starting from defaults.
func promptFilterSelection(defaults schema.FilterSelection) (schema.FilterSelection, error) {
	sel := defaults

	var timeRange string
	if err := survey.AskOne(&survey.Select{
		Message: "Time range:",
		Options: []string{"month", "quarter", "halfyear", "year", "custom"},
		Default: string(defaults.TimeRange),
	}, &timeRange); err != nil {
		return sel, err
	}
	sel.TimeRange = schema.TimeRange(timeRange)

	if sel.TimeRange == schema.CustomRange {
		if err := survey.AskOne(&survey.Input{
			Message: "Start date (YYYY-MM-DD):",
			Default: defaults.CustomStartDate,
		}, &sel.CustomStartDate); err != nil {
			return sel, err
		}
		if err := survey.AskOne(&survey.Input{
			Message: "End date (YYYY-MM-DD):",
			Default: defaults.CustomEndDate,
		}, &sel.CustomEndDate); err != nil {
			return sel, err
		}
	}

	var userScope string
	if err := survey.AskOne(&survey.Select{
		Message: "Whose commits:",
		Options: []string{"current", "all", "custom"},
		Default: string(defaults.UserScope),
	}, &userScope); err != nil {
		return sel, err
	}
	sel.UserScope = schema.UserScope(userScope)

	if sel.UserScope == schema.CustomUserScope {
		if err := survey.AskOne(&survey.Input{
			Message: "Author email or name pattern:",
			Default: defaults.CustomUser,
		}, &sel.CustomUser); err != nil {
			return sel, err
		}
	}

	var metric string
	if err := survey.AskOne(&survey.Select{
		Message: "Metric:",
		Options: []string{"commits", "lines", "added", "deleted"},
		Default: string(defaults.Metric),
	}, &metric); err != nil {
		return sel, err
	}
	sel.Metric = schema.Metric(metric)

	var scheme string
	if err := survey.AskOne(&survey.Select{
		Message: "Color scheme:",
		Options: []string{"github", "fire", "ocean", "mono"},
		Default: string(defaults.ColorScheme),
	}, &scheme); err != nil {
		return sel, err
	}
	sel.ColorScheme = schema.ColorScheme(scheme)

	var dateSource string
	if err := survey.AskOne(&survey.Select{
		Message: "Bucket commits by:",
		Options: []string{"committer", "author"},
		Default: string(defaults.DateSource),
	}, &dateSource); err != nil {
		return sel, err
	}
	sel.DateSource = schema.DateSource(dateSource)

	if err := survey.AskOne(&survey.Confirm{
		Message: "Include merge commits?",
		Default: defaults.IncludeMerges,
	}, &sel.IncludeMerges); err != nil {
		return sel, err
	}

	return sel, nil
}
