package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/chris-regnier/moodctl/internal/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	HasToday   bool
	Streak     int
	StreakIcon string
	Moods      string
	Backend    string
}

type statusOptions struct {
	env     bool
	refresh bool
	format  string
	shell   string
}

var statusOpts statusOptions

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show journal prompt status",
	Long: `Show journal status for shell prompt integration: whether today has an
entry, the moods recorded today and the current streak of consecutive days
with an entry. A streak that ended yesterday still counts until today is over.

Reads from a cache when fresh (shell.cache_ttl) and queries storage when
stale. Commands that change entries clear the cache.

Use --env to output shell variable assignments.
Use --format with a Go template for custom output.`,
	Example: `  moodctl status
  moodctl status --env
  moodctl status --refresh
  moodctl status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}} {{.Moods}}"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(cmd.OutOrStdout(), statusOpts)
	},
}

func statusRun(w io.Writer, o statusOptions) error {
	t := now()
	cache := shell.ReadCache(appConfig.DataDir)
	if o.refresh || !cache.IsFresh(appConfig.Shell.CacheTTLDuration(), t) {
		st, err := shell.ComputeStatus(store, t)
		if err != nil {
			return err
		}
		cache = shell.NewPromptCache(st, appConfig.Storage, t)
		if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
			// a prompt should never fail because the cache is read-only
			log.Warn("could not write prompt cache", zap.Error(err))
		}
	}

	data := buildStatusData(cache)
	switch {
	case o.env:
		return shell.WriteEnv(w, o.shell, [][2]string{
			{"MOODCTL_TODAY", data.TodayIcon},
			{"MOODCTL_STREAK", strconv.Itoa(data.Streak)},
			{"MOODCTL_STREAK_ICON", data.StreakIcon},
			{"MOODCTL_MOODS", data.Moods},
			{"MOODCTL_BACKEND", data.Backend},
		})
	case o.format != "":
		return outputTemplate(w, data, o.format)
	}
	return outputDefault(w, data)
}

func buildStatusData(cache *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if cache.Today {
		icon = appConfig.Shell.TodayIcon
	}
	return statusData{
		TodayIcon:  icon,
		HasToday:   cache.Today,
		Streak:     cache.Streak,
		StreakIcon: appConfig.Shell.StreakIcon,
		Moods:      strings.Join(cache.TodayMoods, ""),
		Backend:    cache.StorageBackend,
	}
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return userErr("invalid format template: %v", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return userErr("executing format template: %v", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) error {
	parts := []string{fmt.Sprintf("%s %d%s", data.TodayIcon, data.Streak, data.StreakIcon)}
	if appConfig.Shell.ShowMood && data.Moods != "" {
		parts = append(parts, data.Moods)
	}
	if appConfig.Shell.ShowBackend && data.Backend != "" {
		parts = append(parts, data.Backend)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusOpts.env, "env", false, "output shell variable assignments")
	statusCmd.Flags().StringVar(&statusOpts.shell, "shell", "bash", "syntax for --env (bash|zsh|fish)")
	statusCmd.Flags().BoolVar(&statusOpts.refresh, "refresh", false, "force cache refresh")
	statusCmd.Flags().StringVar(&statusOpts.format, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
