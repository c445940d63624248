package cmd

import (
	"github.com/chris-regnier/moodctl/internal/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// invalidateCachePostRun is a PostRunE hook that clears the prompt cache
// after commands that change entries.
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	if appConfig == nil {
		return nil
	}
	if err := shell.InvalidateCache(appConfig.DataDir); err != nil {
		log.Debug("could not clear prompt cache", zap.Error(err))
	}
	return nil
}
