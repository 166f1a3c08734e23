package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/lectura/server/internal/agent/model"
	"github.com/lectura/server/internal/core"
	logx "github.com/lectura/server/pkg/logger"
	pkgredis "github.com/lectura/server/pkg/redis"
)

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Collaborator and feature configs
	Chat         model.ChatModelConfig
	Conversation model.ConversationConfig
	Notes        model.NotesConfig
}

var appCfg AppConfig

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lectura",
		Short:         "Math study assistant: chat about math and turn blackboard photos into LaTeX notes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional for local runs
			_ = godotenv.Load(".env")
			if err := envconfig.Process("", &appCfg); err != nil {
				return fmt.Errorf("process environment config: %w", err)
			}
			logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(appCfg.Environment)})
			return nil
		},
	}
	root.AddCommand(newChatCmd())
	root.AddCommand(newNotesCmd())
	return root
}
