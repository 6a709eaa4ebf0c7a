package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/ui"
)

// NewRootCmd builds the todo command tree. With no subcommand it opens the
// interactive list.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "todo",
		Short: "A tiny to-do list",
		Long: `todo keeps an ordered list of tasks in a local SQLite file.

Run without arguments for the interactive list, or use the subcommands
for one-shot edits from scripts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(configPath, func(s *session) error {
				s.log.Info("interactive session started", "tasks", s.tasks.Count())
				return ui.Run(ui.New(s.tasks, s.db, s.cfg, s.log))
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $TODO_CONFIG or the user config dir)")

	root.AddCommand(
		newListCmd(&configPath),
		newAddCmd(&configPath),
		newDoneCmd(&configPath),
		newEditCmd(&configPath),
		newRemoveCmd(&configPath),
	)
	return root
}

func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// session is everything one command invocation needs, loaded from disk.
type session struct {
	cfg   config.Config
	db    *storage.Store
	tasks *task.Store
	log   *log.Logger
}

func withSession(configPath string, fn func(s *session) error) error {
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database failed", "path", cfg.DBPath, "err", err)
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	existing, err := db.FetchTasks()
	if err != nil {
		logger.Error("load tasks failed", "err", err)
		return fmt.Errorf("load tasks: %w", err)
	}

	return fn(&session{
		cfg:   cfg,
		db:    db,
		tasks: task.NewStore(existing),
		log:   logger,
	})
}
