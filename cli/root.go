// Package cli implements the clickflow command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smallnest/clickflow/config"
	"github.com/smallnest/clickflow/log"
	"github.com/smallnest/clickflow/store"
	"github.com/smallnest/clickflow/terminal"
	"github.com/smallnest/clickflow/workflow"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings *config.Settings
	kv       store.Store
	closeKV  func() error
	repo     *workflow.Repository
	styles   terminal.Styles
}

// NewRootCommand builds the clickflow command tree.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:      config.New(),
		styles: terminal.DefaultStyles(),
	}

	root := &cobra.Command{
		Use:   "clickflow",
		Short: "Build a button workflow and replay it step by step",
		Long: `clickflow binds an ordered list of actions to a single button.

Edit the workflow with "clickflow config", then click the button with
"clickflow run". Progress is checkpointed after every step, so a run that
reloads or closes its window resumes where it stopped.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./clickflow.yaml or $HOME/.config/clickflow/clickflow.yaml)")
	flags.String("store", "", "store backend: memory, file, sqlite, redis or postgres")
	flags.String("store-path", "", "directory of the file store or database file of the sqlite store")
	flags.String("log-level", "", "log level: debug, info, warn, error or none")
	_ = a.v.BindPFlag("store.backend", flags.Lookup("store"))
	_ = a.v.BindPFlag("store.path", flags.Lookup("store-path"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newActionsCmd(a),
		newConfigCmd(a),
		newRunCmd(a),
		newStatusCmd(a),
		newResetCmd(a),
		newExportHTMLCmd(a),
		newStoreCmd(a),
	)
	return root
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.settings = settings
	log.Setup(cmd.ErrOrStderr(), settings.LogLevel())

	if !needsStore(cmd) {
		return nil
	}
	kv, closeKV, err := openStore(cmd.Context(), settings)
	if err != nil {
		return err
	}
	a.kv = kv
	a.closeKV = closeKV
	a.repo = workflow.NewRepository(kv)
	log.Debug("using %s store", settings.Store.Backend)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closeKV == nil {
		return nil
	}
	if err := a.closeKV(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// needsStore reports whether cmd reads or writes persisted state.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["store"] == "none" {
			return false
		}
	}
	return true
}

