package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smallnest/clickflow/catalog"
	"github.com/smallnest/clickflow/workflow"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the workflow bound to the button",
		Long: `Edit the workflow bound to the button.

Actions are referenced by id, by a unique id prefix, or by position
written as #n. Parameters are given as name=value pairs; see
"clickflow actions" for the parameters of each type.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(a),
		newConfigLabelCmd(a),
		newConfigAddCmd(a),
		newConfigEditCmd(a),
		newConfigRemoveCmd(a),
		newConfigMoveCmd(a),
		newConfigClearCmd(a),
		newConfigImportCmd(a),
		newConfigExportCmd(a),
	)
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the button label and the actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.repo.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Button: %s\n", cfg.ButtonLabel)
			if len(cfg.Actions) == 0 {
				fmt.Fprintln(out, "No actions configured.")
				return nil
			}

			rows := make([][]string, 0, len(cfg.Actions))
			for i, action := range cfg.Actions {
				label := action.Kind
				if def, ok := catalog.Lookup(action.Kind); ok {
					label = def.Label
				}
				rows = append(rows, []string{"#" + strconv.Itoa(i+1), shortID(action.ID), label, formatParams(action.Params)})
			}
			return writeTable(out, []string{"STEP", "ID", "ACTION", "PARAMS"}, rows)
		},
	}
}

func newConfigLabelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "label <text>",
		Short: "Set the button label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.TrimSpace(strings.Join(args, " "))
			if label == "" {
				return fmt.Errorf("label must not be empty")
			}
			return a.updateConfig(cmd.Context(), func(cfg *workflow.Config) error {
				cfg.ButtonLabel = label
				return nil
			})
		},
	}
}

func newConfigAddCmd(a *app) *cobra.Command {
	var position int
	cmd := &cobra.Command{
		Use:   "add <type> [name=value ...]",
		Short: "Append an action",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			def, ok := catalog.Lookup(kind)
			if !ok {
				return fmt.Errorf("%q: %w (see \"clickflow actions\")", kind, catalog.ErrUnknownKind)
			}
			params, err := parseParams(def, workflow.Params{}, args[1:])
			if err != nil {
				return err
			}
			if err := catalog.Validate(kind, params); err != nil {
				return err
			}

			var added workflow.Action
			err = a.updateConfig(cmd.Context(), func(cfg *workflow.Config) error {
				added = cfg.Add(workflow.NewAction(kind, params))
				if position > 0 {
					return cfg.Move(added.ID, position-1)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", def.Label, shortID(added.ID))
			return nil
		},
	}
	cmd.Flags().IntVar(&position, "at", 0, "insert at this 1-based position instead of appending")
	return cmd
}

func newConfigEditCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "edit <action> [name=value ...]",
		Short: "Change the type or parameters of an action",
		Long: `Change the type or parameters of an action.

Given parameters are merged into the existing ones; name= with an empty
value removes a parameter.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateConfig(cmd.Context(), func(cfg *workflow.Config) error {
				i, err := cfg.Resolve(args[0])
				if err != nil {
					return err
				}
				action := cfg.Actions[i]
				if kind != "" {
					action.Kind = kind
				}
				def, ok := catalog.Lookup(action.Kind)
				if !ok {
					return fmt.Errorf("%q: %w", action.Kind, catalog.ErrUnknownKind)
				}
				params, err := parseParams(def, action.Params.Clone(), args[1:])
				if err != nil {
					return err
				}
				if err := catalog.Validate(action.Kind, params); err != nil {
					return err
				}
				action.Params = params
				return cfg.Update(action.ID, action)
			})
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "change the action type")
	return cmd
}

func newConfigRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <action>",
		Aliases: []string{"rm"},
		Short:   "Remove an action",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateConfig(cmd.Context(), func(cfg *workflow.Config) error {
				i, err := cfg.Resolve(args[0])
				if err != nil {
					return err
				}
				return cfg.Remove(cfg.Actions[i].ID)
			})
		},
	}
}

func newConfigMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <action> <position>",
		Short: "Move an action to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[1])
			if err != nil || to < 1 {
				return fmt.Errorf("position must be a number from 1, got %q", args[1])
			}
			return a.updateConfig(cmd.Context(), func(cfg *workflow.Config) error {
				i, err := cfg.Resolve(args[0])
				if err != nil {
					return err
				}
				return cfg.Move(cfg.Actions[i].ID, to-1)
			})
		},
	}
}

func newConfigClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the workflow and any run progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.repo.ClearConfig(ctx); err != nil {
				return err
			}
			return a.repo.ClearCheckpoint(ctx)
		},
	}
}

func newConfigImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Replace the workflow with a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := workflow.LoadFile(args[0])
			if err != nil {
				return err
			}
			for i, action := range cfg.Actions {
				if _, ok := catalog.Lookup(action.Kind); !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: step %d has unknown type %q and will be skipped when run\n", i+1, action.Kind)
				}
			}
			ctx := cmd.Context()
			if err := a.repo.SaveConfig(ctx, cfg); err != nil {
				return err
			}
			if err := a.repo.ClearCheckpoint(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d actions\n", len(cfg.Actions))
			return nil
		},
	}
}

func newConfigExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write the workflow as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.repo.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return workflow.SaveFile(args[0], cfg)
			}
			data, err := workflow.MarshalYAML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// updateConfig loads, edits and saves the configuration. A changed workflow
// invalidates the run progress, so the checkpoint is cleared as well.
func (a *app) updateConfig(ctx context.Context, edit func(*workflow.Config) error) error {
	cfg, err := a.repo.LoadConfig(ctx)
	if err != nil {
		return err
	}
	if err := edit(cfg); err != nil {
		return err
	}
	if err := a.repo.SaveConfig(ctx, cfg); err != nil {
		return err
	}
	return a.repo.ClearCheckpoint(ctx)
}

// parseParams merges name=value arguments into params. Number fields are
// stored as numbers when they parse; an empty value deletes the parameter.
func parseParams(def catalog.Definition, params workflow.Params, args []string) (workflow.Params, error) {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q must be name=value", arg)
		}
		field, known := def.Field(name)
		if !known {
			return nil, fmt.Errorf("%s has no parameter %q", def.Kind, name)
		}
		if value == "" {
			delete(params, name)
			continue
		}
		if field.Type == catalog.FieldNumber {
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				params[name] = f
				continue
			}
		}
		params[name] = value
	}
	return params, nil
}
