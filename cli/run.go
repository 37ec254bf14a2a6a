package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smallnest/clickflow/engine"
	"github.com/smallnest/clickflow/htmlpage"
	"github.com/smallnest/clickflow/log"
	"github.com/smallnest/clickflow/terminal"
	"github.com/smallnest/clickflow/workflow"
)

type runOptions struct {
	click      bool
	from       int
	maxReloads int
	htmlOut    string
}

func newRunCmd(a *app) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show the button and execute the workflow when it is clicked",
		Long: `Show the button and execute the workflow when it is clicked.

Interactively, press Enter to click the button, "r" to reset the run
progress and "q" to quit. With --click the button is clicked once and the
command exits when the run ends.

A step that reloads the window starts a fresh instance which resumes from
the saved progress. A step that closes the window ends the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.from < 1 {
				return fmt.Errorf("--from must be at least 1")
			}
			return a.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.click, "click", false, "click the button once and exit when the run ends")
	cmd.Flags().IntVar(&opts.from, "from", 1, "1-based step to start from when clicking")
	cmd.Flags().IntVar(&opts.maxReloads, "max-reloads", 100, "stop after this many reloads")
	cmd.Flags().StringVar(&opts.htmlOut, "html", "", "also write the final screen as an HTML page to this file")
	return cmd
}

// instance is one mounted output screen: what a page load creates.
type instance struct {
	eng    *engine.Engine
	screen *terminal.Screen
	host   *terminal.Host
	cfg    *workflow.Config
}

func (a *app) mount(ctx context.Context, in *bufio.Reader, out io.Writer) (*instance, error) {
	cfg, err := a.repo.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	screen := terminal.NewScreen(a.styles)
	host := terminal.NewHost(in, out, a.styles)
	eng := engine.New(ctx, cfg.Actions,
		engine.WithRepository(a.repo),
		engine.WithSinks(screen),
		engine.WithHost(host),
		engine.WithButton(engine.NewButton(cfg.ButtonLabel)),
		engine.WithPacing(a.settings.Engine.Pacing),
		engine.WithResumeDelay(a.settings.Engine.ResumeDelay),
		engine.WithLogger(log.Component("engine")),
		engine.WithListener(terminal.NewProgress(out, a.styles, len(cfg.Actions))),
	)
	return &instance{eng: eng, screen: screen, host: host, cfg: cfg}, nil
}

func (a *app) run(ctx context.Context, stdin io.Reader, out io.Writer, opts runOptions) error {
	in := bufio.NewReader(stdin)
	reloads := 0

	for {
		inst, err := a.mount(ctx, in, out)
		if err != nil {
			return err
		}
		if len(inst.cfg.Actions) == 0 {
			fmt.Fprintln(out, "No actions configured. Add some with \"clickflow config add\".")
		}

		resumed := inst.eng.Snapshot().Pending
		if resumed {
			inst.eng.Wait()
		}
		if inst.host.Teardown() == terminal.TeardownNone {
			if opts.click {
				if !resumed {
					a.click(ctx, inst, opts.from-1, out)
				}
			} else if err := a.interact(ctx, inst, in, out, opts.from-1); err != nil {
				return err
			}
		}

		if opts.click {
			fmt.Fprintln(out)
			fmt.Fprint(out, inst.screen.Render(inst.eng.Button().State()))
		}
		if err := a.writeHTML(inst, opts.htmlOut); err != nil {
			return err
		}

		switch inst.host.Teardown() {
		case terminal.TeardownReload:
			reloads++
			if reloads > opts.maxReloads {
				return fmt.Errorf("stopped after %d reloads", opts.maxReloads)
			}
		case terminal.TeardownClose:
			fmt.Fprintln(out, "Window closed.")
			return nil
		default:
			return nil
		}
	}
}

func (a *app) click(ctx context.Context, inst *instance, from int, out io.Writer) {
	if inst.screen.Disabled() {
		fmt.Fprintln(out, "The button is disabled.")
		return
	}
	if snap := inst.eng.Snapshot(); snap.Running || snap.Pending {
		fmt.Fprintln(out, "A run is already in progress.")
		return
	}
	inst.screen.ClearOutput()
	if !inst.eng.Start(ctx, from) {
		fmt.Fprintln(out, "A run is already in progress.")
		return
	}
	inst.eng.Wait()
}

// interact shows the button and reads commands until the user quits or a
// step tears the window down.
func (a *app) interact(ctx context.Context, inst *instance, in *bufio.Reader, out io.Writer, from int) error {
	for {
		fmt.Fprintln(out)
		fmt.Fprint(out, inst.screen.Render(inst.eng.Button().State()))
		fmt.Fprintln(out, terminal.Status(a.styles, inst.eng.Snapshot()))
		fmt.Fprint(out, a.styles.Muted.Render("[Enter] click  [r] reset  [q] quit > "))

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			a.click(ctx, inst, from, out)
			from = 0
			if inst.host.Teardown() != terminal.TeardownNone {
				return nil
			}
		case "r", "reset":
			if err := inst.eng.Reset(ctx); err != nil {
				return err
			}
			inst.screen.Clear()
			inst.eng.Button().Restore(engine.ButtonState{Label: inst.cfg.ButtonLabel, Scale: 1})
			fmt.Fprintln(out, "Run progress reset.")
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "Unknown command %q.\n", strings.TrimSpace(line))
		}
	}
}

func (a *app) writeHTML(inst *instance, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return htmlpage.Render(f, pageFor(inst.cfg, inst.eng.Button().State(), inst.screen, terminal.Status(a.styles, inst.eng.Snapshot())))
}

func pageFor(cfg *workflow.Config, button engine.ButtonState, screen *terminal.Screen, status string) htmlpage.Page {
	page := htmlpage.Page{
		ButtonLabel: cfg.ButtonLabel,
		Scale:       button.Scale,
		Color:       button.Color,
		Transition:  button.Transition,
		Status:      status,
	}
	if screen != nil {
		page.Disabled = screen.Disabled()
		page.Texts = screen.Texts()
		for _, img := range screen.Images() {
			page.Images = append(page.Images, htmlpage.Image{URL: img.URL, AltText: img.AltText})
		}
	}
	return page
}
