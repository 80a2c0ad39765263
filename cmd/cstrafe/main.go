// Package main provides the CLI entrypoint for cstrafe.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eiannone/keyboard"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cstrafe/internal/classifier"
	"github.com/verte-zerg/cstrafe/internal/config"
	"github.com/verte-zerg/cstrafe/internal/console"
	"github.com/verte-zerg/cstrafe/internal/input"
	"github.com/verte-zerg/cstrafe/internal/model"
	"github.com/verte-zerg/cstrafe/internal/overlay"
	"github.com/verte-zerg/cstrafe/internal/replay"
	"github.com/verte-zerg/cstrafe/internal/session"
)

const eventBuffer = 256

var (
	keyForward  string
	keyBackward string
	keyLeft     string
	keyRight    string

	maxShotDelay float64
	maxCSDelay   float64
	overlaySize  int

	livePlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	def := config.DefaultKeys()
	rootCmd := &cobra.Command{
		Use:           "cstrafe",
		Short:         "Counter-strafe shot classifier",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runLiveCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&keyForward, "forward", def.Forward, "forward movement key")
	flags.StringVar(&keyBackward, "backward", def.Backward, "backward movement key")
	flags.StringVar(&keyLeft, "left", def.Left, "left movement key")
	flags.StringVar(&keyRight, "right", def.Right, "right movement key")
	flags.Float64Var(&maxShotDelay, "max-shot-delay", classifier.DefaultMaxShotDelayMs, "max ms between stop and shot for a counter-strafe")
	flags.Float64Var(&maxCSDelay, "max-cs-delay", classifier.DefaultMaxCSTimeAndDelayMs, "reject when both cs time and shot delay exceed this (ms)")
	flags.IntVar(&overlaySize, "size", overlay.DefaultSize, "overlay body size (8-24, even)")
	rootCmd.Flags().BoolVar(&livePlain, "plain", false, "print results to the console instead of the overlay")

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKeysCmd())

	return rootCmd
}

func loadRuntimeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "forward", &keyForward, fileCfg.Keys.Forward)
	applyStringConfig(cmd, "backward", &keyBackward, fileCfg.Keys.Backward)
	applyStringConfig(cmd, "left", &keyLeft, fileCfg.Keys.Left)
	applyStringConfig(cmd, "right", &keyRight, fileCfg.Keys.Right)
	applyFloatConfig(cmd, "max-shot-delay", &maxShotDelay, fileCfg.Filter.MaxShotDelay)
	applyFloatConfig(cmd, "max-cs-delay", &maxCSDelay, fileCfg.Filter.MaxCSDelay)
	applyIntConfig(cmd, "size", &overlaySize, fileCfg.Overlay.Size)

	keys, err := config.ResolveKeys(model.KeyBindings{
		Forward:  keyForward,
		Backward: keyBackward,
		Left:     keyLeft,
		Right:    keyRight,
	})
	if err != nil {
		return model.Config{}, err
	}
	cfg := model.Config{
		Keys:                keys,
		MaxShotDelayMs:      maxShotDelay,
		MaxCSTimeAndDelayMs: maxCSDelay,
		OverlaySize:         overlaySize,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newSession(cfg model.Config, renderer session.Renderer) (*session.Session, error) {
	mc, err := classifier.New(cfg.Keys.Vertical(), cfg.Keys.Horizontal())
	if err != nil {
		return nil, err
	}
	filter := classifier.ShotFilter{
		MaxShotDelayMs:      cfg.MaxShotDelayMs,
		MaxCSTimeAndDelayMs: cfg.MaxCSTimeAndDelayMs,
	}
	return session.New(mc, filter, renderer), nil
}

func runLiveCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}

	src, err := input.NewGlobalSource(cfg.Keys)
	if err != nil {
		if errors.Is(err, input.ErrUnsupportedPlatform) {
			logErrln("Live capture needs a windows host. Try: cstrafe replay <file>")
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan input.Event, eventBuffer)
	go func() {
		if err := src.Run(ctx, events); err != nil {
			logErrf("input source stopped: %v\n", err)
		}
	}()

	if livePlain {
		return runPlain(ctx, cancel, cfg, events)
	}
	return runOverlay(ctx, cancel, cfg, events)
}

func runOverlay(ctx context.Context, cancel context.CancelFunc, cfg model.Config, events <-chan input.Event) error {
	view := overlay.NewModel(cfg.OverlaySize)
	view.UseGlobalControls()
	program := tea.NewProgram(view, tea.WithAltScreen())
	renderer := overlay.NewRenderer(program)
	sess, err := newSession(cfg, renderer)
	if err != nil {
		return err
	}
	sess.SetController(renderer)

	go func() {
		<-ctx.Done()
		program.Quit()
	}()
	go sess.Run(ctx, events)

	_, err = program.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("failed to run overlay: %w", err)
	}
	return nil
}

func runPlain(ctx context.Context, cancel context.CancelFunc, cfg model.Config, events <-chan input.Event) error {
	out := console.New(os.Stdout)
	sess, err := newSession(cfg, out)
	if err != nil {
		return err
	}

	closeKeys, err := watchQuitKeys(cancel)
	if err != nil {
		logErrf("quit key unavailable: %v\n", err)
	} else {
		defer closeKeys()
	}

	logErrln("Listening. Press q or Esc here, or F8 anywhere, to quit.")
	sess.Run(ctx, events)
	return out.Err()
}

// watchQuitKeys cancels when q, Esc or Ctrl+C is typed in the console.
func watchQuitKeys(cancel context.CancelFunc) (func(), error) {
	if err := keyboard.Open(); err != nil {
		return nil, err
	}
	go func() {
		defer cancel()
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if char == 'q' || char == 'Q' || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
				return
			}
		}
	}()
	return func() { keyboard.Close() }, nil
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Classify shots from a recorded event script",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}
	events, err := replay.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load replay: %w", err)
	}
	out := console.New(cmd.OutOrStdout())
	sess, err := newSession(cfg, out)
	if err != nil {
		return err
	}
	results := replay.Run(sess, events)
	if len(results) == 0 {
		logErrln("no clicks in replay")
	}
	return out.Err()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show resolved key bindings and thresholds",
		Args:  cobra.NoArgs,
		RunE:  runKeysCmd,
	}
}

func runKeysCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}
	return printKeys(cmd.OutOrStdout(), cfg)
}

func printKeys(w io.Writer, cfg model.Config) error {
	rows := []struct{ name, value string }{
		{"forward", cfg.Keys.Forward},
		{"backward", cfg.Keys.Backward},
		{"left", cfg.Keys.Left},
		{"right", cfg.Keys.Right},
		{"max-shot-delay", fmt.Sprintf("%g ms", cfg.MaxShotDelayMs)},
		{"max-cs-delay", fmt.Sprintf("%g ms", cfg.MaxCSTimeAndDelayMs)},
		{"size", fmt.Sprintf("%d", cfg.OverlaySize)},
		{"config", config.DefaultConfigPath()},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-15s %s\n", row.name, row.value); err != nil {
			return err
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	def := config.DefaultKeys()
	return fmt.Sprintf(`# cstrafe configuration
# Uncomment a value to enable it. CLI flags override config values.

[keys]
# forward = %q            # Single A-Z or 0-9 key
# backward = %q
# left = %q
# right = %q

[filter]
# max-shot-delay = %.1f   # Max ms between stopping and shooting
# max-cs-delay = %.1f     # Reject when both cs time and shot delay exceed this (ms)

[overlay]
# size = %d               # Body size, 8-24 in steps of 2
`,
		def.Forward,
		def.Backward,
		def.Left,
		def.Right,
		classifier.DefaultMaxShotDelayMs,
		classifier.DefaultMaxCSTimeAndDelayMs,
		overlay.DefaultSize,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.MaxShotDelayMs <= 0 {
		return fmt.Errorf("--max-shot-delay must be > 0")
	}
	if cfg.MaxCSTimeAndDelayMs <= 0 {
		return fmt.Errorf("--max-cs-delay must be > 0")
	}
	if cfg.OverlaySize < overlay.MinSize || cfg.OverlaySize > overlay.MaxSize {
		return fmt.Errorf("--size must be between %d and %d", overlay.MinSize, overlay.MaxSize)
	}
	if cfg.OverlaySize%2 != 0 {
		return fmt.Errorf("--size must be even")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
