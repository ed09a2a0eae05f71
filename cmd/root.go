package cmd

import (
	"context"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/midi"
	"go-pianoroll/sequencer"
	"go-pianoroll/theme"
	"go-pianoroll/tui"
)

var (
	configPath string
	debugLog   bool
	outputPort string
	inputPort  string
	tempo      int
	channel    int
	demo       bool
)

var rootCmd = &cobra.Command{
	Use:   "go-pianoroll",
	Short: "Piano roll editor for the terminal",
	Long: `A mouse-driven piano roll. Double-click to add notes, drag to move or
resize them, drag on empty grid to box select. Playback goes to a MIDI output.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/go-pianoroll/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log next to the config")

	f := rootCmd.Flags()
	f.StringVarP(&outputPort, "port", "p", "", "MIDI output port (case-insensitive substring)")
	f.StringVar(&inputPort, "input", "", "MIDI keyboard input port")
	f.IntVarP(&tempo, "tempo", "t", 0, "tempo in bpm")
	f.IntVar(&channel, "channel", 0, "MIDI channel 1-16")
	f.BoolVar(&demo, "demo", false, "start with a demo chord and melody")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// applyOverrides lets explicitly set flags win over the file
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.MIDI.OutputPort = outputPort
	}
	if flags.Changed("input") {
		cfg.MIDI.InputPort = inputPort
	}
	if flags.Changed("tempo") {
		cfg.UI.LastTempo = tempo
	}
	if flags.Changed("channel") {
		cfg.MIDI.Channel = channel
	}
	return cfg.Validate()
}

func startDebug() (func(), error) {
	if !debugLog {
		return func() {}, nil
	}
	if err := debug.Enable(debug.DefaultPath()); err != nil {
		return nil, err
	}
	return debug.Disable, nil
}

func run(cmd *cobra.Command) error {
	stop, err := startDebug()
	if err != nil {
		return err
	}
	defer stop()
	defer midi.CloseDriver()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	var palette *theme.Palette
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			return err
		}
	}

	saver, err := config.NewSaver(configPath, config.DefaultSaveDelay)
	if err != nil {
		return err
	}

	editor := sequencer.NewEditor(cfg, 80, 24)
	defer editor.Close()
	if demo {
		editor.LoadDemo()
	} else {
		editor.CenterOnPitch(60)
	}

	connectOutput(editor, cfg.MIDI.OutputPort)
	if cfg.MIDI.InputPort != "" {
		in, err := midi.OpenInput(cfg.MIDI.InputPort)
		if err != nil {
			editor.SetStatus(fmsg.GetIssue(err))
		} else {
			defer in.Close()
			editor.ListenInput(in)
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	editor.WatchPorts(ctx, midi.NewPortWatcher(), sequencer.OpenOutput)

	m := tui.NewModel(editor, theme.New(palette), saver)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fault.Wrap(err, fmsg.With("run terminal ui"))
	}
	return saver.Flush()
}

// connectOutput opens the configured output now. A missing port is not an
// error: the port watcher picks it up when it appears.
func connectOutput(editor *sequencer.Editor, name string) {
	out, err := midi.OpenOutput(name)
	switch {
	case err == nil:
		editor.SetOutput(out, out.Name())
	case ftag.Get(err) == ftag.NotFound:
		if name == "" {
			editor.SetStatus("waiting for a MIDI output")
		} else {
			editor.SetStatus(fmt.Sprintf("waiting for MIDI output %q", name))
		}
	default:
		editor.SetStatus(fmsg.GetIssue(err))
	}
}
