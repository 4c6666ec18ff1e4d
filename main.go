package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pathedit/internal/config"
	"pathedit/internal/editor"
	"pathedit/internal/history"
	"pathedit/internal/logging"
	"pathedit/internal/model"
	"pathedit/internal/store"
	"pathedit/internal/tui"
	"pathedit/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"var":           "variable",
	"delimiter":     "delimiter",
	"store":         "store",
	"file":          "file",
	"shell":         "shell",
	"history-limit": "history.limit",
	"log-level":     "log.level",
	"log-console":   "log.console",
	"port":          "web.port",
}

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "pathedit",
		Repository: "pathedit",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pathedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "pathedit edits a PATH-like environment variable as an ordered list,\n")
		fmt.Fprintf(os.Stderr, "with validation, reordering, purge of missing directories and undo/redo.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pathedit                          # Edit $PATH in the terminal UI (not persisted)\n")
		fmt.Fprintf(os.Stderr, "  pathedit --store file             # Edit the exported PATH in the snippet file\n")
		fmt.Fprintf(os.Stderr, "  pathedit --list                   # Print entries with diagnostics\n")
		fmt.Fprintf(os.Stderr, "  pathedit --store file --purge     # Drop missing dirs from the snippet file\n")
		fmt.Fprintf(os.Stderr, "  pathedit --var MANPATH --web      # Edit $MANPATH from the browser\n")
	}

	configFlag := pflag.StringP("config", "c", "", "Config file (default $XDG_CONFIG_HOME/pathedit/config.toml)")
	pflag.String("var", "PATH", "Name of the variable to edit")
	pflag.String("delimiter", string(os.PathListSeparator), "List separator")
	pflag.String("store", "env", "Where the value lives: env, file or memory")
	pflag.String("file", "", "Shell snippet used by --store file")
	pflag.String("shell", "", "Snippet syntax: bash, zsh or fish (default from $SHELL)")
	pflag.Int("history-limit", 0, "Maximum undo steps (0 = unlimited)")
	pflag.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	pflag.Bool("log-console", false, "Also log to stderr")
	pflag.IntP("port", "p", 8080, "Port for --web")

	listFlag := pflag.BoolP("list", "l", false, "Print the entries with diagnostics and exit")
	jsonFlag := pflag.BoolP("json", "j", false, "Print the entries as JSON and exit")
	outputFlag := pflag.StringP("output", "o", "", "Write --list or --json output to this file")
	purgeFlag := pflag.Bool("purge", false, "Remove entries that are not existing directories, save and exit")
	dryRunFlag := pflag.BoolP("dry-run", "n", false, "Never write to the configured store")
	webFlag := pflag.BoolP("web", "w", false, "Start the web editor on localhost")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("pathedit version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfg, err := config.Load(*configFlag, flagOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := logging.Setup(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ed, tgt, err := openEditor(cfg, *dryRunFlag)
	if err != nil {
		log.Error().Err(err).Msg("failed to open editor")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *purgeFlag:
		runPurgeMode(ed, tgt)
	case *webFlag:
		if tgt.notice != "" {
			fmt.Fprintf(os.Stderr, "Note: %s\n", tgt.notice)
		}
		if err := web.StartServer(cfg.Web.Port, web.NewServer(ed, tgt.name, tgt.notice)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *jsonFlag:
		runJsonMode(ed, tgt.name, *outputFlag)
	case *listFlag:
		runListMode(ed, tgt.name, *outputFlag)
	default:
		runTuiMode(ed, tgt)
	}
}

// flagOverrides returns the explicitly set flags as config keys.
func flagOverrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	pflag.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		switch f.Value.Type() {
		case "int":
			v, _ := pflag.CommandLine.GetInt(f.Name)
			overrides[key] = v
		case "bool":
			v, _ := pflag.CommandLine.GetBool(f.Name)
			overrides[key] = v
		default:
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}

// target describes where the editor's commits go.
type target struct {
	name   string // e.g. "env:PATH"
	notice string // Set when commits do not outlive the process
}

func openEditor(cfg *config.Config, dryRun bool) (*editor.Editor, target, error) {
	shell, err := store.ShellByName(cfg.Shell, os.Getenv("SHELL"))
	if err != nil {
		return nil, target{}, err
	}
	s, err := store.New(store.Options{
		Kind:  cfg.Store,
		Name:  cfg.Variable,
		File:  cfg.File,
		Shell: shell,
	})
	if err != nil {
		return nil, target{}, err
	}
	storeName := cfg.Store + ":" + cfg.Variable

	if dryRun {
		value, err := s.Read()
		if err != nil {
			return nil, target{}, err
		}
		s = store.NewMemoryStore(value)
		storeName += " (dry run)"
	}

	h, err := history.New(s, history.WithLimit(cfg.History.Limit))
	if err != nil {
		return nil, target{}, err
	}
	tgt := target{name: storeName, notice: store.Notice(s)}
	if dryRun {
		tgt.notice = "changes are not persisted (dry run)"
	}
	log.Info().Str("store", storeName).Bool("persisted", tgt.notice == "").Msg("editor opened")

	ed := editor.New(h,
		editor.WithDelimiter(cfg.DelimiterRune()),
		editor.WithValidator(model.KeepReference(cfg.Variable, model.DirExists)),
	)
	return ed, tgt, nil
}

func runPurgeMode(ed *editor.Editor, tgt target) {
	removed, err := ed.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(purgeReport(removed, ed.Len(), tgt))
}

func purgeReport(removed, remaining int, tgt target) string {
	report := fmt.Sprintf("Removed %d invalid entries from %s (%d remaining)\n", removed, tgt.name, remaining)
	if tgt.notice != "" {
		report += "Note: " + tgt.notice + "\n"
	}
	return report
}

func runListMode(ed *editor.Editor, storeName, outputFile string) {
	var b strings.Builder
	statuses := model.Annotate(ed.Entries())
	fmt.Fprintf(&b, "%s: %d entries\n\n", storeName, len(statuses))
	for _, st := range statuses {
		value := st.Value
		if st.Empty {
			value = "(empty)"
		}
		fmt.Fprintf(&b, "%3d. %s %s\n", st.Index+1, st.Icon(), value)
		if st.Remediation != "" {
			fmt.Fprintf(&b, "       %s\n", st.Remediation)
		}
	}
	writeOutput(b.String(), outputFile)
}

func runJsonMode(ed *editor.Editor, storeName, outputFile string) {
	out := struct {
		Store      string              `json:"store"`
		Serialized string              `json:"serialized"`
		Entries    []model.EntryStatus `json:"entries"`
	}{
		Store:      storeName,
		Serialized: ed.Serialize(),
		Entries:    model.Annotate(ed.Entries()),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	writeOutput(string(data)+"\n", outputFile)
}

func writeOutput(text, outputFile string) {
	if outputFile == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to %s: %v\n", outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Saved to %s\n", outputFile)
}

func runTuiMode(ed *editor.Editor, tgt target) {
	m := tui.InitialModel(ed, tgt.name, tgt.notice)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
