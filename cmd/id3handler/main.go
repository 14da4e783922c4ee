package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/id3handler/internal/config"
	"github.com/handiism/id3handler/internal/tagging"
	"github.com/handiism/id3handler/internal/watch"
)

const (
	exitOK          = 0
	exitFailed      = 1
	exitUsage       = 2
	exitInterrupted = 130
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF79C6"))
)

func main() {
	os.Exit(run())
}

func run() int {
	// Command line flags
	var (
		verboseFlag   = flag.Bool("v", false, "Verbose output, print out all info")
		configFlag    = flag.String("config", "", "Path to config file (default "+config.DefaultPath()+")")
		recursiveFlag = flag.Bool("recursive", false, "Descend into subdirectories")
		playlistFlag  = flag.Bool("playlist", false, "Create a playlist per updated directory")
		coverFlag     = flag.Bool("cover", true, "Embed cover.jpg/folder.jpg found next to the files")
		dryRunFlag    = flag.Bool("dry-run", false, "Report changes without writing them")
		workersFlag   = flag.Int("workers", 0, "Files processed concurrently (overrides config)")
	)
	flag.Usage = printHelp
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("No input variables given!")
		printHelp()
		return exitUsage
	}

	inv, err := classifyArgs(flag.Args(), func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		printHelp()
		return exitUsage
	}
	verbose := *verboseFlag || inv.verbose

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitFailed
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render(fmt.Sprintf("Ignoring environment: %v", err)))
	}

	// Apply flags that were given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "recursive":
			settings.Recursive = *recursiveFlag
		case "playlist":
			settings.CreatePlaylist = *playlistFlag
		case "cover":
			settings.EmbedCover = *coverFlag
		case "workers":
			settings.MaxConcurrentFiles = *workersFlag
		}
	})
	verbose = verbose || settings.Verbose

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onProgress := func(event tagging.ProgressEvent) {
		if event.Level == tagging.LevelVerbose && !verbose {
			return
		}
		fmt.Println(render(event))
	}

	manager := tagging.NewManager(settings, onProgress)
	manager.SetDryRun(*dryRunFlag)

	if inv.command == commandWatch {
		return runWatch(ctx, settings, manager, inv.dirs, onProgress)
	}

	if err := manager.Initialize(ctx, inv.request()); err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if errors.Is(err, tagging.ErrTooManyFields) || errors.Is(err, tagging.ErrAmbiguousOverride) {
			return exitUsage
		}
		return exitFailed
	}

	if err := manager.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nInterrupted, cancelled.")
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}

	done, skipped, failed := manager.Summary()
	if verbose || len(manager.Files()) > 1 {
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d done, %d skipped, %d failed", inv.command, done, skipped, failed)))
	}
	if failed > 0 {
		return exitFailed
	}
	return exitOK
}

func runWatch(ctx context.Context, settings *config.Settings, manager *tagging.Manager, dirs []string, onProgress func(tagging.ProgressEvent)) int {
	w := watch.New(watch.Config{
		Dirs:       dirs,
		Extensions: settings.Extensions,
		Recursive:  settings.Recursive,
		Settle:     settings.WatchSettle(),
	}, func(ctx context.Context, path string) {
		manager.Process(ctx, tagging.Request{Command: tagging.CommandUpdate}, path)
	}, onProgress)

	fmt.Println(titleStyle.Render("Watching for new audio files, press Ctrl+C to stop"))
	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}
	if ctx.Err() != nil {
		return exitInterrupted
	}
	return exitOK
}

func render(event tagging.ProgressEvent) string {
	switch event.Level {
	case tagging.LevelError:
		return errorStyle.Render("error ") + event.Message
	case tagging.LevelWarning:
		return warningStyle.Render("warn  ") + event.Message
	case tagging.LevelSuccess:
		return successStyle.Render("ok    ") + event.Message
	case tagging.LevelInfo:
		return infoStyle.Render("info  ") + event.Message
	default:
		return verboseStyle.Render("      " + event.Message)
	}
}

func printHelp() {
	fmt.Println(titleStyle.Render("ID3 Tag handler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  id3handler [flags] COMMAND PATH [OVERWRITE_STRING]")
	fmt.Println("  id3handler [flags] COMMAND PATH ARTIST YEAR ALBUM TRACK TITLE")
	fmt.Println("  id3handler [flags] watch DIR...")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  print   print tag information from PATH")
	fmt.Println("  update  update tag information based on path and filename")
	fmt.Println("  remove  remove ID3 tags completely")
	fmt.Println("  watch   update new or changed files in DIR as they appear")
	fmt.Println()
	fmt.Println("PATH may be a file or a directory of audio files.")
	fmt.Println()
	fmt.Println("OVERWRITE_STRING:")
	fmt.Println("  Format the string in the style of: ARTIST - YEAR - ALBUM / TRACK - SONGNAME")
	fmt.Println("  Don't use - or / other than as separators.")
	fmt.Println()
	fmt.Println("  The other option is to give each item as its own argument, in the")
	fmt.Println("  following order (all required): \"ARTIST\" \"YEAR\" \"ALBUM\" \"TRACK\" \"SONG NAME\"")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  id3handler print \"PATH\"")
	fmt.Println("  id3handler remove \"PATH\"")
	fmt.Println("  id3handler update \"PATH\"")
	fmt.Println("  id3handler update \"PATH\" \"STRING AS PATH\"")
	fmt.Println("  id3handler update \"PATH\" \"ARTIST\" \"YEAR\" \"ALBUM\" \"TRACK\" \"SONG NAME\"")
	fmt.Println("  id3handler -recursive -playlist update ~/Music")
	fmt.Println()
	fmt.Println("For interactive mode, use: id3handler-tui")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
