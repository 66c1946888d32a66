package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/BarkinBalci/gearstick-cli/cmd"
	"github.com/BarkinBalci/gearstick-cli/internal/config"
	"github.com/BarkinBalci/gearstick-cli/internal/core"
	"github.com/BarkinBalci/gearstick-cli/internal/logging"
	"github.com/BarkinBalci/gearstick-cli/internal/secret"
	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

// version is stamped into new vaults; override with -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "add":
		runAdd(ctx, os.Args[2:])
	case "note":
		runNote(ctx, os.Args[2:])
	case "ls", "list":
		runLs(ctx, os.Args[2:])
	case "show":
		runShow(ctx, os.Args[2:])
	case "rename":
		runRename(ctx, os.Args[2:])
	case "fav":
		runFavorite(ctx, "fav", os.Args[2:], true)
	case "unfav":
		runFavorite(ctx, "unfav", os.Args[2:], false)
	case "rm":
		runRm(ctx, os.Args[2:])
	case "sort":
		runSort(ctx, os.Args[2:])
	case "status":
		runStatus(ctx, os.Args[2:])
	case "history":
		runHistory(ctx, os.Args[2:])
	case "diff":
		runDiff(ctx, os.Args[2:])
	case "restore":
		runRestore(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("gearstick %s\n", version)
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// setup registers the common flags on fs, parses args and builds the
// Gearstick for the resolved configuration.
func setup(fs *flag.FlagSet, args []string) *core.Gearstick {
	resolve := config.Flags(fs, version)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cfg, err := resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	log := logging.Must(cfg.LogLevel)
	return core.New(cfg, core.WithLogger(log))
}

// requireArgs exits with usage when fs has fewer than n positional arguments
func requireArgs(fs *flag.FlagSet, n int, usage string) {
	if fs.NArg() < n {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
}

func parseSeq(s string) uint64 {
	seq, err := strconv.ParseUint(s, 10, 64)
	if err != nil || seq == 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid snapshot number %q\n", s)
		os.Exit(1)
	}
	return seq
}

func runInit(_ context.Context, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	g := setup(fs, args)

	cmd.Init(g)
}

func runAdd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Display name")
	username := fs.String("username", "", "Account username")
	url := fs.String("url", "", "Site URL")
	favorite := fs.Bool("favorite", false, "Mark as favorite")
	generate := fs.Int("generate", 0, fmt.Sprintf("Generate a random password of this length (%d-%d)", secret.MinLength, secret.MaxLength))
	g := setup(fs, args)

	if *name == "" && fs.NArg() > 0 {
		*name = fs.Arg(0)
	}

	cmd.AddCredential(ctx, g, vault.Credential{
		Name:     *name,
		Favorite: *favorite,
		Username: *username,
		URL:      *url,
	}, *generate)
}

func runNote(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("note", flag.ExitOnError)
	name := fs.String("name", "", "Display name")
	favorite := fs.Bool("favorite", false, "Mark as favorite")
	g := setup(fs, args)

	cmd.AddNote(ctx, g, *name, *favorite, fs.Args())
}

func runLs(_ context.Context, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	sorted := fs.Bool("sort", false, "Show records favorites first, then by name")
	quiet := fs.Bool("q", false, "Print record ids only")
	g := setup(fs, args)

	cmd.List(g, *sorted, *quiet)
}

func runShow(_ context.Context, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	reveal := fs.Bool("reveal", false, "Print the password in clear text")
	g := setup(fs, args)
	requireArgs(fs, 1, "gearstick show [-reveal] <id>")

	cmd.Show(g, fs.Arg(0), *reveal)
}

func runRename(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	g := setup(fs, args)
	requireArgs(fs, 2, "gearstick rename <id> <name>")

	cmd.Rename(ctx, g, fs.Arg(0), fs.Arg(1))
}

func runFavorite(ctx context.Context, name string, args []string, favorite bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	g := setup(fs, args)

	cmd.Favorite(ctx, g, fs.Args(), favorite)
}

func runRm(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	g := setup(fs, args)

	cmd.Remove(ctx, g, fs.Args())
}

func runSort(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	g := setup(fs, args)

	cmd.Sort(ctx, g)
}

func runStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	g := setup(fs, args)

	cmd.Status(ctx, g)
}

func runHistory(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	g := setup(fs, args)

	cmd.History(ctx, g)
}

func runDiff(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	g := setup(fs, args)

	var seq uint64
	if fs.NArg() > 0 {
		seq = parseSeq(fs.Arg(0))
	}
	cmd.Diff(ctx, g, seq)
}

func runRestore(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	force := fs.Bool("force", false, "Restore without confirmation")
	g := setup(fs, args)
	requireArgs(fs, 1, "gearstick restore [-force] <snapshot>")

	cmd.Restore(ctx, g, parseSeq(fs.Arg(0)), *force)
}

func runCompact(_ context.Context, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	g := setup(fs, args)

	cmd.Compact(g)
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gearstick completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("gearstick - Simple local password and notes vault")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gearstick <command> [flags] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create an empty vault file")
	fmt.Println("  add         Add a credential")
	fmt.Println("  note        Add a note")
	fmt.Println("  ls          List credentials and notes")
	fmt.Println("  show        Show a single record")
	fmt.Println("  rename      Rename a record")
	fmt.Println("  fav, unfav  Set or clear the favorite flag")
	fmt.Println("  rm          Remove records")
	fmt.Println("  sort        Sort records favorites first, then by name")
	fmt.Println("  status      Show vault status")
	fmt.Println("  history     List saved snapshots")
	fmt.Println("  diff        Compare the vault with a snapshot")
	fmt.Println("  restore     Restore a snapshot")
	fmt.Println("  compact     Compact the history database")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Every command accepts -vault <path> and -config <path> before its arguments.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  gearstick init                                   # Create vault.json")
	fmt.Println("  gearstick add -name Steam -username me -generate 24")
	fmt.Println("  gearstick ls -sort                               # Favorites first")
	fmt.Println()
	fmt.Println("Use 'gearstick help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("gearstick init [-vault <path>]")
		fmt.Println()
		fmt.Println("Creates an empty vault file (vault.json by default).")
		fmt.Println("Fails if the file already exists.")
		fmt.Println("Records are stored unencrypted.")
	case "add":
		fmt.Println("gearstick add -name <name> [-username <u>] [-url <url>] [-favorite] [-generate N]")
		fmt.Println()
		fmt.Println("Adds a credential. The password is generated with -generate,")
		fmt.Println("taken from GEARSTICK_SECRET, or prompted for without echo.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  gearstick add -name Steam -username Eldoritto -url https://store.steampowered.com/")
		fmt.Println("  gearstick add -name Epic -generate 32")
	case "note":
		fmt.Println("gearstick note -name <name> [-favorite] [content...]")
		fmt.Println()
		fmt.Println("Adds a note. Without content arguments the note is read from stdin.")
	case "ls", "list":
		fmt.Println("gearstick ls [-sort] [-q]")
		fmt.Println()
		fmt.Println("Lists records with their ids. Passwords are never printed.")
		fmt.Println("  -sort   Show favorites first, then by name (does not change the file)")
		fmt.Println("  -q      Print ids only")
	case "show":
		fmt.Println("gearstick show [-reveal] <id>")
		fmt.Println()
		fmt.Println("Shows a single record. -reveal prints the password.")
	case "rename":
		fmt.Println("gearstick rename <id> <name>")
	case "fav", "unfav":
		fmt.Println("gearstick fav <id> [id...]")
		fmt.Println("gearstick unfav <id> [id...]")
		fmt.Println()
		fmt.Println("Sets or clears the favorite flag.")
	case "rm":
		fmt.Println("gearstick rm <id> [id...]")
		fmt.Println()
		fmt.Println("Removes records. If any id is unknown nothing is removed.")
	case "sort":
		fmt.Println("gearstick sort")
		fmt.Println()
		fmt.Println("Reorders credentials and notes favorites first, then by name, and saves the vault.")
	case "status":
		fmt.Println("gearstick status")
		fmt.Println()
		fmt.Println("Shows record counts, format version, snapshot count")
		fmt.Println("and warns when vault files are exposed to git.")
	case "history":
		fmt.Println("gearstick history")
		fmt.Println()
		fmt.Println("Lists snapshots recorded on every save, newest first.")
		fmt.Println("history_keep in the config file (or GEARSTICK_HISTORY_KEEP) limits how many are kept; 0 disables history.")
	case "diff":
		fmt.Println("gearstick diff [snapshot]")
		fmt.Println()
		fmt.Println("Compares the vault with a snapshot (default: the latest).")
		fmt.Println("The output includes secrets in clear text.")
	case "restore":
		fmt.Println("gearstick restore [-force] <snapshot>")
		fmt.Println()
		fmt.Println("Replaces the vault with a snapshot. The current state is snapshotted first.")
	case "compact":
		fmt.Println("gearstick compact")
		fmt.Println()
		fmt.Println("Prunes and compacts the history database to reclaim disk space.")
	case "completion":
		fmt.Println("gearstick completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(gearstick completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(gearstick completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  gearstick completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
