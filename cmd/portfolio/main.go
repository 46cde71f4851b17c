// Command portfolio operates on the site's data store the way the admin
// screens do: bulk export/import, wiping, PIN management and the
// maintenance switch.
//
// Usage:
//
//	portfolio [-config config.yml] <command> [args]
//
// Commands:
//
//	status                     show store, session and flag state
//	export [-o file]           write the export document (default: suggested name)
//	import <file>              overwrite both collections from an export document
//	wipe -confirm DELETE       clear both collections
//	pin set <code> | pin clear manage the sensitive-action PIN
//	maintenance on|off|status  manage the maintenance flag
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/portfolio-site/core/internal/app"
	"github.com/portfolio-site/core/internal/config"
	"go.uber.org/zap"
)

const wipePhrase = "DELETE"

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	application, err := app.New(logger, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}
	defer application.Close()

	if err := run(application, flag.Args()); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command (status, export, import, wipe, pin, maintenance)")
	}

	switch args[0] {
	case "status":
		return runStatus(a)
	case "export":
		return runExport(a, args[1:])
	case "import":
		return runImport(a, args[1:])
	case "wipe":
		return runWipe(a, args[1:])
	case "pin":
		return runPin(a, args[1:])
	case "maintenance":
		return runMaintenance(a, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runStatus(a *app.App) error {
	posts := a.Posts.ListAll()
	projects := a.Projects.ListAll()
	fmt.Printf("blog posts:  %d\n", len(posts))
	fmt.Printf("projects:    %d\n", len(projects))
	if s := a.Session(); s != nil {
		fmt.Printf("session:     %s (admin)\n", s.Email)
	} else {
		fmt.Println("session:     none")
	}
	fmt.Printf("pin set:     %v\n", a.Pin.IsSet())
	fmt.Printf("maintenance: %v\n", a.Maintenance.Enabled())
	return nil
}

func runExport(a *app.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (defaults to the suggested export name)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := a.Backup.Export()
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = a.Backup.Filename()
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func runImport(a *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file>")
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	res := a.Backup.Import(string(raw))
	fmt.Println(res.Message)
	if !res.Success {
		return fmt.Errorf("import failed")
	}
	return nil
}

func runWipe(a *app.App, args []string) error {
	fs := flag.NewFlagSet("wipe", flag.ExitOnError)
	confirm := fs.String("confirm", "", "type DELETE to confirm")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *confirm != wipePhrase {
		return fmt.Errorf("refusing to wipe: pass -confirm %s", wipePhrase)
	}
	if !a.Backup.Clear() {
		return fmt.Errorf("wipe failed")
	}
	fmt.Println("all data cleared")
	return nil
}

func runPin(a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pin set <code> | pin clear")
	}
	switch args[0] {
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: pin set <code>")
		}
		if err := a.Pin.Set(args[1]); err != nil {
			return err
		}
		fmt.Println("pin set")
		return nil
	case "clear":
		if err := a.Pin.Clear(); err != nil {
			return err
		}
		fmt.Println("pin cleared")
		return nil
	default:
		return fmt.Errorf("unknown pin subcommand %q", args[0])
	}
}

func runMaintenance(a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: maintenance on|off|status")
	}
	switch args[0] {
	case "on":
		if err := a.Maintenance.Set(true); err != nil {
			return err
		}
		fmt.Println("maintenance mode enabled")
		return nil
	case "off":
		if err := a.Maintenance.Set(false); err != nil {
			return err
		}
		fmt.Println("maintenance mode disabled")
		return nil
	case "status":
		fmt.Printf("maintenance: %v\n", a.Maintenance.Enabled())
		return nil
	default:
		return fmt.Errorf("unknown maintenance subcommand %q", args[0])
	}
}
