package cli

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deployctl/deployctl/internal/output"
)

func printUsage() {
	w := output.New()

	w.HelpTitle("deployctl - deployment orchestration for local projects")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl <command> [arguments] [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("init", "Create a new project configuration", helpFlagWidthShort)
	w.HelpCommand("run", "Run a target and its dependencies", helpFlagWidthShort)
	w.HelpCommand("plan", "Show the execution order for a target", helpFlagWidthShort)
	w.HelpCommand("targets", "List configured targets", helpFlagWidthShort)
	w.HelpCommand("services", "List configured services and their status", helpFlagWidthShort)
	w.HelpCommand("up", "Start services", helpFlagWidthShort)
	w.HelpCommand("stop", "Stop services", helpFlagWidthShort)
	w.HelpCommand("down", "Remove service containers", helpFlagWidthShort)
	w.HelpCommand("compose", "Export services as docker-compose.yml", helpFlagWidthShort)
	w.HelpCommand("status", "Show the most recent run", helpFlagWidthShort)
	w.HelpCommand("config", "Validate the project configuration", helpFlagWidthShort)
	w.HelpCommand("completion", "Generate shell completion scripts", helpFlagWidthShort)
	w.HelpCommand("version", "Print the version", helpFlagWidthShort)
	w.HelpCommand("help", "Show this help", helpFlagWidthShort)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("deployctl run deploy", "Deploy with all dependencies")
	w.HelpExample("deployctl run deploy --param version=1.2.0", "Deploy a specific version")
	w.HelpExample("deployctl plan deploy", "Preview the execution order")
	w.HelpExample("deployctl up db", "Start the db service")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global flags:")
	w.HelpFlag("-q, --quiet", "Errors only", helpFlagWidthGlobal)
	w.HelpFlag("-v, --verbose", "Maximum detail", helpFlagWidthGlobal)
	w.HelpFlag("-C <dir>", "Run as if started in <dir>", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show help", helpFlagWidthGlobal)
}

func printRunUsage() {
	w := output.New()

	w.HelpTitle("deployctl run - run a target and its dependencies")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl run <target> [--param <key>=<value>]... [--dry-run]")

	w.HelpSection("Flags:")
	w.HelpFlag("--param <key>=<value>", "Override a configuration parameter", helpFlagWidthGlobal+4)
	w.HelpFlag("--dry-run", "Print the execution order without running", helpFlagWidthGlobal+4)

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	for _, name := range []string{"build", "deploy"} {
		w.HelpExample(fmt.Sprintf("deployctl run %s", name),
			fmt.Sprintf("%s with all dependencies", titleCase.String(name)))
	}
	w.HelpExample("deployctl run deploy --param version=2.0.0", "Deploy version 2.0.0")
	w.Println("")
}

func printPlanUsage() {
	w := output.New()

	w.HelpTitle("deployctl plan - show the execution order for a target")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl plan <target>")

	w.Println("")
	w.Println("Resolves the target's dependency graph and prints the order in")
	w.Println("which targets would run, without executing anything.")
	w.Println("")
}

func printTargetsUsage() {
	w := output.New()

	w.HelpTitle("deployctl targets - list configured targets")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl targets")
	w.Println("")
}

func printServicesUsage() {
	w := output.New()

	w.HelpTitle("deployctl services - list configured services and their status")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl services")

	w.Println("")
	w.Println("Requires docker to query container status.")
	w.Println("")
}

func printUpUsage() {
	w := output.New()

	w.HelpTitle("deployctl up - start services")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl up [service]...")

	w.Println("")
	w.Println("Starts the named services, or every configured service when none")
	w.Println("are given. Already-running services are left untouched.")
	w.Println("")
}

func printStopUsage() {
	w := output.New()

	w.HelpTitle("deployctl stop - stop services")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl stop [service]...")

	w.Println("")
	w.Println("Stops the named services, or every configured service when none")
	w.Println("are given. Containers are kept and can be started again with 'up'.")
	w.Println("")
}

func printDownUsage() {
	w := output.New()

	w.HelpTitle("deployctl down - remove service containers")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl down [service]...")

	w.Println("")
	w.Println("Stops and removes the named services' containers, or every")
	w.Println("configured service when none are given.")
	w.Println("")
}

func printComposeUsage() {
	w := output.New()

	w.HelpTitle("deployctl compose - export services as docker-compose.yml")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl compose [--stdout]")

	w.HelpSection("Flags:")
	w.HelpFlag("--stdout", "Print to stdout instead of writing a file", helpFlagWidthGlobal)
	w.Println("")
}

func printStatusUsage() {
	w := output.New()

	w.HelpTitle("deployctl status - show the most recent run")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl status")
	w.Println("")
}

func printConfigUsage() {
	w := output.New()

	w.HelpTitle("deployctl config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl config validate")

	w.HelpSection("Subcommands:")
	w.HelpCommand("validate", "Check the configuration against the schema", helpFlagWidthShort)
	w.Println("")
}

func printInitUsage() {
	w := output.New()

	w.HelpTitle("deployctl init - create a new project configuration")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl init")

	w.Println("")
	w.Println("Creates .deployctl/config.json with a starter configuration.")
	w.Println("Existing files are never overwritten.")
	w.Println("")
}
