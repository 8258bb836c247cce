package cli

import (
	"fmt"
	"strings"

	"github.com/deployctl/deployctl/internal/errors"
	"github.com/deployctl/deployctl/internal/output"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			printCompletionUsage()
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		printCompletionUsage()
		return errors.ExitConfigError
	}

	switch shell {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}

	return 0
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := output.New()

	w.HelpTitle("deployctl completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("deployctl completion <shell>")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", helpFlagWidthShort)

	w.HelpSection("Setup:")
	w.Println("  Bash:  eval \"$(deployctl completion bash)\"")
	w.Println("  Zsh:   eval \"$(deployctl completion zsh)\"")
	w.Println("  Fish:  deployctl completion fish | source")
	w.Println("")
}

// builtinCommands returns the list of built-in CLI commands.
func builtinCommands() []string {
	return []string{
		"init",
		"run",
		"plan",
		"targets",
		"services",
		"up",
		"stop",
		"down",
		"compose",
		"status",
		"config",
		"completion",
		"version",
		"help",
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []string {
	return []string{
		"--quiet",
		"--verbose",
		"--directory",
		"--help",
		"--version",
	}
}

func generateBashCompletion() string {
	return fmt.Sprintf(`# deployctl bash completion
# Add to ~/.bashrc: eval "$(deployctl completion bash)"

_deployctl_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"
    local config_subcommands="validate"
    local completion_shells="bash zsh fish"

    case "${prev}" in
        deployctl)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "${config_subcommands}" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "${completion_shells}" -- "${cur}"))
            return
            ;;
        run|plan)
            local targets
            if targets=$(deployctl targets -q 2>/dev/null | awk '{print $1}'); then
                COMPREPLY=($(compgen -W "${targets}" -- "${cur}"))
            fi
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
}

complete -F _deployctl_completions deployctl
`, strings.Join(builtinCommands(), " "), strings.Join(globalFlags(), " "))
}

func generateZshCompletion() string {
	return fmt.Sprintf(`#compdef deployctl
# deployctl zsh completion
# Add to ~/.zshrc: eval "$(deployctl completion zsh)"

_deployctl() {
    local -a commands flags
    commands=(%s)
    flags=(%s)

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        _describe 'flag' flags
        return
    fi

    case "${words[2]}" in
        config)
            _values 'subcommand' validate
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        run|plan)
            local -a targets
            targets=($(deployctl targets -q 2>/dev/null | awk '{print $1}'))
            _describe 'target' targets
            ;;
        *)
            _describe 'flag' flags
            ;;
    esac
}

compdef _deployctl deployctl
`, zshWords(builtinCommands()), zshWords(globalFlags()))
}

func generateFishCompletion() string {
	var b strings.Builder
	b.WriteString("# deployctl fish completion\n")
	b.WriteString("# Add to config.fish: deployctl completion fish | source\n\n")

	for _, cmd := range builtinCommands() {
		fmt.Fprintf(&b, "complete -c deployctl -n '__fish_use_subcommand' -a %s\n", cmd)
	}
	for _, flag := range globalFlags() {
		fmt.Fprintf(&b, "complete -c deployctl -l %s\n", strings.TrimPrefix(flag, "--"))
	}
	b.WriteString("complete -c deployctl -n '__fish_seen_subcommand_from config' -a validate\n")
	b.WriteString("complete -c deployctl -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")
	b.WriteString("complete -c deployctl -n '__fish_seen_subcommand_from run plan' -a '(deployctl targets -q 2>/dev/null | awk \"{print \\$1}\")'\n")

	return b.String()
}

// zshWords quotes a word list for interpolation into a zsh array literal.
func zshWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return strings.Join(quoted, " ")
}
