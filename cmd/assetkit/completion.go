package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --config
	Short    string   // -c (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values
}

// completionMeta holds completion hints for flags. Flag names, types, and
// descriptions come from the FlagSets.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"highlight-style": {Values: styles.Names()},
	"config":          {FileGlob: "*.yml,*.yaml"},
	"metrics":         {FileGlob: "*.prom"},
	"source":          {IsDir: true},
	"destination":     {IsDir: true},
}

var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// commandFlagSets builds each command's FlagSet with the same registration
// its parser uses.
func commandFlagSets() map[string]*flag.FlagSet {
	build := flag.NewFlagSet("build", flag.ContinueOnError)
	addBuildFlags(build, &buildFlags{})

	watch := flag.NewFlagSet("watch", flag.ContinueOnError)
	wf := &watchFlags{}
	addBuildFlags(watch, &wf.build)
	watch.DurationVar(&wf.debounce, "debounce", 0, "quiet period before rebuilding")
	watch.StringVar(&wf.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	list := flag.NewFlagSet("list", flag.ContinueOnError)
	addCommonFlags(list, &commonFlags{})

	doctor := flag.NewFlagSet("doctor", flag.ContinueOnError)
	doctor.Bool("json", false, "output results as JSON")

	return map[string]*flag.FlagSet{
		"build":  build,
		"watch":  watch,
		"list":   list,
		"doctor": doctor,
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	sets := commandFlagSets()
	names := []string{"build", "list", "watch", "doctor", "completion", "version", "help"}

	return []commandDef{
		{Name: "build", Desc: "Build plugin assets into the destination", Flags: extractFlagsFromFlagSet(sets["build"])},
		{Name: "list", Desc: "List plugin assets", Flags: extractFlagsFromFlagSet(sets["list"])},
		{Name: "watch", Desc: "Rebuild on source changes", Flags: extractFlagsFromFlagSet(sets["watch"])},
		{Name: "doctor", Desc: "Check the Sass toolchain", Flags: extractFlagsFromFlagSet(sets["doctor"])},
		{Name: "completion", Desc: "Generate shell completion script", Args: supportedShells},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: names},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[1])
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagWords(f flagDef) []string {
	words := []string{"--" + f.Long}
	if f.Short != "" {
		words = append(words, "-"+f.Short)
	}
	return words
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for assetkit\n")
	b.WriteString("shopt -s extglob\n\n")
	b.WriteString("_assetkit_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
			b.WriteString("        ;;\n")
			continue
		}

		b.WriteString("        case \"$prev\" in\n")
		var all []string
		for _, f := range c.Flags {
			words := flagWords(f)
			all = append(all, words...)
			if action := bashValueAction(f); action != "" {
				fmt.Fprintf(&b, "        %s)\n            %s\n            return\n            ;;\n", strings.Join(words, "|"), action)
			}
		}
		b.WriteString("        esac\n")
		fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(all, " "))
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _assetkit_completions assetkit\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func bashValueAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(f.Values, " "))
	case flagFile:
		globs := strings.Split(f.FileGlob, ",")
		return fmt.Sprintf("COMPREPLY=($(compgen -f -X '!@(%s)' -- \"$cur\"))", strings.Join(globs, "|"))
	case flagDir:
		return "COMPREPLY=($(compgen -d -- \"$cur\"))"
	case flagString, flagInt:
		return "COMPREPLY=()"
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef assetkit\n\n")
	b.WriteString("_assetkit() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=$words[2]\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
			b.WriteString("        ;;\n")
			continue
		}
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_assetkit \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"
	var action string
	switch f.Type {
	case flagEnum:
		action = ":style:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + strings.ReplaceAll(f.FileGlob, ",", " ") + "\""
	case flagDir:
		action = ":directory:_files -/"
	case flagString, flagInt:
		action = ":value:"
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for assetkit\n\n")
	b.WriteString("function __fish_assetkit_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_assetkit_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c assetkit -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c assetkit -n __fish_assetkit_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_assetkit_using_command %s'", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c assetkit -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c assetkit -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -d '" + fishEscape(f.Desc) + "'"
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			}
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# PowerShell completion for assetkit\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName assetkit -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($words.Count -eq 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	fmt.Fprintf(&b, "        $candidates = @(%s)\n", psList(commandNames(cmds)))
	b.WriteString("    } else {\n")
	b.WriteString("        switch ($words[1]) {\n")
	for _, c := range cmds {
		var words []string
		words = append(words, c.Args...)
		for _, f := range c.Flags {
			words = append(words, flagWords(f)...)
		}
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&b, "            '%s' { $candidates = @(%s) }\n", c.Name, psList(words))
	}
	b.WriteString("            default { $candidates = @() }\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func psList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return strings.Join(quoted, ", ")
}
