package shell

import (
	"fmt"
	"io"
	"sort"
)

// Scripts evaluated by the user's shell. Each installs a prompt hook that
// exports MOODCTL_* variables from `moodctl status --env` and a
// moodctl_prompt_info helper for use inside PS1.
var initScripts = map[string]string{
	"bash": `# moodctl shell integration
__moodctl_prompt_hook() {
  eval "$(command moodctl status --env 2>/dev/null)"
}

moodctl_prompt_info() {
  command moodctl status 2>/dev/null
}

if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__moodctl_prompt_hook"
else
  PROMPT_COMMAND="__moodctl_prompt_hook;${PROMPT_COMMAND}"
fi

eval "$(command moodctl completion bash 2>/dev/null)"
`,
	"zsh": `# moodctl shell integration
__moodctl_prompt_hook() {
  eval "$(command moodctl status --env 2>/dev/null)"
}

moodctl_prompt_info() {
  command moodctl status 2>/dev/null
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd __moodctl_prompt_hook

eval "$(command moodctl completion zsh 2>/dev/null)"
`,
	"fish": `# moodctl shell integration
function __moodctl_prompt_hook --on-event fish_prompt
  command moodctl status --env --shell fish 2>/dev/null | source
end

function moodctl_prompt_info
  command moodctl status 2>/dev/null
end

command moodctl completion fish 2>/dev/null | source
`,
}

// Shells lists the shells WriteInit supports.
func Shells() []string {
	names := make([]string, 0, len(initScripts))
	for name := range initScripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteInit writes the integration script for shell to w.
func WriteInit(w io.Writer, shell string) error {
	script, ok := initScripts[shell]
	if !ok {
		return fmt.Errorf("unsupported shell %q (supported: %v)", shell, Shells())
	}
	_, err := io.WriteString(w, script)
	return err
}

// WriteEnv writes variable assignments for the prompt hook in the syntax of
// shell. Unknown shells get POSIX export lines.
func WriteEnv(w io.Writer, shell string, vars [][2]string) error {
	for _, kv := range vars {
		var err error
		if shell == "fish" {
			_, err = fmt.Fprintf(w, "set -gx %s %q\n", kv[0], kv[1])
		} else {
			_, err = fmt.Fprintf(w, "export %s=%q\n", kv[0], kv[1])
		}
		if err != nil {
			return err
		}
	}
	return nil
}
