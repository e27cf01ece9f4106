package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/bretwardjames/ghp-sub001/internal/hooks"
)

// outputPreviewLines caps how much hook output the short prompt shows.
const outputPreviewLines = 10

// terminalPrompter asks the operator what to do about a failed interactive
// hook. Off a terminal it degrades to the non-interactive prompter, which
// treats the failure as blocking.
type terminalPrompter struct {
	in  *bufio.Reader
	tty bool
}

func newTerminalPrompter() hooks.Prompter {
	return &terminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		tty: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

func (p *terminalPrompter) Confirm(hook hooks.Hook, result hooks.Result, fullOutput bool) hooks.Decision {
	if !p.tty {
		return hooks.NonInteractivePrompter{}.Confirm(hook, result, fullOutput)
	}

	fmt.Fprintf(os.Stderr, "\nhook %s failed: %s\n", hook.Label(), result.Error)
	fmt.Fprintln(os.Stderr, preview(result.Output, fullOutput))
	if hook.ContinuePrompt != "" {
		fmt.Fprintln(os.Stderr, hook.ContinuePrompt)
	}
	fmt.Fprint(os.Stderr, "[c]ontinue, [a]bort, [s]how full output? ")

	line, err := p.in.ReadString('\n')
	if err != nil {
		return hooks.DecisionAbort
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "c", "continue":
		return hooks.DecisionContinue
	case "s", "show":
		return hooks.DecisionShowMore
	default:
		return hooks.DecisionAbort
	}
}

func preview(output string, full bool) string {
	output = strings.TrimRight(output, "\n")
	if full {
		return output
	}
	lines := strings.Split(output, "\n")
	if len(lines) <= outputPreviewLines {
		return output
	}
	head := lines[:outputPreviewLines]
	return strings.Join(head, "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-outputPreviewLines)
}
