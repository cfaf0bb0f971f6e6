package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"github.com/abaad/hive/models"
	"github.com/abaad/hive/store"
)

// noBellStdout suppresses the terminal bell promptui rings on every
// filter keystroke.
type noBellStdout struct{}

func (n *noBellStdout) Write(p []byte) (int, error) {
	if len(p) == 1 && p[0] == readline.CharBell {
		return len(p), nil
	}
	return readline.Stdout.Write(p)
}

func (n *noBellStdout) Close() error {
	return readline.Stdout.Close()
}

// NoBellStdout is the promptui Stdout used by all interactive prompts.
var NoBellStdout = &noBellStdout{}

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// selectSpoolInteractively shows a selectable list of claimable spools
// and returns the chosen one. Spools matching colorHint are listed
// first. If the user cancels the prompt (Esc or Ctrl+C), canceled is true.
func selectSpoolInteractively(s *store.Store, colorHint string) (models.FilamentSpool, bool, error) {
	all := s.ActiveSpools()
	if len(all) == 0 {
		return models.FilamentSpool{}, false, fmt.Errorf("no spools available to select from")
	}

	// Order candidates: color matches first (fullest first, as
	// SpoolsByColor returns them), then the rest.
	seen := map[string]struct{}{}
	candidates := make([]models.FilamentSpool, 0, len(all))
	if strings.TrimSpace(colorHint) != "" {
		for _, sp := range s.SpoolsByColor(colorHint) {
			if _, ok := seen[sp.ID]; !ok {
				candidates = append(candidates, sp)
				seen[sp.ID] = struct{}{}
			}
		}
	}
	for _, sp := range all {
		if _, ok := seen[sp.ID]; !ok {
			candidates = append(candidates, sp)
			seen[sp.ID] = struct{}{}
		}
	}

	items := make([]string, len(candidates))
	for i, sp := range candidates {
		items[i] = fmt.Sprintf("%s  %s available  (%s)", sp.DisplayName(), FormatGrams(sp.AvailableWeightGrams()), sp.ID)
	}

	searcher := func(input string, index int) bool {
		sp := candidates[index]
		needle := strings.ToLower(strings.TrimSpace(input))
		if needle == "" {
			return true
		}
		fields := []string{sp.ID, sp.Name, sp.Brand, sp.FilamentType, sp.Color}
		joined := strings.ToLower(strings.Join(fields, " "))
		return strings.Contains(joined, needle)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✔ {{ . | green }}",
	}

	label := "Select a spool to draw from (type to filter; Esc to cancel)"
	if strings.TrimSpace(colorHint) != "" {
		label = fmt.Sprintf("Select a spool for %s filament (type to filter; Esc to cancel)", colorHint)
	}

	prompt := promptui.Select{
		Label:             label,
		Items:             items,
		Templates:         templates,
		Size:              12,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            NoBellStdout,
	}

	idx, _, perr := prompt.Run()
	if perr != nil {
		if perr == promptui.ErrInterrupt || perr == promptui.ErrAbort {
			return models.FilamentSpool{}, true, nil
		}
		// Fall back to simple selector on unexpected prompt errors
		return selectSpoolSimple(candidates)
	}

	return candidates[idx], false, nil
}

// selectSpoolSimple provides a numbered list over basic stdin without cursor
// control. User types a number or presses Enter to cancel.
func selectSpoolSimple(candidates []models.FilamentSpool) (models.FilamentSpool, bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Multiple spools available; please choose one:")
	for i, sp := range candidates {
		fmt.Printf("%2d) %s  %s available\n", i+1, sp.DisplayName(), FormatGrams(sp.AvailableWeightGrams()))
	}
	fmt.Print("Enter number to select, or press Enter to cancel: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return models.FilamentSpool{}, true, nil
	}
	for idx := range candidates {
		if line == fmt.Sprintf("%d", idx+1) {
			return candidates[idx], false, nil
		}
	}
	// Try direct spool ID entry
	for _, sp := range candidates {
		if line == sp.ID {
			return sp, false, nil
		}
	}
	return models.FilamentSpool{}, true, fmt.Errorf("invalid selection: %q", line)
}
