package checkpoint

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxValuePreview bounds how much of each data value the summary shows.
const maxValuePreview = 80

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	artifactStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)
	promptStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle        = lipgloss.NewStyle().Faint(true)
)

// InteractiveEngine reads one discrete choice per checkpoint from an
// injected reader. It works over any reader/writer pair, so it is
// drivable from a terminal, a pipe, or a test.
type InteractiveEngine struct {
	in  *bufio.Reader
	out io.Writer
}

// NewInteractiveEngine creates an interactive engine reading choices from
// in and rendering prompts to out.
func NewInteractiveEngine(in io.Reader, out io.Writer) *InteractiveEngine {
	return &InteractiveEngine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Decide presents the phase summary and maps one line of input to a
// decision. Empty input defaults to Continue. This is a blocking read
// with no timeout.
func (e *InteractiveEngine) Decide(ctx context.Context, req *Request) (*Result, error) {
	e.render(req)

	choice, err := e.readLine()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read checkpoint choice: %w", err)
	}

	switch strings.ToLower(choice) {
	case "", "c", "continue":
		return &Result{Decision: Continue}, nil

	case "r", "retry":
		fmt.Fprintln(e.out, promptStyle.Render("What should change? (free text):"))
		feedback, _ := e.readLine()
		return &Result{
			Decision: Retry,
			Feedback: feedback,
			Modifications: map[string]interface{}{
				"user_feedback": feedback,
				"area":          ClassifyArea(feedback),
				"timestamp":     time.Now().UTC().Format(time.RFC3339),
			},
		}, nil

	case "m", "modify":
		return &Result{Decision: Modify}, nil

	case "a", "abort", "q", "quit":
		fmt.Fprintln(e.out, promptStyle.Render("Reason (optional):"))
		reason, _ := e.readLine()
		return &Result{Decision: Abort, Feedback: reason}, nil

	default:
		fmt.Fprintln(e.out, dimStyle.Render(fmt.Sprintf("unrecognized choice %q, continuing", choice)))
		return &Result{Decision: Continue}, nil
	}
}

func (e *InteractiveEngine) readLine() (string, error) {
	line, err := e.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

func (e *InteractiveEngine) render(req *Request) {
	fmt.Fprintln(e.out)
	fmt.Fprintln(e.out, titleStyle.Render(fmt.Sprintf("=== Checkpoint: %s phase complete ===", title(req.Phase))))

	if len(req.Artifacts) > 0 {
		fmt.Fprintln(e.out, promptStyle.Render("Artifacts:"))
		for _, a := range req.Artifacts {
			fmt.Fprintln(e.out, artifactStyle.Render("  - "+a))
		}
	}

	if len(req.Data) > 0 {
		fmt.Fprintln(e.out, promptStyle.Render("Output:"))
		for _, line := range summarizeData(req.Data) {
			fmt.Fprintln(e.out, "  "+line)
		}
	}

	for _, s := range req.Suggestions {
		fmt.Fprintln(e.out, suggestionStyle.Render("  ! "+s))
	}

	fmt.Fprintln(e.out, promptStyle.Render("[C]ontinue (default) / [R]etry / [M]odify / [A]bort:"))
}

// summarizeData renders a truncated, deterministic view of the phase data.
func summarizeData(data map[string]interface{}) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		v := fmt.Sprintf("%v", data[k])
		// Truncate on a rune boundary so multi-byte values stay valid
		if r := []rune(v); len(r) > maxValuePreview {
			v = string(r[:maxValuePreview]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%s: %s", k, v))
	}
	return lines
}

// title converts a string to title case (first letter of each word capitalized)
func title(s string) string {
	c := cases.Title(language.Und, cases.NoLower)
	return c.String(s)
}
