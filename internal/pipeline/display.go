package pipeline

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/futureCreator/polyhello/internal/executor"
	"github.com/futureCreator/polyhello/internal/lang"
)

// Display renders the four-step demo presentation: code reveal, build & run
// progress, timing report, and final summary. It implements Observer so the
// engine stays ignorant of presentation. Animation cadence is cosmetic and
// carries no correctness contract.
type Display struct {
	w       io.Writer
	animate bool
	delay   time.Duration
	stop    chan struct{}
	done    chan struct{}
}

// NewDisplay creates a display writing to stdout. With animate false the
// output is plain line-per-event text suitable for logs and dumb terminals.
func NewDisplay(animate bool, revealDelay time.Duration) *Display {
	return &Display{w: os.Stdout, animate: animate, delay: revealDelay}
}

// commandColumnWidth is the fixed display width reserved for the command column.
var commandColumnWidth = 44

// ansiEscapeRe matches ANSI terminal escape sequences and C0/DEL control characters.
var ansiEscapeRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|[\x00-\x1f\x7f]`)

// sanitize strips ANSI escape sequences and control characters so captured
// toolchain output cannot corrupt the terminal.
func sanitize(s string) string {
	return ansiEscapeRe.ReplaceAllString(s, "")
}

// truncateCommand sanitizes and truncates a command string to fit within
// commandColumnWidth runes, appending an ellipsis if truncation occurs.
func truncateCommand(cmd string) string {
	cmd = sanitize(cmd)
	if utf8.RuneCountInString(cmd) <= commandColumnWidth {
		return cmd
	}
	runes := []rune(cmd)
	return string(runes[:commandColumnWidth-1]) + "…"
}

func formatCommand(command []string) string {
	if len(command) == 0 {
		return "—"
	}
	return strings.Join(command, " ")
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.3fs", v)
}

// Header prints the demo header.
func (d *Display) Header(workspace string) {
	fmt.Fprintf(d.w, "\n🌍 polyhello — multi-language hello world\n")
	fmt.Fprintf(d.w, "Workspace: %s\n", workspace)
	fmt.Fprintln(d.w, strings.Repeat("─", 76))
}

func (d *Display) stepHeader(n int, title string) {
	fmt.Fprintf(d.w, "\nStep %d • %s\n", n, title)
	fmt.Fprintln(d.w, strings.Repeat("─", 76))
}

// RevealSources is presentation step 1: each language's source is revealed
// line by line with its educational comments.
func (d *Display) RevealSources(specs []*lang.Spec) {
	d.stepHeader(1, "Code Walkthrough ✍️")
	for _, spec := range specs {
		fmt.Fprintf(d.w, "\n%s (%s)\n", spec.Name, spec.Filename)
		for i, line := range spec.Source {
			fmt.Fprintf(d.w, "  %3d │ %s\n", i+1, line)
			if d.animate && d.delay > 0 {
				time.Sleep(d.delay)
			}
		}
	}
	d.stepHeader(2, "Compile & Execute ⚙️🚀")
}

// LanguageStart prints the per-language banner.
func (d *Display) LanguageStart(spec *lang.Spec) {
	banner := fmt.Sprintf(" %s ", spec.Name)
	pad := 60 - len(banner)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(d.w, "\n%s%s%s\n",
		strings.Repeat("─", pad/2), banner, strings.Repeat("─", pad-pad/2))
}

// StageStart prints a stage-in-progress line. In animated mode the line is
// updated in place every second with elapsed time until StageDone overwrites it.
func (d *Display) StageStart(spec *lang.Spec, stage string, command []string) {
	cmd := truncateCommand(formatCommand(command))
	if !d.animate {
		fmt.Fprintf(d.w, "⏳ %-14s %-44s running...\n", stage, cmd)
		return
	}
	// Print without trailing newline so the ticker can overwrite in place.
	fmt.Fprintf(d.w, "⏳ %-14s %-44s running...", stage, cmd)

	stop := make(chan struct{})
	done := make(chan struct{})
	d.stop = stop
	d.done = done
	start := time.Now()

	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fmt.Fprintf(d.w, "\r⏳ %-14s %-44s running... %.0fs",
					stage, cmd, time.Since(start).Seconds())
			}
		}
	}()
}

// stopTicker stops the elapsed time goroutine and waits for it to finish.
func (d *Display) stopTicker() {
	if d.stop != nil {
		close(d.stop)
		<-d.done
		d.stop = nil
		d.done = nil
	}
}

// maxOutputLines is the number of captured output lines shown per stage.
const maxOutputLines = 6

// StageDone prints the stage outcome, overwriting the running line in
// animated mode. Captured output is shown indented: stdout for a successful
// run stage, stderr for any failure.
func (d *Display) StageDone(spec *lang.Spec, stage string, res *executor.Result) {
	d.stopTicker()
	cmd := truncateCommand(formatCommand(res.Command))
	prefix := ""
	if d.animate {
		prefix = "\r"
	}
	if res.Succeeded {
		fmt.Fprintf(d.w, "%s✅ %-14s %-44s %s\n", prefix, stage, cmd, formatSeconds(res.Duration.Seconds()))
		if stage == "run" {
			d.printCaptured("stdout", res.Stdout)
		}
		return
	}
	fmt.Fprintf(d.w, "%s❌ %-14s %-44s %s\n", prefix, stage, cmd, formatSeconds(res.Duration.Seconds()))
	if res.Stderr != "" {
		d.printCaptured("stderr", res.Stderr)
	} else if res.Stdout != "" {
		d.printCaptured("stdout", res.Stdout)
	}
}

// StageSkipped prints a skipped-stage note.
func (d *Display) StageSkipped(spec *lang.Spec, stage, reason string) {
	fmt.Fprintf(d.w, "⛔ %-14s skipped (%s)\n", stage, reason)
}

// LanguageDone completes a language block.
func (d *Display) LanguageDone(rec *Record) {}

func (d *Display) printCaptured(label, text string) {
	text = strings.TrimRight(sanitize(text), "\n")
	if text == "" {
		fmt.Fprintf(d.w, "   │ %s: <empty>\n", label)
		return
	}
	lines := strings.Split(text, "\n")
	shown := lines
	truncated := false
	if len(lines) > maxOutputLines {
		shown = lines[:maxOutputLines]
		truncated = true
	}
	fmt.Fprintf(d.w, "   │ %s:\n", label)
	for _, l := range shown {
		fmt.Fprintf(d.w, "   │   %s\n", l)
	}
	if truncated {
		fmt.Fprintf(d.w, "   │   ... (%d more lines)\n", len(lines)-maxOutputLines)
	}
}

// Report is presentation step 3: the per-language timing table.
func (d *Display) Report(records []*Record) {
	d.stepHeader(3, "Timing Report ⏱")
	fmt.Fprintf(d.w, "%-10s %-8s %-10s %-10s %-10s %-10s %s\n",
		"Language", "Status", "Write", "Compile", "Run", "Total", "Output")
	for _, rec := range records {
		t := rec.Timings()
		status := "✅ ok"
		detail := strings.TrimSpace(rec.Output())
		if rec.Failed {
			status = "❌ fail"
			detail = firstLine(rec.FailureDetail())
		}
		fmt.Fprintf(d.w, "%-10s %-8s %-10s %-10s %-10s %-10s %s\n",
			rec.Spec.Name, status,
			timingCell(t, "write"),
			compileCell(rec, t),
			timingCell(t, "run"),
			formatSeconds(t["total"]),
			firstLine(detail))
	}
}

// Summary is presentation step 4: success count and total wall-clock time.
func (d *Display) Summary(records []*Record, elapsed time.Duration) {
	d.stepHeader(4, "Done 🏁")
	succeeded := 0
	for _, rec := range records {
		if !rec.Failed {
			succeeded++
		}
	}
	fmt.Fprintf(d.w, "✅ %d/%d languages succeeded  %.1fs total\n\n", succeeded, len(records), elapsed.Seconds())
}

func timingCell(t map[string]float64, key string) string {
	v, ok := t[key]
	if !ok {
		return "—"
	}
	return formatSeconds(v)
}

// compileCell sums the attempted compile steps; absent entirely means the
// compile stage never ran (or the language is interpreted).
func compileCell(rec *Record, t map[string]float64) string {
	if len(rec.Compile) == 0 {
		if rec.Spec.Interpreted() && rec.Write != nil && rec.Write.Succeeded {
			return "n/a"
		}
		return "—"
	}
	sum := 0.0
	for i := range rec.Compile {
		sum += t[fmt.Sprintf("compile_%d", i+1)]
	}
	return formatSeconds(sum)
}

func firstLine(s string) string {
	s = strings.TrimSpace(sanitize(s))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
