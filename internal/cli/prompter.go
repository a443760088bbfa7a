package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
	"github.com/schollz/progressbar/v3"
)

// ErrInputTerminated is returned when input ends before an answer is given.
var ErrInputTerminated = errors.New("input terminated")

// Prompter asks confirmation questions and reports the progress of a run
// of assignments.
type Prompter struct {
	startTime   time.Time
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
	stats       service.AssignStats
	total       int
	statsMutex  sync.RWMutex
}

// NewPrompter creates a prompter reading answers from reader.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader:    NewNonBlockingReader(reader),
		writer:    writer,
		startTime: time.Now(),
	}
}

// Confirm asks prompt and returns whether the user answered yes. An empty
// answer means no.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	choice, err := p.promptChoice(ctx, prompt+" [y/N]", []string{"y", "yes", "n", "no", ""})
	if err != nil {
		return false, err
	}
	return choice == "y" || choice == "yes", nil
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrInputTerminated
			}
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Invalid choice. Please try again.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// StartProgress shows a progress bar for total assignments.
func (p *Prompter) StartProgress(total int) {
	p.statsMutex.Lock()
	p.total = total
	p.statsMutex.Unlock()

	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Assigning categories...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Skip counts a suggestion that was not submitted.
func (p *Prompter) Skip() {
	p.statsMutex.Lock()
	p.stats.Skipped++
	p.statsMutex.Unlock()
	p.advance()
}

// Record counts the outcome of one submitted assignment.
func (p *Prompter) Record(outcome categorize.Outcome) {
	p.statsMutex.Lock()
	p.stats.Attempted++
	switch outcome.Kind {
	case categorize.OutcomeSuccess:
		p.stats.Succeeded++
		p.stats.Updated += outcome.Updated
	case categorize.OutcomeFailure:
		p.stats.Failed++
	}
	p.statsMutex.Unlock()
	p.advance()
}

func (p *Prompter) advance() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Stats returns the counters of the run so far.
func (p *Prompter) Stats() service.AssignStats {
	p.statsMutex.RLock()
	defer p.statsMutex.RUnlock()
	return p.stats
}

// Progress describes how many assignments were handled.
func (p *Prompter) Progress() string {
	p.statsMutex.RLock()
	defer p.statsMutex.RUnlock()
	return fmt.Sprintf("%d of %d suggestions handled", p.stats.Attempted+p.stats.Skipped, p.total)
}

// ShowCompletion prints the summary of the run.
func (p *Prompter) ShowCompletion() {
	if p.progressBar != nil {
		if err := p.progressBar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
		if _, err := fmt.Fprintln(p.writer); err != nil {
			slog.Warn("Failed to write newline", "error", err)
		}
	}

	stats := p.Stats()
	summary := fmt.Sprintf("  • Suggestions submitted: %d\n", stats.Attempted) +
		fmt.Sprintf("  • Succeeded: %d\n", stats.Succeeded) +
		fmt.Sprintf("  • Nothing to update: %d\n", stats.Attempted-stats.Succeeded-stats.Failed) +
		fmt.Sprintf("  • Failed: %d\n", stats.Failed) +
		fmt.Sprintf("  • Skipped: %d\n", stats.Skipped) +
		fmt.Sprintf("  • Transactions updated: %d\n", stats.Updated) +
		fmt.Sprintf("  • Time taken: %s", time.Since(p.startTime).Round(time.Second))

	if _, err := fmt.Fprintln(p.writer, RenderBox("Assignment complete", summary)); err != nil {
		slog.Warn("Failed to write completion box", "error", err)
	}
}
