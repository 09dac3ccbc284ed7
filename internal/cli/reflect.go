package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
)

// DefaultReflectionSeconds is the length of the pre-purchase pause.
const DefaultReflectionSeconds = 10

// ReflectionPause runs a countdown before order confirmation, giving
// the shopper a moment to reconsider flagged items. It returns early
// if the context is canceled.
func ReflectionPause(ctx context.Context, writer io.Writer, seconds int) error {
	if seconds <= 0 {
		seconds = DefaultReflectionSeconds
	}

	if _, err := fmt.Fprintln(writer, TitleStyle.Render(TimerIcon+" Take a Moment to Reflect")); err != nil {
		return fmt.Errorf("failed to write reflection header: %w", err)
	}

	bar := progressbar.NewOptions(seconds,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reflecting...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after reflection bar", "error", err)
			}
		}),
	)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for i := 0; i < seconds; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update reflection bar", "error", err)
			}
		}
	}

	if _, err := fmt.Fprintln(writer, FormatSuccess("Reflection complete! You're ready to decide.")); err != nil {
		return fmt.Errorf("failed to write reflection footer: %w", err)
	}
	return nil
}
