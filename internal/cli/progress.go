package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/terminalchat/terminalchat/internal/sizex"
)

const progressBarWidth = 30

// renderProgress formats a transfer progress line:
//
//	[##########----------] 50.0% 2.50 MB / 5.00 MB
func renderProgress(copied, total int64) string {
	var ratio float64
	if total > 0 {
		ratio = float64(copied) / float64(total)
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * progressBarWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)

	return fmt.Sprintf("[%s] %5.1f%% %s / %s",
		bar, ratio*100, sizex.FormatSize(copied), sizex.FormatSize(total))
}

// progressPrinter redraws a single progress line in place.
func progressPrinter(w io.Writer) func(copied, total int64) {
	return func(copied, total int64) {
		fmt.Fprintf(w, "\r%s", renderProgress(copied, total))
	}
}
