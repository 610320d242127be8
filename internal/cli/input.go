// Package cli runs an interactive loop that shows how kokoa sees a line of text.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/kokoa/internal/utils"
	"github.com/bastiangx/kokoa/pkg/chunk"
	"github.com/bastiangx/kokoa/pkg/config"
	"github.com/bastiangx/kokoa/pkg/jamo"
	"github.com/bastiangx/kokoa/pkg/lexicon"
)

const completePrefix = ":c "

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Width(8)
	knownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	restStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// InputHandler reads lines and prints their chunks, jamo, and tokens.
// A line starting with ":c " lists completions of the rest of the line instead.
type InputHandler struct {
	lex   *lexicon.Lexicon
	cfg   config.CliConfig
	limit int
	in    io.Reader
	out   io.Writer
}

// NewInputHandler creates a handler over lex. limit bounds completion lists.
func NewInputHandler(lex *lexicon.Lexicon, cfg config.CliConfig, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{lex: lex, cfg: cfg, limit: limit, in: in, out: out}
}

// Start runs the loop until the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintf(h.out, "kokoa CLI: %s words loaded\n", utils.FormatWithCommas(h.lex.Len()))
	fmt.Fprintln(h.out, "type a sentence and press Enter, or ':c <prefix>' to complete (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	if prefix, ok := strings.CutPrefix(line, completePrefix); ok {
		h.complete(strings.TrimSpace(prefix))
		return
	}

	start := time.Now()
	tokens := h.lex.Tokenize(line)
	log.Debugf("Took [ %v ] to tokenize %q", utils.FormatDuration(time.Since(start)), line)

	if h.cfg.ShowChunks {
		var parts []string
		for c := range chunk.Segment(line) {
			parts = append(parts, fmt.Sprintf("%s(%s)", c.Text, c.Class))
		}
		h.row("chunks", strings.Join(parts, " "))
	}
	if h.cfg.ShowJamo {
		triples := jamo.DecomposeAll(line)
		parts := make([]string, len(triples))
		for i, t := range triples {
			parts[i] = t.String()
		}
		h.row("jamo", strings.Join(parts, " "))
		h.row("composed", jamo.ComposeAll(triples))
	}

	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if t.Known {
			parts[i] = knownStyle.Render(t.Text)
		} else {
			parts[i] = restStyle.Render(t.Text)
		}
	}
	h.row("tokens", strings.Join(parts, "|"))
}

func (h *InputHandler) complete(prefix string) {
	if prefix == "" {
		log.Warn("Empty prefix")
		return
	}
	entries := h.lex.Complete(prefix, h.limit)
	if len(entries) == 0 {
		fmt.Fprintf(h.out, "No words start with '%s'\n", prefix)
		return
	}
	for i, e := range entries {
		fmt.Fprintf(h.out, "%2d. %-20s (score: %.4f, count: %s)\n",
			i+1, knownStyle.Render(e.Word), e.Score, utils.FormatWithCommas(e.Count))
	}
}

func (h *InputHandler) row(label, value string) {
	fmt.Fprintf(h.out, "%s %s\n", labelStyle.Render(label), value)
}
