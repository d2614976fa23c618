package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/creastat/assistant"
	"github.com/creastat/assistant/render"
	"github.com/creastat/assistant/session"
)

// chatSession is the part of the controller the terminal drives.
type chatSession interface {
	Init(ctx context.Context) error
	Snapshot() session.State
	ChooseLanguage(ctx context.Context, lang assistant.Language) bool
	Submit(ctx context.Context, text string) bool
	PickSuggestion(ctx context.Context, suggestion string) bool
	ToggleTopic(topic assistant.Topic) bool
	ClearTopic()
	DismissWarning()
	Reset(ctx context.Context) error
}

type styles struct {
	assistant lipgloss.Style
	warning   lipgloss.Style
	dim       lipgloss.Style
	prompt    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		assistant: r.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		warning:   r.NewStyle().Foreground(lipgloss.Color("214")),
		dim:       r.NewStyle().Foreground(lipgloss.Color("#888888")),
		prompt:    r.NewStyle().Bold(true),
	}
}

const helpText = `Commands:
  /lang it|en     choose the response language
  /topic [id]     list topics, or toggle a topic filter for the next question
  /skip           clear the topic filter
  /new            start a new chat
  /dismiss        hide the connectivity warning
  <number>        ask a suggested question
  /quit           leave`

// repl runs a line-based chat session. It prints only what changed since the
// previous command.
type repl struct {
	session chatSession
	in      io.Reader
	out     io.Writer
	html    bool
	styles  styles

	seen            map[string]bool
	lastSuggestions []string
	lastWarning     string
	lastPhase       session.Phase
}

func newREPL(s chatSession, in io.Reader, out io.Writer, html bool) *repl {
	return &repl{
		session:   s,
		in:        in,
		out:       out,
		html:      html,
		styles:    newStyles(out),
		seen:      make(map[string]bool),
		lastPhase: session.PhaseInitializing,
	}
}

func (r *repl) run(ctx context.Context) error {
	if err := r.session.Init(ctx); err != nil {
		return err
	}
	r.printState()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		r.printf("%s ", r.styles.prompt.Render(">"))
		select {
		case <-ctx.Done():
			r.printf("\n")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if r.handle(ctx, strings.TrimSpace(line)) {
				return nil
			}
			r.printState()
		}
	}
}

// handle executes one input line and reports whether the session should end.
func (r *repl) handle(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "":
		return false
	case "/quit", "/exit":
		return true
	case "/help":
		r.printf("%s\n", helpText)
	case "/new":
		if err := r.session.Reset(ctx); err != nil {
			log.Error().Err(err).Msg("failed to reset chat")
		}
	case "/skip":
		r.session.ClearTopic()
	case "/dismiss":
		r.session.DismissWarning()
	case "/lang":
		lang, ok := assistant.ParseLanguage(arg)
		if !ok || !r.session.ChooseLanguage(ctx, lang) {
			r.notice("language %q is not available now", arg)
		}
	case "/topic":
		r.topic(arg)
	default:
		if strings.HasPrefix(command, "/") {
			r.notice("unknown command %s, try /help", command)
			return false
		}
		r.ask(ctx, line)
	}
	return false
}

func (r *repl) topic(arg string) {
	st := r.session.Snapshot()
	lang := st.EffectiveLanguage()
	if arg == "" {
		r.printf("%s\n", r.styles.dim.Render(render.UI(lang).TopicPrompt))
		for _, t := range assistant.Topics() {
			marker := " "
			if t == st.Topic {
				marker = "*"
			}
			r.printf(" %s %-13s %s\n", marker, t, render.TopicLabel(t, lang))
		}
		return
	}

	t, ok := assistant.ParseTopic(arg)
	if !ok || !r.session.ToggleTopic(t) {
		r.notice("topic %q cannot be selected now", arg)
	}
}

func (r *repl) ask(ctx context.Context, line string) {
	st := r.session.Snapshot()
	if st.AwaitingLanguage() {
		r.notice("choose a language first: /lang it or /lang en")
		return
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(st.Suggestions) {
			r.notice("no suggestion %d", n)
			return
		}
		r.session.PickSuggestion(ctx, st.Suggestions[n-1])
		return
	}

	if !r.session.Submit(ctx, line) {
		r.notice("message not sent")
	}
}

func (r *repl) printState() {
	st := r.session.Snapshot()
	lang := st.EffectiveLanguage()
	ui := render.UI(lang)

	printed := false
	for _, m := range st.Messages {
		if r.seen[m.ID] {
			continue
		}
		r.seen[m.ID] = true
		if m.Sender == assistant.SenderAssistant {
			r.printMessage(m, lang)
			printed = true
		}
	}

	if st.Warning != "" && st.Warning != r.lastWarning {
		r.printf("%s\n", r.styles.warning.Render("⚠ "+st.Warning))
	}
	r.lastWarning = st.Warning

	if st.AwaitingLanguage() && r.lastPhase != session.PhaseAwaitingLanguage {
		r.printf("%s\n%s\n", render.LanguagePrompt, r.styles.dim.Render(render.LanguageHint))
		for _, l := range st.SupportedLanguages {
			r.printf("  /lang %s\n", l)
		}
	}
	r.lastPhase = st.Phase

	if len(st.Suggestions) > 0 && (printed || !slices.Equal(st.Suggestions, r.lastSuggestions)) {
		r.printf("%s\n", r.styles.dim.Render(ui.Suggestions))
		for i, s := range st.Suggestions {
			r.printf("  %d. %s\n", i+1, s)
		}
	}
	r.lastSuggestions = st.Suggestions

	if st.Topic != "" {
		r.printf("%s\n", r.styles.dim.Render("["+render.TopicLabel(st.Topic, lang)+"] /skip"))
	}
}

func (r *repl) printMessage(m assistant.ConversationMessage, lang assistant.Language) {
	ui := render.UI(lang)

	body := m.Content
	if r.html {
		if formatted, err := render.FormatMessage(m.Content); err == nil {
			body = formatted
		} else {
			log.Warn().Err(err).Str("message_id", m.ID).Msg("failed to format message")
		}
	}
	r.printf("%s %s\n", r.styles.assistant.Render("ULSS 9:"), strings.TrimRight(body, "\n"))

	if len(m.Topics) > 0 {
		labels := make([]string, 0, len(m.Topics))
		for _, t := range m.Topics {
			labels = append(labels, render.TopicLabel(t, lang))
		}
		r.printf("%s\n", r.styles.dim.Render("  ["+strings.Join(labels, ", ")+"]"))
	}

	if len(m.Links) > 0 {
		r.printf("%s\n", r.styles.dim.Render("  "+ui.Links))
		for _, l := range m.Links {
			if l.Navigable() {
				r.printf("    • %s <%s>\n", l.Title, l.URL)
			} else {
				r.printf("    📄 %s\n", l.Title)
			}
		}
	}

	if len(m.Citations) > 0 {
		r.printf("%s\n", r.styles.dim.Render(fmt.Sprintf("  %s (%d)", ui.Sources, len(m.Citations))))
		for i, c := range render.VisibleCitations(m.Citations) {
			r.printf("    - %s\n", render.CitationLabel(c, i, lang))
		}
	}
}

func (r *repl) notice(format string, args ...any) {
	r.printf("%s\n", r.styles.dim.Render(fmt.Sprintf(format, args...)))
}

func (r *repl) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
