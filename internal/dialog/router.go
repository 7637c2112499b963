package dialog

import (
	"context"
	"log"
	"strings"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/analyze"
)

const defaultIssueMaxLen = 280

// Router drives one conversation turn at a time: commands first, then the
// mode/step state machine over the session's ticket. It always produces a
// reply; analyzer failures degrade to neutral results instead of aborting
// the turn.
type Router struct {
	store       *Store
	analyzer    analyze.Analyzer
	issueMaxLen int
}

func NewRouter(store *Store, analyzer analyze.Analyzer, issueMaxLen int) *Router {
	if issueMaxLen <= 0 {
		issueMaxLen = defaultIssueMaxLen
	}
	return &Router{store: store, analyzer: analyzer, issueMaxLen: issueMaxLen}
}

const helpText = "I can walk you through common IT problems. Commands:\n" +
	"  help    - this message\n" +
	"  start   - begin a guided triage interview\n" +
	"  summary - show the ticket built so far\n" +
	"  reset   - clear the ticket and start over\n" +
	"  mode network|windows|account|app|triage - jump straight to a flow\n" +
	"Or just describe your problem in your own words."

// Handle processes one inbound message for the given conversation and returns
// the reply text. It mutates exactly one session and never fails.
func (r *Router) Handle(ctx context.Context, conversationID, text string) string {
	sess := r.store.GetOrCreate(conversationID)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "I didn't catch any text there - tell me what's going on."
	}

	if reply, handled := r.handleCommand(sess, trimmed); handled {
		return reply
	}

	switch sess.Mode {
	case ModeIdle:
		return r.handleIdle(ctx, sess, trimmed)
	default:
		return r.handleStep(sess, trimmed)
	}
}

// Ticket returns the summary of the conversation's ticket so far.
func (r *Router) Ticket(conversationID string) string {
	sess := r.store.GetOrCreate(conversationID)
	return Summarize(sess.Ticket)
}

// handleCommand intercepts the five commands before any state-dependent
// logic. help and summary leave the session untouched.
func (r *Router) handleCommand(sess *Session, text string) (string, bool) {
	lower := strings.ToLower(text)

	switch lower {
	case "help":
		return helpText, true
	case "summary":
		return Summarize(sess.Ticket), true
	case "reset":
		r.store.Reset(sess)
		return "All cleared. Describe your issue whenever you're ready.", true
	case "start":
		sess.Mode = ModeTriage
		sess.Step = 0
		return Intro(ModeTriage), true
	}

	if name, ok := strings.CutPrefix(lower, "mode "); ok {
		switch m := Mode(strings.TrimSpace(name)); m {
		case ModeNetwork, ModeWindows, ModeAccount, ModeApp, ModeTriage:
			sess.Mode = m
			sess.Step = 0
			return Intro(m), true
		default:
			return "I don't know that mode. Try: network, windows, account, app or triage.", true
		}
	}

	return "", false
}

// handleIdle classifies a fresh problem description and enters its flow.
func (r *Router) handleIdle(ctx context.Context, sess *Session, text string) string {
	res := r.analyzeOrNeutral(ctx, text)

	cat := Classify(text, res.KeyPhrases)
	sess.Mode = ModeFor(cat)
	sess.Step = 0

	sess.Ticket.SetIssueOnce(text, r.issueMaxLen)
	for _, p := range res.KeyPhrases {
		sess.Ticket.AddSymptom(p)
	}

	var b strings.Builder
	b.WriteString(toneAck(res.SentimentLabel()))
	if len(res.PIIEntities) > 0 {
		b.WriteString(" Careful: avoid sharing sensitive details like card numbers or passwords here.")
	}
	b.WriteString("\n")
	b.WriteString(Intro(sess.Mode))
	return b.String()
}

// handleStep consumes one answer inside an active flow.
func (r *Router) handleStep(sess *Session, text string) string {
	fl, ok := flows[sess.Mode]
	if !ok {
		// Unknown mode should not happen; recover to idle rather than loop.
		r.store.Reset(sess)
		return helpText
	}

	// Exhausted flow: keep soaking up free text and nudge toward summary.
	if sess.Step >= len(fl.steps) {
		sess.Ticket.AddError(text)
		return "Added that to the ticket. " + closingLine
	}

	st := fl.steps[sess.Step]
	r.capture(sess.Ticket, st.capture, text)

	last := sess.Step == len(fl.steps)-1
	switch {
	case sess.Mode == ModeTriage && last:
		// Re-classify over everything we know and hand off to that flow.
		cat := Classify(sess.Ticket.Issue+" "+text, nil)
		sess.Mode = ModeFor(cat)
		sess.Step = 0
		return "Thanks, that helps. " + Intro(sess.Mode)
	case sess.Mode == ModeNetwork && last:
		sess.Step++
		return diagnoseNetworkOutput(text)
	default:
		sess.Step++
		return st.prompt
	}
}

func (r *Router) capture(t *Ticket, f captureField, text string) {
	switch f {
	case captureIssue:
		t.SetIssueOnce(text, r.issueMaxLen)
	case captureDevice:
		t.Device = text
	case captureOS:
		t.OS = text
	case captureApp:
		t.App = text
	case captureSymptom:
		t.AddSymptom(text)
	case captureError:
		t.AddError(text)
	case captureTried:
		t.AddWhatTried(text)
	}
}

// analyzeOrNeutral wraps the gateway call with the degrade-and-continue
// policy: any failure becomes a neutral, empty result and the turn goes on.
func (r *Router) analyzeOrNeutral(ctx context.Context, text string) analyze.Result {
	if r.analyzer == nil {
		return analyze.Result{}
	}
	res, err := r.analyzer.Analyze(ctx, text)
	if err != nil {
		log.Printf("analyze failed, continuing with neutral result: %v", err)
		return analyze.Result{}
	}
	return res
}

func toneAck(sentiment string) string {
	switch sentiment {
	case "negative":
		return "Sorry you're dealing with that - let's get it fixed."
	case "positive":
		return "Glad to hear from you!"
	default:
		return "Got it."
	}
}

// diagnoseNetworkOutput branches the final network reply on the pasted
// command output.
func diagnoseNetworkOutput(output string) string {
	lower := strings.ToLower(output)

	switch {
	case strings.Contains(lower, "timed out") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "unreachable") ||
		strings.Contains(lower, "100% loss") ||
		strings.Contains(lower, "100% packet loss"):
		return "That looks like a connectivity drop. Restart your router, re-join the network, " +
			"and check the cable if you're wired. " + closingLine
	case strings.Contains(lower, "could not find host") ||
		strings.Contains(lower, "unknown host") ||
		strings.Contains(lower, "name or service not known") ||
		strings.Contains(lower, "name resolution") ||
		strings.Contains(lower, "dns"):
		return "That looks like a DNS problem. Try switching your DNS server to 8.8.8.8 or 1.1.1.1 " +
			"and flush the cache (`ipconfig /flushdns` on Windows). " + closingLine
	default:
		return "Thanks. Does the problem persist after restarting your router?"
	}
}
