package dialog

import "strings"

// Ticket is the structured record a session accumulates about the reported
// problem. Fields only ever grow within a session; the sole way back to an
// empty ticket is an explicit reset.
type Ticket struct {
	Issue  string
	Device string
	OS     string
	App    string

	Symptoms  []string
	Errors    []string
	WhatTried []string

	// Urgency has no mutating path yet; every ticket reports "normal".
	Urgency string
}

func NewTicket() *Ticket {
	return &Ticket{Urgency: "normal"}
}

// SetIssueOnce captures the first non-empty issue description and ignores
// later candidates. The text is truncated so a pasted log dump cannot become
// the headline.
func (t *Ticket) SetIssueOnce(text string, maxLen int) {
	if t.Issue != "" {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen]
	}
	t.Issue = text
}

// appendUnique appends s unless the exact string is already present.
func appendUnique(list []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return list
	}
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

func (t *Ticket) AddSymptom(s string)   { t.Symptoms = appendUnique(t.Symptoms, s) }
func (t *Ticket) AddError(s string)     { t.Errors = appendUnique(t.Errors, s) }
func (t *Ticket) AddWhatTried(s string) { t.WhatTried = appendUnique(t.WhatTried, s) }

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// Summarize renders the ticket as a fixed-layout text block. It never fails,
// including on a freshly-defaulted ticket: empty single-value fields fall back
// to placeholders and empty list lines are omitted entirely.
func Summarize(t *Ticket) string {
	var b strings.Builder
	b.WriteString("===== Support Ticket =====\n")
	b.WriteString("Issue:   " + orPlaceholder(t.Issue, "(not set)") + "\n")
	b.WriteString("Device:  " + orPlaceholder(t.Device, "(unknown)") + "\n")
	b.WriteString("OS:      " + orPlaceholder(t.OS, "(unknown)") + "\n")
	b.WriteString("App:     " + orPlaceholder(t.App, "(n/a)") + "\n")
	b.WriteString("Urgency: " + orPlaceholder(t.Urgency, "normal") + "\n")
	if len(t.Symptoms) > 0 {
		b.WriteString("Symptoms: " + strings.Join(t.Symptoms, " | ") + "\n")
	}
	if len(t.Errors) > 0 {
		b.WriteString("Errors: " + strings.Join(t.Errors, " | ") + "\n")
	}
	if len(t.WhatTried) > 0 {
		b.WriteString("Tried: " + strings.Join(t.WhatTried, " | ") + "\n")
	}
	b.WriteString("==========================")
	return b.String()
}
