package dialog

import (
	"strings"
	"testing"
)

func TestSetIssueOnce(t *testing.T) {
	tk := NewTicket()

	tk.SetIssueOnce("first description", 280)
	tk.SetIssueOnce("second description", 280)
	if tk.Issue != "first description" {
		t.Fatalf("issue overwritten: %q", tk.Issue)
	}

	tk2 := NewTicket()
	tk2.SetIssueOnce("   ", 280)
	if tk2.Issue != "" {
		t.Fatalf("blank text should not set issue, got %q", tk2.Issue)
	}
}

func TestSetIssueOnce_Truncates(t *testing.T) {
	tk := NewTicket()
	tk.SetIssueOnce(strings.Repeat("x", 500), 280)
	if len(tk.Issue) != 280 {
		t.Fatalf("expected issue truncated to 280, got %d", len(tk.Issue))
	}
}

func TestAppendDedup(t *testing.T) {
	tk := NewTicket()
	tk.AddSymptom("wifi dropping")
	tk.AddSymptom("wifi dropping")
	tk.AddSymptom("slow downloads")
	if len(tk.Symptoms) != 2 {
		t.Fatalf("expected 2 symptoms, got %v", tk.Symptoms)
	}

	tk.AddError("Error 0x80070057")
	tk.AddError("Error 0x80070057")
	if len(tk.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", tk.Errors)
	}
}

func TestSummarize_EmptyTicket(t *testing.T) {
	out := Summarize(NewTicket())

	for _, want := range []string{"(not set)", "(unknown)", "(n/a)", "Urgency: normal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	for _, absent := range []string{"Symptoms:", "Errors:", "Tried:"} {
		if strings.Contains(out, absent) {
			t.Fatalf("summary should omit empty list line %q:\n%s", absent, out)
		}
	}
}

func TestSummarize_PipeJoinsLists(t *testing.T) {
	tk := NewTicket()
	tk.SetIssueOnce("wifi drops", 280)
	tk.AddSymptom("drops hourly")
	tk.AddSymptom("slow uploads")
	tk.AddWhatTried("restarted router")

	out := Summarize(tk)
	if !strings.Contains(out, "Issue:   wifi drops") {
		t.Fatalf("summary missing issue:\n%s", out)
	}
	if !strings.Contains(out, "Symptoms: drops hourly | slow uploads") {
		t.Fatalf("symptoms not pipe-joined:\n%s", out)
	}
	if !strings.Contains(out, "Tried: restarted router") {
		t.Fatalf("summary missing tried line:\n%s", out)
	}
	if strings.Contains(out, "Errors:") {
		t.Fatalf("summary should omit empty errors line:\n%s", out)
	}
}
