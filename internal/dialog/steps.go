package dialog

// captureField names the ticket slot an inbound answer lands in.
type captureField int

const (
	captureSymptom captureField = iota
	captureError
	captureTried
	captureIssue
	captureDevice
	captureOS
	captureApp
)

// step pairs where the current answer is stored with the next question to ask.
type step struct {
	capture captureField
	prompt  string
}

// flow is one mode's fixed interview: the intro question asked on entry, then
// the ordered steps consuming each answer. The router layers the two special
// finals (triage reclassification, network diagnostic branch) on top.
type flow struct {
	intro string
	steps []step
}

const closingLine = "Noted. Type `summary` to see your ticket so far, or `reset` to start over."

var flows = map[Mode]flow{
	ModeTriage: {
		intro: "Let's narrow this down. In one sentence, what's going wrong?",
		steps: []step{
			{captureIssue, "Thanks. What device are you on (laptop, desktop, phone)?"},
			{captureDevice, "Which operating system and version?"},
			{captureOS, "If you see an exact error message, paste it here. Otherwise describe what happens."},
			{captureError, ""}, // final: reclassify and hand off
		},
	},
	ModeNetwork: {
		intro: "Sounds like a connection problem. Are you on Wi-Fi or Ethernet?",
		steps: []step{
			{captureSymptom, "Does this affect every site and service, or just one?"},
			{captureSymptom, "Run `ping 8.8.8.8` from a terminal and paste the output here."},
			{captureError, ""}, // final: branch on the pasted output
		},
	},
	ModeWindows: {
		intro: "Let's look at the Windows side. Did this start after an update or a new driver?",
		steps: []step{
			{captureSymptom, "Do you get an error code or blue screen text? Paste whatever you see."},
			{captureError, "What have you already tried (restart, sfc /scannow, safe mode)?"},
			{captureTried, closingLine},
		},
	},
	ModeAccount: {
		intro: "Account trouble. Which account or service is this (work login, email, something else)?",
		steps: []step{
			{captureApp, "What exactly do you see when signing in (wrong password, locked out, 2FA prompt)?"},
			{captureError, "Have you tried the password reset flow? What happened when you did?"},
			{captureTried, closingLine},
		},
	},
	ModeApp: {
		intro: "Which application is acting up, and which version if you know it?",
		steps: []step{
			{captureApp, "What happens exactly (crash, freeze, error dialog)? Paste any error text."},
			{captureError, "Have you tried updating or reinstalling it yet?"},
			{captureTried, closingLine},
		},
	},
}

// Intro returns the entry question for a mode. Idle has no flow; entering idle
// happens only via reset, which carries its own reply.
func Intro(m Mode) string {
	return flows[m].intro
}
