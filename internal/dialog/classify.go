package dialog

import "strings"

// Category is the coarse issue bucket a conversation gets routed into.
type Category string

const (
	CategoryTriage  Category = "triage"
	CategoryNetwork Category = "network"
	CategoryWindows Category = "windows"
	CategoryAccount Category = "account"
	CategoryApp     Category = "app"
)

// ruleGroup order matters: the first group with a keyword hit wins, so
// "wifi password reset" lands in network, not account.
type ruleGroup struct {
	category Category
	keywords []string
}

var ruleGroups = []ruleGroup{
	{CategoryNetwork, []string{
		"wifi", "wi-fi", "internet", "network", "ethernet", "router",
		"dns", "vpn", "connection", "offline", "ping",
	}},
	{CategoryWindows, []string{
		"windows", "blue screen", "bsod", "boot", "driver",
		"update loop", "0x8", "0x0", "safe mode",
	}},
	{CategoryAccount, []string{
		"password", "login", "log in", "sign in", "sign-in", "account",
		"locked out", "2fa", "mfa", "credential", "authenticator",
	}},
	{CategoryApp, []string{
		"app", "application", "crash", "freeze", "frozen", "install",
		"excel", "outlook", "teams", "word", "browser", "error",
	}},
}

// Classify maps free text plus optional extracted key phrases to a category.
// Matching is substring containment against the lower-cased input, so
// "application for a job" still hits the app group; that false-positive source
// is accepted, not worked around. Total: always returns one of the five
// categories and defaults to triage.
func Classify(text string, keyPhrases []string) Category {
	haystacks := make([]string, 0, 1+len(keyPhrases))
	haystacks = append(haystacks, strings.ToLower(text))
	for _, p := range keyPhrases {
		haystacks = append(haystacks, strings.ToLower(p))
	}

	for _, g := range ruleGroups {
		for _, kw := range g.keywords {
			for _, h := range haystacks {
				if strings.Contains(h, kw) {
					return g.category
				}
			}
		}
	}
	return CategoryTriage
}
