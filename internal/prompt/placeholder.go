package prompt

import "strings"

// Role tokens reserved in user-authored text. They are matched as whole
// sequences; substrings like "{{chart}}" are left alone.
const (
	BotToken  = "{{char}}"
	SelfToken = "{{user}}"
)

// Substitute replaces every bot-role token with charName and every
// self-role token with userName in a single left-to-right, non-overlapping
// pass. Replaced text is never rescanned, so tokens appearing inside the
// replacement names do not cascade.
func Substitute(text, charName, userName string) string {
	if text == "" {
		return text
	}
	return strings.NewReplacer(
		BotToken, charName,
		SelfToken, userName,
	).Replace(text)
}
