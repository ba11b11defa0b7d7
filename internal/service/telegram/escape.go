package telegram

import "strings"

var markdownV1 = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// EscapeMarkdownV1 escapes Telegram Markdown V1 special characters: _ * ` [
// Everything else, angle brackets included, is shown literally in Markdown mode.
func EscapeMarkdownV1(s string) string {
	return markdownV1.Replace(s)
}
