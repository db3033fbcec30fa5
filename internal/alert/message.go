package alert

import "fmt"

// MessagePrefix открывает каждое сообщение в чате
const MessagePrefix = "🚨"

// FormatMessage собирает текст сообщения в разметке Markdown:
// summary жирным в первой строке, description во второй.
func FormatMessage(a Alert) string {
	return fmt.Sprintf("%s *%s*\n%s", MessagePrefix, a.Annotations.Summary, a.Annotations.Description)
}
