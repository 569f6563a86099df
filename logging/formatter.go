package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

var (
	componentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE072")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A97F"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ED8796")).Bold(true)
)

// TextFormatter renders entries as a single human-readable line:
//
//	2024-05-01 10:00:00 [INFO] [registry] indexed extensions count=3
type TextFormatter struct {
	Config FormatConfig
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05 "))
	}
	b.WriteString(levelBadge(entry.Level))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(&b, " [%s]", componentStyle.Render(fmt.Sprint(component)))
	}

	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]",
			filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%s", key, fieldValue(entry.Data[key]))
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelBadge(level logrus.Level) string {
	name := level.String()
	if level == logrus.WarnLevel {
		name = "warn"
	}
	badge := "[" + strings.ToUpper(name) + "]"

	switch {
	case level <= logrus.ErrorLevel:
		return errorStyle.Render(badge)
	case level == logrus.WarnLevel:
		return warnStyle.Render(badge)
	default:
		return badge
	}
}

// fieldValue quotes values containing whitespace so that paths with spaces
// stay readable as one field.
func fieldValue(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\n") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
