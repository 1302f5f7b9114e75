package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatIncome formats an amount as Brazilian reais, e.g. "R$ 1.234,50"
func FormatIncome(amount float64) string {
	return brPrinter.Sprintf("R$ %.2f", amount)
}

// FormatNumber formats an integer with pt-BR digit grouping
func FormatNumber(n int) string {
	return brPrinter.Sprintf("%d", n)
}

// FormatDependents renders a dependents count in Portuguese
func FormatDependents(n int) string {
	if n == 1 {
		return "1 dependente"
	}
	return fmt.Sprintf("%d dependentes", n)
}

// FormatResultCount renders the size of the derived view
func FormatResultCount(shown, total int) string {
	if shown == 1 {
		return fmt.Sprintf("1 resultado de %s", FormatNumber(total))
	}
	return fmt.Sprintf("%s resultados de %s", FormatNumber(shown), FormatNumber(total))
}

// FormatBytes renders a byte count with pt-BR decimals, e.g. "3,9 KB"
func FormatBytes(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return brPrinter.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return brPrinter.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}

// FormatTimestamp formats a time the way exports and prints display it
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

// TruncateString truncates a string to a maximum rune length with ellipsis
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}

// FormatConfirmationText formats confirmation prompts
func FormatConfirmationText(action string, details [][2]string) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("Confirmar %s:\n\n", action))

	for _, detail := range details {
		result.WriteString(fmt.Sprintf("  %s: %s\n", detail[0], detail[1]))
	}

	result.WriteString("\nProsseguir? (s/N)")
	return result.String()
}

// FormatTimeAgo formats a time relative to now in Portuguese
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	if diff < time.Minute {
		return "agora mesmo"
	} else if diff < time.Hour {
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "há 1 minuto"
		}
		return fmt.Sprintf("há %d minutos", minutes)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "há 1 hora"
		}
		return fmt.Sprintf("há %d horas", hours)
	} else {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "há 1 dia"
		}
		return fmt.Sprintf("há %d dias", days)
	}
}
