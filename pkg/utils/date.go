package utils

import "time"

const dateTimeLayout = "02/01/2006 15:04:05"

// FormatDateTime formata uma data no padrão brasileiro (dd/mm/aaaa hh:mm:ss)
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}
