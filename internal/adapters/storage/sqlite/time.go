package sqlite

import "time"

// timeLayout es RFC3339 con nanos de ancho fijo; siempre se escribe en UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

type rowScanner interface {
	Scan(dest ...any) error
}
