package repository

import (
	"fmt"
	"strings"
	"time"
)

// fixed-width so created_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// likePrefix escapes s for use as "<s>%" in a LIKE ... ESCAPE '\' clause.
func likePrefix(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s) + "%"
}

// nowUTC is swapped in tests.
var nowUTC = func() time.Time { return time.Now().UTC() }
