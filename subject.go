package sitrep

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPeriod is used when REPORT_PERIOD is unset.
const DefaultPeriod = "Weekly"

// PeriodLabel title-cases a report period: "weekly" becomes "Weekly".
func PeriodLabel(period string) string {
	p := strings.TrimSpace(period)
	if p == "" {
		p = DefaultPeriod
	}
	return cases.Title(language.English).String(p)
}

// DefaultSubject builds "<Period> Sitrep - YYYY-MM-DD".
func DefaultSubject(period string, now time.Time) string {
	return fmt.Sprintf("%s Sitrep - %s", PeriodLabel(period), now.Format("2006-01-02"))
}

// Subject picks the subject line: the override, then the front matter
// subject, then DefaultSubject.
func Subject(override, fromContent, period string, now time.Time) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if s := strings.TrimSpace(fromContent); s != "" {
		return s
	}
	return DefaultSubject(period, now)
}
