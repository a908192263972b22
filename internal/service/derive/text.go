package derive

import (
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
)

const day = 24 * time.Hour

// RelativeTime renders an epoch-seconds timestamp as an age relative to now.
// Unknown timestamps render as the placeholder; future ones as "Today".
func RelativeTime(ts int64, now time.Time) string {
	if ts <= 0 {
		return Placeholder
	}
	age := now.Sub(time.Unix(ts, 0))
	if age < 0 {
		age = 0
	}
	days := int(age / day)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	default:
		return plural(days/30, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// DescribeCompany returns the overview description, or a one-line summary
// assembled from whatever profile fields are present.
func DescribeCompany(symbol models.Symbol, o models.CompanyOverview) string {
	if d := strings.TrimSpace(o.Description); d != "" {
		return d
	}
	name := o.Name
	if name == "" {
		name = string(symbol)
	}

	var b strings.Builder
	b.WriteString(name)
	if o.Industry != "" {
		fmt.Fprintf(&b, " operates in the %s industry", o.Industry)
	} else {
		b.WriteString(" is a publicly traded company")
	}
	if o.Exchange != "" {
		fmt.Fprintf(&b, " and is listed on %s", o.Exchange)
	}
	if o.Country != "" {
		fmt.Fprintf(&b, ", based in %s", o.Country)
	}
	b.WriteString(".")
	return b.String()
}
