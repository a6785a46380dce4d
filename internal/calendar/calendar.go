// Package calendar builds the deep link the UI opens to hand a
// reminder off to an external calendar application. The core only
// supplies the three fields; everything else is the calendar's
// business.
package calendar

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
)

const renderURL = "https://calendar.google.com/calendar/render"

// ReminderLink encodes name, amount and date into an all-day event
// deep link.
func ReminderLink(name string, amount decimal.Decimal, date core.Date) string {
	day := date.Time().Format("20060102")
	next := date.Time().AddDate(0, 0, 1).Format("20060102")

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", name)
	q.Set("details", fmt.Sprintf("Valor: %s", core.FormatAmount(amount)))
	q.Set("dates", day+"/"+next)
	return renderURL + "?" + q.Encode()
}
