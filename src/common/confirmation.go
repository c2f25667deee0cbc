package common

import (
	"bytes"
	"fmt"
	"html/template"
	"ticketing/src/models"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Hi {{.Purchase.GuestName}},</p>
<p>Thank you for your purchase. Here are your tickets for <strong>{{.Event.Title}}</strong> on {{.Event.EventDate.Format "Mon, 02 Jan 2006 15:04 MST"}}.</p>
<table>
<tr><td>Confirmation</td><td>{{.Purchase.Reference}}</td></tr>
<tr><td>Tickets</td><td>{{len .Purchase.Tickets}}</td></tr>
<tr><td>Unit price</td><td>{{printf "%.2f" .Event.TicketPrice}}</td></tr>
<tr><td>Total</td><td>{{printf "%.2f" .Purchase.TotalCost}}</td></tr>
</table>
</body>
</html>
`))

func renderConfirmation(purchase *models.Purchase, event *models.Event) (subject string, body string, err error) {
	var buf bytes.Buffer
	err = confirmationTmpl.Execute(&buf, struct {
		Purchase *models.Purchase
		Event    *models.Event
	}{purchase, event})
	if err != nil {
		return "", "", err
	}
	subject = fmt.Sprintf("Your tickets for %s", event.Title)
	return subject, buf.String(), nil
}
