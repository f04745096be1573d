package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
)

func renderOrderHTML(order orderdomain.Order, office *officedomain.Office, agent *userdomain.User, kind string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif;">`)
	fmt.Fprintf(&b, "<h2>%s Sign Order</h2>", html.EscapeString(kind))
	b.WriteString(`<table border="1" cellpadding="10" cellspacing="0" style="border-collapse: collapse;">`)

	row(&b, "Order ID", order.OrderID)
	row(&b, "Installation Type", order.InstallationType)
	row(&b, "Property Type", order.PropertyType)
	row(&b, "Address", order.Address())
	if agent != nil {
		row(&b, "Agent", agent.FirstName+" "+agent.LastName)
	}
	if office != nil {
		row(&b, "Office", office.Name)
	}
	row(&b, "Contact", orDefault(order.ContactName))
	row(&b, "Phone", orDefault(order.ContactPhone))
	row(&b, "Listing Date", dateOrDefault(order.ListingDate))
	row(&b, "Installation Date", dateOrDefault(order.InstallationDate))
	b.WriteString("</table>")

	if order.Directions != "" {
		fmt.Fprintf(&b, "<p><strong>Directions:</strong><br>%s</p>", html.EscapeString(order.Directions))
	}
	if order.AdditionalInfo != "" {
		fmt.Fprintf(&b, "<p><strong>Additional Info:</strong><br>%s</p>", html.EscapeString(order.AdditionalInfo))
	}

	b.WriteString("<h3>Special Features:</h3><ul>")
	fmt.Fprintf(&b, "<li>Underwater Sprinkler: %s</li>", yesNo(order.UnderwaterSprinkler))
	fmt.Fprintf(&b, "<li>Invisible Dog Fence: %s</li>", yesNo(order.InvisibleDogFence))
	b.WriteString("</ul></body></html>")

	return b.String()
}

func renderReorderHTML(reorder reorderdomain.Reorder, original orderdomain.Order, office *officedomain.Office, listingAgent *userdomain.User) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif;">`)
	b.WriteString("<h2>New Reorder</h2>")
	b.WriteString(`<table border="1" cellpadding="10" cellspacing="0" style="border-collapse: collapse;">`)

	row(&b, "Reorder ID", reorder.ReorderID)
	row(&b, "Original Order", original.OrderID)
	row(&b, "Installation Type", reorder.InstallationType)
	row(&b, "Zip Code", reorder.ZipCode)
	row(&b, "Address", original.Address())
	if listingAgent != nil {
		row(&b, "Listing Agent", listingAgent.FirstName+" "+listingAgent.LastName)
	}
	if office != nil {
		row(&b, "Office", office.Name)
	}
	b.WriteString("</table>")

	if reorder.AdditionalInfo != "" {
		fmt.Fprintf(&b, "<p><strong>Additional Info:</strong><br>%s</p>", html.EscapeString(reorder.AdditionalInfo))
	}
	b.WriteString("</body></html>")

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><td><strong>%s:</strong></td><td>%s</td></tr>", html.EscapeString(label), html.EscapeString(value))
}

func orDefault(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

func dateOrDefault(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("01/02/2006")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
