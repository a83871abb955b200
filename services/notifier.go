package services

import (
	"fmt"
	"log"

	"campus-compliance-api/config"
	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

// Notifier sends the grievance workflow mails. Delivery is best-effort: a
// failure is logged and never fails the write that triggered it.
type Notifier struct {
	Store store.Store
	Send  func(to []string, subject, html string) error
}

func NewNotifier(s store.Store) *Notifier {
	return &Notifier{Store: s, Send: config.SendMail}
}

// GrievanceAssigned mails the staff member a grievance was assigned to.
func (n *Notifier) GrievanceAssigned(g models.Grievance, assigneeID int) {
	email, ok := n.lookupEmail(assigneeID)
	if !ok {
		return
	}
	subject := fmt.Sprintf("Grievance assigned: %s", g.Title)
	body := fmt.Sprintf(
		"<p>A grievance has been assigned to you.</p><p><b>%s</b><br>%s</p><p>Category: %s, priority: %s.</p>",
		g.Title, g.Description, g.Category, g.Priority)
	if err := n.Send([]string{email}, subject, body); err != nil {
		log.Printf("assignment mail for grievance %s failed: %v", g.GrievanceID, err)
	}
}

// GrievanceResolved mails the submitter when their grievance is resolved.
func (n *Notifier) GrievanceResolved(g models.Grievance) {
	email, ok := n.lookupEmail(g.SubmittedBy)
	if !ok {
		return
	}
	subject := fmt.Sprintf("Grievance resolved: %s", g.Title)
	body := fmt.Sprintf(
		"<p>Your grievance <b>%s</b> has been marked resolved.</p>", g.Title)
	if err := n.Send([]string{email}, subject, body); err != nil {
		log.Printf("resolution mail for grievance %s failed: %v", g.GrievanceID, err)
	}
}

func (n *Notifier) lookupEmail(userID int) (string, bool) {
	var users []models.User
	_, err := n.Store.Find(store.Query{
		Table:   models.User{}.TableName(),
		Filters: []store.Filter{store.Eq("user_id", userID)},
		Range:   &store.Range{From: 0, To: 0},
	}, &users)
	if err != nil {
		log.Printf("user lookup for notification failed: %v", err)
		return "", false
	}
	if len(users) == 0 || users[0].Email == "" {
		return "", false
	}
	return users[0].Email, true
}
