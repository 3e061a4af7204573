// Package reminder emails students about the events they asked to be reminded of,
// the day before they happen.
package reminder

import (
	"fmt"
	"net/mail"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/countdown"
	"github.com/trezcool/phoebuz/core/session"
	"github.com/trezcool/phoebuz/core/study"
)

const TemplateName = "event_reminder"

var ErrNoEmail = errors.New("identity has no email address")

type (
	Service struct {
		mailSvc core.EmailService
		logger  core.Logger
	}

	// templateData is what the event_reminder templates render.
	templateData struct {
		EventType   string
		Subject     string
		Date        string
		Time        string
		Description string
		Location    string
		Checklist   []string
	}
)

func NewService(mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{mailSvc: mailSvc, logger: logger}
}

// Due returns the events flagged for a reminder that take place tomorrow.
func Due(events []calendar.Event) []calendar.Event {
	due := make([]calendar.Event, 0)
	for _, e := range events {
		if e.ReminderSet && countdown.IsTomorrow(e.Date) {
			due = append(due, e)
		}
	}
	return due
}

func Message(to mail.Address, e calendar.Event) *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      fmt.Sprintf("%s tomorrow: %s", e.EventType, e.Subject),
		TemplateName: TemplateName,
		TemplateData: templateData{
			EventType:   e.EventType,
			Subject:     e.Subject,
			Date:        countdown.FormatDate(e.Date),
			Time:        e.Time,
			Description: e.Description,
			Location:    e.Location,
			Checklist:   e.PreparationChecklist,
		},
	}
}

// Send emails id one reminder per due event and returns the events reminded of.
func (svc *Service) Send(id session.Identity, events []calendar.Event) ([]calendar.Event, error) {
	due := Due(events)
	if len(due) == 0 {
		return due, nil
	}
	if id.Email == "" {
		return nil, ErrNoEmail
	}
	to, err := mail.ParseAddress(id.Email)
	if err != nil {
		return nil, errors.Wrapf(err, "reminder.Send: parsing %q", id.Email)
	}

	messages := make([]*core.EmailMessage, 0, len(due))
	for _, e := range due {
		messages = append(messages, Message(*to, e))
	}
	svc.mailSvc.SendMessages(messages...)
	return due, nil
}

// Remind sends the reminders of the identity signed in to ws.
func (svc *Service) Remind(ws *study.Workspace) ([]calendar.Event, error) {
	id, ok := ws.Session.Identity()
	if !ok {
		return nil, session.ErrNoIdentity
	}
	return svc.Send(id, ws.Calendar.Items())
}

// Sweep sends the reminders of every open workspace of reg and returns how many were sent.
// Failures are logged and do not stop the sweep.
func (svc *Service) Sweep(reg *study.Registry) int {
	sent := 0
	reg.Each(func(ws *study.Workspace) {
		due, err := svc.Remind(ws)
		if err != nil {
			id, _ := ws.Session.Identity()
			svc.logger.Error(fmt.Sprintf("reminder.Sweep: %v", err), err, id)
			return
		}
		sent += len(due)
	})
	return sent
}

// Schedule returns a cron running Sweep on spec (standard 5 field cron syntax).
// The caller starts and stops it.
func (svc *Service) Schedule(spec string, reg *study.Registry) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n := svc.Sweep(reg)
		svc.logger.Info(fmt.Sprintf("reminder.Sweep: %d reminder(s) sent", n))
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reminder.Schedule(%q)", spec)
	}
	return c, nil
}
