package homework

import (
	"embed"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"
	"time"

	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/datetime"
)

//go:embed templates
var templatesFS embed.FS

var (
	funcs = map[string]interface{}{
		"date": func(t time.Time) string { return t.Format(datetime.DateLayout) },
	}

	reminderText = texttmpl.Must(texttmpl.New("reminder.txt").Funcs(funcs).ParseFS(templatesFS, "templates/reminder.txt"))
	reminderHTML = htmltmpl.Must(htmltmpl.New("reminder.html").Funcs(funcs).ParseFS(templatesFS, "templates/reminder.html"))
)

type reminderData struct {
	Tasks []TaskView
	Date  time.Time
}

func newReminderMessage(subject string, to mail.Address, tasks []TaskView, now time.Time) *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      subject,
		TextTemplate: reminderText,
		HTMLTemplate: reminderHTML,
		TemplateData: reminderData{Tasks: tasks, Date: now},
	}
}
