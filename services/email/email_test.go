package emailsvc

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/agendai/core"
)

var testConf = &core.Config{AppName: "AgendAI"}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	ClearSentMessages()
	svc := NewConsoleServiceMock(testConf)

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Address: "ada@example.com"}}, Subject: "Reminder", BodyStr: "2 tasks due"},
		&core.EmailMessage{Subject: "no recipient", BodyStr: "dropped"},
		&core.EmailMessage{To: []mail.Address{{Address: "ada@example.com"}}, Subject: "no content"},
	)

	require.Len(t, SentMessages, 1)
	assert.Equal(t, "Reminder", SentMessages[0].Subject)
	assert.Equal(t, "2 tasks due", SentMessages[0].TextContent)
}

func TestJoinAddresses(t *testing.T) {
	got := joinAddresses([]mail.Address{{Name: "Ada", Address: "ada@example.com"}, {Address: "bob@example.com"}})
	assert.Equal(t, `"Ada" <ada@example.com>, <bob@example.com>`, got)
}

func TestSendgridService(t *testing.T) {
	var gotReq rest.Request
	status := http.StatusAccepted
	orig := sendgridAPIFunc
	t.Cleanup(func() { sendgridAPIFunc = orig })
	sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
		gotReq = req
		return &rest.Response{StatusCode: status, Body: "bad request"}, nil
	}

	svc := NewSendgridService(testConf, nil).(*sendgridService)
	msg := core.EmailMessage{
		To:          []mail.Address{{Name: "Ada", Address: "ada@example.com"}},
		Subject:     "Homework reminder",
		TextContent: "plain",
	}

	m := svc.prepare(msg)
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[AgendAI] Homework reminder", m.Personalizations[0].Subject)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "noreply@localhost", m.From.Address)

	require.NoError(t, svc.send(m))
	assert.Equal(t, rest.Post, gotReq.Method)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(gotReq.Body, &body))
	assert.Equal(t, "AgendAI", body["from"].(map[string]interface{})["name"])

	status = http.StatusBadRequest
	assert.EqualError(t, svc.send(m), "sendgrid responded 400: bad request")
}
