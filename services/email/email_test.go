package emailsvc

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"

	"github.com/skillspring/server/core"
)

type loggerMock struct {
	errors []string
}

func (l *loggerMock) Debug(string, ...interface{})       {}
func (l *loggerMock) Info(string, ...interface{})        {}
func (l *loggerMock) Warn(string, ...interface{})        {}
func (l *loggerMock) Error(msg string, _ ...interface{}) { l.errors = append(l.errors, msg) }
func (l *loggerMock) Fatal(string, ...interface{})       {}

func statusMessage() *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Name: "Ann", Address: "ann@test.cd"}},
		Subject:      "Your teacher application has been approved",
		TemplateName: "teacher_status",
		TemplateData: struct{ Name, Title, Status string }{"Ann", "Go mentor", "approved"},
	}
}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	ResetSentMessages()
	svc := NewConsoleServiceMock(core.NewTestConfig())

	svc.SendMessages(statusMessage(), &core.EmailMessage{Subject: "no recipients", BodyStr: "lost"})

	sent := GetSentMessages()
	if assert.Len(t, sent, 1) {
		assert.Equal(t, "ann@test.cd", sent[0].To[0].Address)
		assert.Contains(t, sent[0].TextContent, "Hi Ann")
		assert.Contains(t, sent[0].TextContent, "has been approved")
		assert.Contains(t, sent[0].HTMLContent, "<b>Go mentor</b>")
	}
}

func TestSendgridService_send(t *testing.T) {
	origAPI := sendgridAPIFunc
	defer func() { sendgridAPIFunc = origAPI }()

	tests := []struct {
		name       string
		res        *rest.Response
		err        error
		wantErrLog bool
	}{
		{name: "accepted", res: &rest.Response{StatusCode: http.StatusAccepted}},
		{name: "rejected", res: &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, wantErrLog: true},
		{name: "unreachable", err: errors.New("dial tcp"), wantErrLog: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]interface{}
			sendgridAPIFunc = func(req rest.Request) (*rest.Response, error) {
				assert.Equal(t, rest.Post, req.Method)
				assert.Equal(t, host+endpoint, req.BaseURL)
				assert.NoError(t, json.Unmarshal(req.Body, &body))
				return tt.res, tt.err
			}

			logger := new(loggerMock)
			svc := NewSendgridService(core.NewTestConfig(), logger).(*sendgridService)
			svc.sendMessage(statusMessage())

			assert.Equal(t, tt.wantErrLog, len(logger.errors) > 0)
			if assert.NotNil(t, body) {
				content := body["content"].([]interface{})
				assert.Len(t, content, 2)
				p := body["personalizations"].([]interface{})[0].(map[string]interface{})
				assert.Equal(t, "[SkillSpring] Your teacher application has been approved", p["subject"])
			}
		})
	}
}
