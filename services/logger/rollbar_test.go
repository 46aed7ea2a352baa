package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/agendai/core"
)

func newTestLogger(buf *bytes.Buffer) *RollbarLogger {
	l := NewRollbarLogger(log.New(buf, "", 0), core.NewConfig())
	l.Enable(false)
	return l
}

func TestRollbarLogger_prepare(t *testing.T) {
	l := newTestLogger(new(bytes.Buffer))
	err := errors.New("boom")
	fields := map[string]interface{}{"task": "t1"}

	got := l.prepare("sending reminders", []interface{}{err, core.UserID("u1"), fields, core.UserID("u2")})
	assert.Equal(t, []interface{}{"sending reminders", err, fields}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	l := newTestLogger(buf)

	l.Warn("skipping schedule entry", core.UserID("u1"), map[string]interface{}{"day_of_week": 9})
	assert.Equal(t, "WARN: skipping schedule entry\n  user: u1\n  day_of_week: 9\n", buf.String())
}
