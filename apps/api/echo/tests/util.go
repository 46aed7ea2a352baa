package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/trezcool/agendai/apps/api/echo"
	"github.com/trezcool/agendai/core"
	"github.com/trezcool/agendai/core/dashboard"
	"github.com/trezcool/agendai/core/grade"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/trend"
	"github.com/trezcool/agendai/services/email"
	"github.com/trezcool/agendai/storage/database/dummy"
	"github.com/trezcool/agendai/tests"
)

const nowParam = "now=2026-10-15T10:30:00Z"

var uid = testutil.UserID

func setup(t *testing.T) (*Server, *dummydb.DB) {
	t.Helper()
	return setupWithTaskRepo(t, nil)
}

// setupWithTaskRepo is setup with taskRepo replacing the in-memory task repository when not nil.
func setupWithTaskRepo(t *testing.T, taskRepo homework.Repository) (*Server, *dummydb.DB) {
	t.Helper()

	conf := &core.Config{
		AppName:   "AgendAI",
		TestMode:  true,
		Locale:    "en",
		Server:    core.ServerConfig{DisableReqLogs: true},
		Reminders: core.ReminderConfig{Subject: "Homework reminder"},
	}

	// set up DB & repos
	db := dummydb.NewDB()
	testutil.SeedDummy(db, uid)

	if taskRepo == nil {
		taskRepo = dummydb.NewTaskRepository(db)
	}

	// set up services
	emailsvc.ClearSentMessages()
	homeworkSvc := homework.NewService(taskRepo, emailsvc.NewConsoleServiceMock(conf), conf)
	gradeSvc := grade.NewService(dummydb.NewGradeRepository(db))
	scheduleSvc := schedule.NewService(dummydb.NewScheduleRepository(db))

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	trend.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)

	// set up server
	server := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       testLogger{},
		Validate:     validate,
		Translator:   translator,
		HomeworkSvc:  homeworkSvc,
		GradeSvc:     gradeSvc,
		ScheduleSvc:  scheduleSvc,
		DashboardSvc: dashboard.NewService(homeworkSvc, scheduleSvc, gradeSvc),
	})
	return server, db
}

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	header   map[string]string
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func serve(t *testing.T, server http.Handler, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newRequest(tt.method, tt.path, tt.body)
	for k, v := range tt.header {
		req.Header.Set(k, v)
	}
	server.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
