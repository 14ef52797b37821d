package tests

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/user"
	"github.com/skillspring/server/services/email"
	"github.com/skillspring/server/tests"
)

func countUsers(t *testing.T) int {
	users, err := usrRepo.QueryUsers(context.Background(), user.QueryFilter{})
	require.NoError(t, err)
	return len(users)
}

func Test_userApi_create(t *testing.T) {
	resetDB()

	existing := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", user.RoleStudent)

	tests := []httpTest{
		{name: "no email", method: http.MethodPost, path: "/users", body: []byte(`{"name":"Lol"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"email":"this field is required"}`)},
		{name: "bad photo", method: http.MethodPost, path: "/users", body: []byte(`{"email":"lol@test.cd","photo":"lol"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"photo":"photo must be a valid URL"}`)},
		{name: "existing email", method: http.MethodPost, path: "/users", body: []byte(`{"email":" AWE@test.cd ","name":"Awe 2"}`),
			wantCode: http.StatusOK, wantData: []byte(`{"acknowledged":false,"insertedId":null,"message":"user already exists"}`)},
	}
	runHTTPTests(t, tests)
	assert.Equal(t, 1, countUsers(t))

	t.Run("new user", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/users", []byte(`{"email":"king@test.cd","name":"King"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var res struct {
			Acknowledged bool   `json:"acknowledged"`
			InsertedID   string `json:"insertedId"`
		}
		unmarshall(t, rec.Body.Bytes(), &res)
		assert.True(t, res.Acknowledged)
		assert.Len(t, res.InsertedID, 24)

		usr, err := usrRepo.GetUserByEmail(context.Background(), "king@test.cd")
		require.NoError(t, err)
		assert.Equal(t, res.InsertedID, usr.ID.Hex())
		assert.Equal(t, user.RoleStudent, usr.Role)
		assert.NotEqual(t, existing.ID, usr.ID)
	})
	assert.Equal(t, 2, countUsers(t))

	t.Run("posted role is ignored", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/users", []byte(`{"email":"evil@test.cd","role":"admin"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		usr, err := usrRepo.GetUserByEmail(context.Background(), "evil@test.cd")
		require.NoError(t, err)
		assert.Equal(t, user.RoleStudent, usr.Role)
		assert.False(t, usr.IsAdmin())
	})
}

func Test_userApi_query(t *testing.T) {
	resetDB()

	awe := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", user.RoleStudent)
	king := testutil.CreateUser(t, usrRepo, "King", "king@test.cd", user.RoleTeacher)
	dotted := testutil.CreateUser(t, usrRepo, "a.b", "dot@test.cd", user.RoleStudent)

	token := getToken(t, awe.Email)
	path := func(search string) string {
		return "/users?" + url.Values{"search": {search}}.Encode()
	}

	tests := []httpTest{
		{name: "all", path: "/users", token: token, wantCode: http.StatusOK, wantData: marchallList(t, awe, king, dotted)},
		{name: "search name", path: path("KIN"), token: token, wantCode: http.StatusOK, wantData: marchallList(t, king)},
		{name: "search email", path: path("awe@"), token: token, wantCode: http.StatusOK, wantData: marchallList(t, awe)},
		{name: "search is literal", path: path("a.b"), token: token, wantCode: http.StatusOK, wantData: marchallList(t, dotted)},
		{name: "search (unknown)", path: path("lol"), token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	runHTTPTests(t, tests)
}

func Test_userApi_retrieve(t *testing.T) {
	resetDB()

	awe := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", user.RoleStudent)
	token := getToken(t, awe.Email)

	tests := []httpTest{
		{name: "found", path: "/users/awe@test.cd", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, awe)},
		{name: "escaped", path: "/users/awe%40test.cd", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, awe)},
		{name: "not found", path: "/users/lol@test.cd", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
	}
	runHTTPTests(t, tests)
}

func Test_userApi_makeAdmin(t *testing.T) {
	resetDB()

	awe := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", user.RoleStudent)
	token := getToken(t, awe.Email)

	tests := []httpTest{
		{name: "promote", method: http.MethodPatch, path: "/users/make-admin/awe@test.cd", token: token,
			wantCode: http.StatusOK, wantData: marchallObj(t, core.NewUpdateResult(1, 1))},
		{name: "already admin", method: http.MethodPatch, path: "/users/make-admin/awe@test.cd", token: token,
			wantCode: http.StatusOK, wantData: marchallObj(t, core.NewUpdateResult(1, 0))},
		{name: "unknown", method: http.MethodPatch, path: "/users/make-admin/lol@test.cd", token: token,
			wantCode: http.StatusOK, wantData: marchallObj(t, core.NewUpdateResult(0, 0))},
	}
	runHTTPTests(t, tests)

	usr, err := usrRepo.GetUserByEmail(context.Background(), awe.Email)
	require.NoError(t, err)
	assert.True(t, usr.IsAdmin())
}

func Test_teacherApi(t *testing.T) {
	resetDB()

	testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", user.RoleStudent)
	token := getToken(t, "awe@test.cd")
	application := []byte(`{"email":"Awe@test.cd","name":"Awe","title":"Go Expert","category":"Programming","experience":"10 years"}`)

	tests := []httpTest{
		{name: "missing fields", method: http.MethodPost, path: "/teacher", token: token, body: []byte(`{"email":"awe@test.cd"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required","title":"this field is required","category":"this field is required"}`)},
		{name: "apply", method: http.MethodPost, path: "/teacher", token: token, body: application, wantCode: http.StatusOK},
		{name: "apply twice", method: http.MethodPost, path: "/teacher", token: token, body: application,
			wantCode: http.StatusBadRequest, wantData: []byte(`{"email":"an application with this email already exists"}`)},
		{name: "bad status", method: http.MethodPatch, path: "/teachers/awe@test.cd", token: token, body: []byte(`{"status":"lol"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"status":"status must be one of pending, approved or rejected"}`)},
		{name: "unknown teacher", path: "/teachers/lol@test.cd", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
	}
	runHTTPTests(t, tests)

	tchr, err := tchrRepo.GetTeacherByEmail(context.Background(), "awe@test.cd")
	require.NoError(t, err)
	assert.Equal(t, core.StatusPending, tchr.Status)
	assert.Empty(t, emailsvc.GetSentMessages())

	runHTTPTests(t, []httpTest{
		{name: "list", path: "/teachers", token: token, wantCode: http.StatusOK, wantData: marchallList(t, tchr)},
		{name: "retrieve", path: "/teachers/awe@test.cd", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, tchr)},
		{name: "approve", method: http.MethodPatch, path: "/teachers/awe@test.cd", token: token,
			body: []byte(`{"status":"approved","role":"teacher"}`), wantCode: http.StatusOK, wantData: marchallObj(t, core.NewUpdateResult(1, 1))},
		{name: "approve again", method: http.MethodPatch, path: "/teachers/awe@test.cd", token: token,
			body: []byte(`{"status":"approved","role":"teacher"}`), wantCode: http.StatusOK, wantData: marchallObj(t, core.NewUpdateResult(1, 0))},
	})

	tchr, err = tchrRepo.GetTeacherByEmail(context.Background(), "awe@test.cd")
	require.NoError(t, err)
	assert.Equal(t, core.StatusApproved, tchr.Status)
	assert.Equal(t, user.RoleTeacher, tchr.Role)

	usr, err := usrRepo.GetUserByEmail(context.Background(), "awe@test.cd")
	require.NoError(t, err)
	runHTTPTests(t, []httpTest{
		{name: "user promoted", path: "/users/awe@test.cd", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
	})
	assert.Equal(t, user.RoleTeacher, usr.Role)

	messages := emailsvc.GetSentMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "awe@test.cd", messages[0].To[0].Address)
	assert.Contains(t, messages[0].TextContent, "approved")
	assert.Contains(t, messages[0].TextContent, "Go Expert")
}
