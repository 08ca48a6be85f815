// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"code.kwd.dev/wordfilter/models/db"
	content_model "code.kwd.dev/wordfilter/models/content"
	"code.kwd.dev/wordfilter/models/system"
	"code.kwd.dev/wordfilter/models/unittest"
	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/markup"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/test"
	"code.kwd.dev/wordfilter/modules/web"
	"code.kwd.dev/wordfilter/routers/common"
	wordfilter_service "code.kwd.dev/wordfilter/services/wordfilter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	csrfTokenRe = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)
	nonceRe     = regexp.MustCompile(`name="ourNonce" value="([^"]*)"`)
)

type testSession struct {
	t      *testing.T
	client *http.Client
	server *httptest.Server
}

func (s *testSession) do(req *http.Request) (*http.Response, string) {
	resp, err := s.client.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, string(body)
}

func (s *testSession) get(path string) (*http.Response, string) {
	req, err := http.NewRequest("GET", s.server.URL+path, nil)
	require.NoError(s.t, err)
	req.Header.Set("Accept", "text/html")
	return s.do(req)
}

func (s *testSession) post(path string, values url.Values) (*http.Response, string) {
	req, err := http.NewRequest("POST", s.server.URL+path, strings.NewReader(values.Encode()))
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return s.do(req)
}

// csrfToken loads the page and returns the CSRF token it carries
func (s *testSession) csrfToken(path string) string {
	_, body := s.get(path)
	m := csrfTokenRe.FindStringSubmatch(body)
	require.Len(s.t, m, 2, "no csrf token on %s", path)
	return html.UnescapeString(m[1])
}

func (s *testSession) login(name, password string) {
	resp, _ := s.post("/user/login", url.Values{
		"_csrf":     {s.csrfToken("/user/login")},
		"user_name": {name},
		"password":  {password},
	})
	require.Equal(s.t, http.StatusSeeOther, resp.StatusCode)
}

func newTestSession(t *testing.T, server *httptest.Server) *testSession {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testSession{
		t:      t,
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func prepareTestServer(t *testing.T) *httptest.Server {
	unittest.PrepareTestDatabase(t)
	defer test.MockVariableValue(&user_model.PasswordHashCost, bcrypt.MinCost)()

	t.Cleanup(test.MockVariableValue(&setting.SecretKey, "web-test-secret"))
	t.Cleanup(test.MockVariableValue(&setting.IsProd, false))
	t.Cleanup(test.MockVariableValue(&setting.AppSubURL, ""))
	t.Cleanup(test.MockVariableValue(&setting.Log.EnableRouterLog, false))
	t.Cleanup(test.MockVariableValue(&setting.Metrics.Enabled, true))
	t.Cleanup(test.MockVariableValue(&setting.SessionConfig.Provider, "memory"))
	t.Cleanup(test.MockVariableValue(&setting.SessionConfig.CookieName, "i_like_wordfilter"))
	t.Cleanup(test.MockVariableValue(&setting.SessionConfig.CookiePath, "/"))
	t.Cleanup(test.MockVariableValue(&setting.SessionConfig.Secure, false))
	t.Cleanup(test.MockVariableValue(&markup.DefaultPipeline, markup.NewPipeline()))

	ctx := db.DefaultContext
	admin := &user_model.User{Name: "admin", IsAdmin: true}
	require.NoError(t, user_model.CreateUser(ctx, admin, "admin-password"))
	editor := &user_model.User{Name: "editor"}
	editor.Grant(user_model.CapManageOptions)
	require.NoError(t, user_model.CreateUser(ctx, editor, "editor-password"))
	require.NoError(t, user_model.CreateUser(ctx, &user_model.User{Name: "reader"}, "reader-password"))
	require.NoError(t, content_model.CreatePost(ctx, &content_model.Post{
		Slug:    "hello",
		Title:   "Hello",
		Content: "Darn it, what the *heck*.",
	}))

	require.NoError(t, wordfilter_service.Init(ctx))

	r := web.NewRouter()
	r.Use(common.ProtocolMiddlewares(t.Context())...)
	RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestPublicPages(t *testing.T) {
	server := prepareTestServer(t)
	s := newTestSession(t, server)

	resp, body := s.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/posts/hello"`)
	assert.Contains(t, body, "Sign In")

	resp, body = s.get("/posts/hello")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<p>Darn it, what the <em>heck</em>.</p>")

	resp, _ = s.get("/posts/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "status-page-404")

	resp, body = s.get("/posts.rss")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/rss+xml;charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<title>Hello</title>")
	etag := resp.Header.Get("Etag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest("GET", server.URL+"/posts.rss", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	resp, body = s.do(req)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = s.get("/posts.atom")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<feed")

	resp, body = s.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "wordfilter_hook_registered")
}

func TestFeedCors(t *testing.T) {
	defer test.MockVariableValue(&setting.CORSConfig.Enabled, true)()
	server := prepareTestServer(t)
	s := newTestSession(t, server)

	req, err := http.NewRequest("GET", server.URL+"/posts.atom", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://reader.example.com")
	resp, _ := s.do(req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	// only the feeds are shared
	req, err = http.NewRequest("GET", server.URL+"/posts/hello", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://reader.example.com")
	resp, _ = s.do(req)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSignIn(t *testing.T) {
	server := prepareTestServer(t)
	s := newTestSession(t, server)

	// anonymous users are sent to the sign in page and come back after it
	resp, _ := s.get("/-/admin/wordfilter")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/user/login?redirect_to=%2F-%2Fadmin%2Fwordfilter", resp.Header.Get("Location"))

	resp, _ = s.post("/user/login", url.Values{"user_name": {"admin"}, "password": {"admin-password"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "csrf token is required")

	token := s.csrfToken("/user/login")
	resp, body := s.post("/user/login", url.Values{"_csrf": {token}, "user_name": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Username or password is incorrect.")

	resp, body = s.post("/user/login", url.Values{"_csrf": {token}, "user_name": {""}, "password": {"x"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "User Name cannot be empty.")

	resp, _ = s.post("/user/login", url.Values{"_csrf": {token}, "user_name": {"admin"}, "password": {"admin-password"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/-/admin/wordfilter", resp.Header.Get("Location"))

	_, body = s.get("/")
	assert.Contains(t, body, "Sign Out (admin)")
	assert.Contains(t, body, `href="/-/admin/wordfilter"`)

	resp, _ = s.post("/user/logout", url.Values{"_csrf": {s.csrfToken("/")}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.get("/")
	assert.Contains(t, body, "Sign In")
	resp, _ = s.get("/-/admin/wordfilter")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminPagesRequireCapability(t *testing.T) {
	server := prepareTestServer(t)
	s := newTestSession(t, server)
	s.login("reader", "reader-password")

	resp, _ := s.get("/-/admin/wordfilter")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = s.get("/-/admin/wordfilter/options")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, body := s.get("/")
	assert.NotContains(t, body, `href="/-/admin/wordfilter"`)

	// a submitted words list gets the permission notice, not the editor
	resp, body = s.post("/-/admin/wordfilter", url.Values{
		"justsubmitted":          {"true"},
		"plugin_words_to_filter": {"darn"},
		"ourNonce":               {"forged"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Sorry, you do not have permission to perform that action.")
	assert.NotContains(t, body, "plugin_words_to_filter")
	unittest.AssertNotExistsBean(t, &system.Option{Name: wordfilter_service.KeyWordList})

	resp, body = s.post("/-/admin/wordfilter", url.Values{"plugin_words_to_filter": {"darn"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.NotContains(t, body, "plugin_words_to_filter")
}

func TestWordFilterCapabilityRevoked(t *testing.T) {
	server := prepareTestServer(t)
	ctx := db.DefaultContext
	s := newTestSession(t, server)
	s.login("editor", "editor-password")

	_, body := s.get("/-/admin/wordfilter")
	nonce := nonceRe.FindStringSubmatch(body)
	require.Len(t, nonce, 2)

	editor, err := user_model.GetUserByName(ctx, "editor")
	require.NoError(t, err)
	editor.Revoke(user_model.CapManageOptions)
	require.NoError(t, user_model.UpdateUserCols(ctx, editor, "capabilities"))

	// the nonce is still valid but the capability is gone
	resp, body := s.post("/-/admin/wordfilter", url.Values{
		"justsubmitted":          {"true"},
		"plugin_words_to_filter": {"darn"},
		"ourNonce":               {nonce[1]},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, `<div class="error">`)
	assert.Contains(t, body, "Sorry, you do not have permission to perform that action.")
	unittest.AssertNotExistsBean(t, &system.Option{Name: wordfilter_service.KeyWordList})
}

func TestWordFilterAdmin(t *testing.T) {
	server := prepareTestServer(t)
	ctx := db.DefaultContext
	s := newTestSession(t, server)
	s.login("editor", "editor-password")

	resp, body := s.get("/-/admin/wordfilter")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Words To Filter - ")
	assert.Contains(t, body, "Words List")
	assert.Contains(t, body, `placeholder="bad, mean, profane, horrible"`)
	assert.Contains(t, body, "The content filter is not active.")
	assert.NotContains(t, body, "Reload Filter", "only site administrators may reload")
	nonce := nonceRe.FindStringSubmatch(body)
	require.Len(t, nonce, 2)
	require.NotEmpty(t, nonce[1])

	// a forged nonce shows the error notice and saves nothing
	resp, body = s.post("/-/admin/wordfilter", url.Values{
		"justsubmitted":          {"true"},
		"plugin_words_to_filter": {"darn"},
		"ourNonce":               {"forged"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<div class="error">`)
	assert.Contains(t, body, "Sorry, you do not have permission to perform that action.")
	unittest.AssertNotExistsBean(t, &system.Option{Name: wordfilter_service.KeyWordList})

	// without justsubmitted nothing happens
	resp, body = s.post("/-/admin/wordfilter", url.Values{
		"plugin_words_to_filter": {"darn"},
		"ourNonce":               {nonce[1]},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Your filtered words were saved.")
	unittest.AssertNotExistsBean(t, &system.Option{Name: wordfilter_service.KeyWordList})

	resp, body = s.post("/-/admin/wordfilter", url.Values{
		"justsubmitted":          {"true"},
		"plugin_words_to_filter": {" darn,\n<b>heck</b> "},
		"ourNonce":               {nonce[1]},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<div class="updated">`)
	assert.Contains(t, body, "Your filtered words were saved.")
	assert.Contains(t, body, ">darn, heck</textarea>")
	o := unittest.AssertExistsAndLoadBean(t, &system.Option{Name: wordfilter_service.KeyWordList})
	assert.Equal(t, "darn, heck", o.Value)

	// the render hook decision holds until it is reloaded
	_, body = s.get("/posts/hello")
	assert.Contains(t, body, "Darn it")

	resp, _ = s.post("/-/admin/wordfilter/reload", url.Values{"_csrf": {s.csrfToken("/-/admin/wordfilter")}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "reload is for site administrators")

	admin := newTestSession(t, server)
	admin.login("admin", "admin-password")
	resp, _ = admin.post("/-/admin/wordfilter/reload", url.Values{"_csrf": {admin.csrfToken("/-/admin/wordfilter")}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/-/admin/wordfilter", resp.Header.Get("Location"))
	_, body = admin.get("/-/admin/wordfilter")
	assert.Contains(t, body, "Reload Filter")
	assert.Contains(t, body, "The content filter was reloaded.")
	assert.Contains(t, body, "The content filter is active, 2 words are filtered.")
	assert.True(t, wordfilter_service.Default().Registered())

	_, body = s.get("/posts/hello")
	assert.Contains(t, body, "<p>**** it, what the <em>****</em>.</p>")
	_, body = s.get("/posts.rss")
	assert.Contains(t, body, "**** it")

	// options page, saved through the generic options handler
	resp, body = s.get("/-/admin/wordfilter/options")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Word Filter Options - ")
	assert.Contains(t, body, `name="replacementText" value="****"`)
	assert.Contains(t, body, "Leave blank to simply remove the filtered words.")

	resp, _ = s.post("/-/admin/options", url.Values{
		"option_page":     {"replacementFields"},
		"replacementText": {"[removed]"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	token := s.csrfToken("/-/admin/wordfilter/options")
	resp, _ = s.post("/-/admin/options", url.Values{
		"_csrf":           {token},
		"option_page":     {"unknownFields"},
		"replacementText": {"[removed]"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.post("/-/admin/options", url.Values{
		"_csrf":                  {token},
		"option_page":            {"replacementFields"},
		"replacementText":        {"<removed>"},
		"plugin_words_to_filter": {"not through this form"},
		"redirect_to":            {"/-/admin/wordfilter/options"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/-/admin/wordfilter/options", resp.Header.Get("Location"))
	_, body = s.get("/-/admin/wordfilter/options")
	assert.Contains(t, body, "Settings saved.")
	assert.Contains(t, body, `value="&lt;removed&gt;"`)
	words, err := wordfilter_service.Default().WordList(ctx)
	require.NoError(t, err)
	assert.Equal(t, "darn, heck", words)

	_, body = s.get("/posts/hello")
	assert.Contains(t, body, "<p>&lt;removed&gt; it, what the <em>&lt;removed&gt;</em>.</p>")

	// an empty replacement removes the words
	resp, _ = s.post("/-/admin/options", url.Values{
		"_csrf":           {s.csrfToken("/-/admin/wordfilter/options")},
		"option_page":     {"replacementFields"},
		"replacementText": {""},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = s.get("/posts/hello")
	assert.Contains(t, body, "<p> it, what the <em></em>.</p>")
}
