package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minhvu/todo-api/internal/mocks"
	"github.com/minhvu/todo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	router    chi.Router
	taskStore *mocks.MockTaskStore
	userStore *mocks.MockUserStore
}

func newDashboardFixture() *dashboardFixture {
	taskStore := mocks.NewMockTaskStore()
	userStore := mocks.NewMockUserStore()
	taskService := service.NewTaskService(taskStore, userStore, nil)
	handler := NewDashboardHandler(taskService)

	r := chi.NewRouter()
	r.Get("/", handler.Home)
	r.Post("/add-task", handler.AddTask)
	r.Post("/delete-task/{id}", handler.DeleteTask)

	return &dashboardFixture{router: r, taskStore: taskStore, userStore: userStore}
}

func (f *dashboardFixture) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestDashboardHandler_Home(t *testing.T) {
	f := newDashboardFixture()
	taskf := &taskHandlerFixture{taskStore: f.taskStore, userStore: f.userStore}
	user := taskf.seedUser(t, "nva", "Nguyễn Văn A")
	taskf.seedTask(t, "Học Golang", user.ID)
	done := taskf.seedTask(t, "Viết báo cáo", user.ID)
	done.MarkDone(time.Now())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Học Golang")
	assert.Contains(t, body, "Nguyễn Văn A")
	// 1 of 2 tasks done rounds to 50%.
	assert.Contains(t, body, "50%")
}

func TestDashboardHandler_HomeEmpty(t *testing.T) {
	f := newDashboardFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// With no tasks the completion percentage is 0, not a division error.
	assert.Contains(t, rec.Body.String(), "0%")
}

// TestDashboardHandler_AddTask tests the AddTask form route.
func TestDashboardHandler_AddTask(t *testing.T) {
	t.Run("successful_add_redirects", func(t *testing.T) {
		f := newDashboardFixture()
		taskf := &taskHandlerFixture{taskStore: f.taskStore, userStore: f.userStore}
		user := taskf.seedUser(t, "nva", "Nguyễn Văn A")

		rec := f.postForm(t, "/add-task", url.Values{"title": {"Học Golang"}})

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		require.Len(t, f.taskStore.Tasks, 1)
		assert.Equal(t, "Học Golang", f.taskStore.Tasks[0].Title)
		assert.Equal(t, user.ID, f.taskStore.Tasks[0].UserID)
	})

	t.Run("no_users_warns_in_plain_text", func(t *testing.T) {
		f := newDashboardFixture()

		rec := f.postForm(t, "/add-task", url.Values{"title": {"Học Golang"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, rec.Body.String(), "No users in the database yet")
		assert.Empty(t, f.taskStore.Tasks)
	})

	t.Run("empty_title_warns_in_plain_text", func(t *testing.T) {
		f := newDashboardFixture()
		taskf := &taskHandlerFixture{taskStore: f.taskStore, userStore: f.userStore}
		taskf.seedUser(t, "nva", "Nguyễn Văn A")

		rec := f.postForm(t, "/add-task", url.Values{"title": {""}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		assert.Empty(t, f.taskStore.Tasks)
	})
}

// TestDashboardHandler_DeleteTask tests the DeleteTask form route.
func TestDashboardHandler_DeleteTask(t *testing.T) {
	t.Run("deletes_and_redirects", func(t *testing.T) {
		f := newDashboardFixture()
		taskf := &taskHandlerFixture{taskStore: f.taskStore, userStore: f.userStore}
		user := taskf.seedUser(t, "nva", "Nguyễn Văn A")
		task := taskf.seedTask(t, "Học Golang", user.ID)

		rec := f.postForm(t, "/delete-task/"+task.ID.String(), nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Empty(t, f.taskStore.Tasks)
	})

	t.Run("missing_id_still_redirects", func(t *testing.T) {
		f := newDashboardFixture()

		rec := f.postForm(t, "/delete-task/33333333-3333-3333-3333-333333333333", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("malformed_id_still_redirects", func(t *testing.T) {
		f := newDashboardFixture()

		rec := f.postForm(t, "/delete-task/not-a-uuid", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}
