package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/mocks"
	"github.com/minhvu/todo-api/internal/service"
	"github.com/minhvu/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taskHandlerFixture bundles a TaskHandler mounted on a router with the mock
// stores backing it, so tests can seed data and drive real HTTP requests.
type taskHandlerFixture struct {
	router    chi.Router
	taskStore *mocks.MockTaskStore
	userStore *mocks.MockUserStore
}

func newTaskHandlerFixture() *taskHandlerFixture {
	taskStore := mocks.NewMockTaskStore()
	userStore := mocks.NewMockUserStore()
	taskService := service.NewTaskService(taskStore, userStore, nil)
	handler := NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Post("/tasks", handler.CreateTask)
	r.Get("/tasks", handler.ListTasks)
	r.Get("/tasks/user/{username}", handler.ListTasksByUsername)
	r.Get("/tasks/today", handler.ListTasksToday)
	r.Get("/tasks/undone", handler.ListUndoneTasks)
	r.Get("/tasks/nguyen", handler.ListNguyenTasks)
	r.Post("/tasks/{id}/done", handler.CompleteTask)

	return &taskHandlerFixture{router: r, taskStore: taskStore, userStore: userStore}
}

// seedUser registers a user in the user store and as a task owner.
func (f *taskHandlerFixture) seedUser(t *testing.T, username, fullName string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, fullName, "hashed-password")
	require.NoError(t, err)
	require.NoError(t, f.userStore.Create(context.Background(), user))
	f.taskStore.AddOwner(user)
	return user
}

// seedTask inserts a task owned by the given user directly into the store.
func (f *taskHandlerFixture) seedTask(t *testing.T, title string, userID uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "", userID)
	require.NoError(t, err)
	require.NoError(t, f.taskStore.Create(context.Background(), task))
	return task
}

func (f *taskHandlerFixture) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// TestTaskHandler_CreateTask tests the CreateTask handler functionality.
func TestTaskHandler_CreateTask(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	tests := []struct {
		name           string
		requestBody    interface{}
		rawBody        string
		setupStore     func(f *taskHandlerFixture)
		expectedStatus int
		expectedErrMsg string
		expectDone     bool
	}{
		{
			name: "successful_task_creation",
			requestBody: CreateTaskRequest{
				Title:       "Học Golang",
				Description: "Làm bài tập chương 3",
				UserID:      userID,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "explicit_done_override",
			requestBody: CreateTaskRequest{
				Title:       "Học Golang",
				Description: "Làm bài tập chương 3",
				UserID:      userID,
				Done:        true,
			},
			expectedStatus: http.StatusOK,
			expectDone:     true,
		},
		{
			name:           "malformed_json",
			rawBody:        "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid request format",
		},
		{
			name: "missing_title",
			requestBody: CreateTaskRequest{
				UserID: userID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Validation error",
		},
		{
			name: "missing_user_id",
			requestBody: CreateTaskRequest{
				Title: "Học Golang",
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Validation error",
		},
		{
			name: "unknown_user",
			requestBody: CreateTaskRequest{
				Title:  "Học Golang",
				UserID: userID,
			},
			setupStore: func(f *taskHandlerFixture) {
				f.taskStore.CreateFn = func(ctx context.Context, task *domain.Task) error {
					return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid task data",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTaskHandlerFixture()
			if tc.setupStore != nil {
				tc.setupStore(f)
			}

			var body []byte
			if tc.rawBody != "" {
				body = []byte(tc.rawBody)
			} else {
				var err error
				body, err = json.Marshal(tc.requestBody)
				require.NoError(t, err)
			}

			rec := f.do(http.MethodPost, "/tasks", body)

			assert.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedErrMsg != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedErrMsg)
				return
			}

			var resp TaskResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Học Golang", resp.Title)
			assert.Equal(t, "Làm bài tập chương 3", resp.Description)
			assert.Equal(t, userID, resp.UserID)
			assert.Equal(t, tc.expectDone, resp.Done)
			if tc.expectDone {
				require.NotNil(t, resp.DoneAt)
				require.Len(t, f.taskStore.Tasks, 1)
				assert.True(t, f.taskStore.Tasks[0].Done, "explicit done=true must be honored")
			} else {
				assert.Nil(t, resp.DoneAt)
			}
		})
	}
}

func TestTaskHandler_ListTasks(t *testing.T) {
	f := newTaskHandlerFixture()
	user := f.seedUser(t, "nva", "Nguyễn Văn A")
	f.seedTask(t, "Học Golang", user.ID)
	f.seedTask(t, "Viết báo cáo", user.ID)

	rec := f.do(http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []TaskWithOwnerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)

	// The full listing expands the owner with both username and full name.
	assert.Equal(t, "Học Golang", resp[0].Title)
	assert.Equal(t, "nva", resp[0].User.Username)
	assert.Equal(t, "Nguyễn Văn A", resp[0].User.FullName)
}

func TestTaskHandler_ListTasksEmpty(t *testing.T) {
	f := newTaskHandlerFixture()

	rec := f.do(http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Empty result is a JSON array, never null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTaskHandler_ListTasksByUsername(t *testing.T) {
	f := newTaskHandlerFixture()
	owner := f.seedUser(t, "nva", "Nguyễn Văn A")
	other := f.seedUser(t, "ttb", "Trần Thị B")
	f.seedTask(t, "Học Golang", owner.ID)
	f.seedTask(t, "Viết báo cáo", other.ID)

	rec := f.do(http.MethodGet, "/tasks/user/nva", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Học Golang", resp[0].Title)
	assert.Equal(t, owner.ID, resp[0].UserID)
}

func TestTaskHandler_ListTasksByUsernameUnknown(t *testing.T) {
	f := newTaskHandlerFixture()
	user := f.seedUser(t, "nva", "Nguyễn Văn A")
	f.seedTask(t, "Học Golang", user.ID)

	rec := f.do(http.MethodGet, "/tasks/user/nobody", nil)

	// Unknown username is an empty listing, not an error.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTaskHandler_ListUndoneTasks(t *testing.T) {
	f := newTaskHandlerFixture()
	user := f.seedUser(t, "nva", "Nguyễn Văn A")
	f.seedTask(t, "Học Golang", user.ID)
	done := f.seedTask(t, "Viết báo cáo", user.ID)
	done.MarkDone(time.Now())

	rec := f.do(http.MethodGet, "/tasks/undone", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Học Golang", resp[0].Title)
}

func TestTaskHandler_ListNguyenTasks(t *testing.T) {
	f := newTaskHandlerFixture()
	nguyen := f.seedUser(t, "nva", "nguyễn văn a")
	tran := f.seedUser(t, "ttb", "Trần Thị B")
	f.seedTask(t, "Học Golang", nguyen.ID)
	f.seedTask(t, "Viết báo cáo", tran.ID)

	rec := f.do(http.MethodGet, "/tasks/nguyen", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []TaskWithOwnerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)

	// Matching is case-insensitive and the owner projection carries the
	// full name but no username.
	assert.Equal(t, "Học Golang", resp[0].Title)
	assert.Equal(t, "nguyễn văn a", resp[0].User.FullName)
	assert.Empty(t, resp[0].User.Username)
}

// TestTaskHandler_CompleteTask tests the CompleteTask handler functionality.
func TestTaskHandler_CompleteTask(t *testing.T) {
	t.Run("successful_completion", func(t *testing.T) {
		f := newTaskHandlerFixture()
		user := f.seedUser(t, "nva", "Nguyễn Văn A")
		task := f.seedTask(t, "Học Golang", user.ID)

		rec := f.do(http.MethodPost, "/tasks/"+task.ID.String()+"/done", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Done)
		require.NotNil(t, resp.DoneAt)
	})

	t.Run("unknown_task", func(t *testing.T) {
		f := newTaskHandlerFixture()

		rec := f.do(http.MethodPost, "/tasks/22222222-2222-2222-2222-222222222222/done", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})

	t.Run("malformed_id", func(t *testing.T) {
		f := newTaskHandlerFixture()

		rec := f.do(http.MethodPost, "/tasks/not-a-uuid/done", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid task ID")
	})
}
