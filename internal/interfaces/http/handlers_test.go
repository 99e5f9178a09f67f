package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadflow/ethics-review/internal/application/service"
	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

type stubTransitionService struct {
	actFunc func(ctx context.Context, req service.TransitionRequest) (*service.TransitionResult, error)
}

func (s *stubTransitionService) Act(ctx context.Context, req service.TransitionRequest) (*service.TransitionResult, error) {
	return s.actFunc(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

// processRouter builds a router with an authenticated committee member and
// only the transition endpoint mounted.
func processRouter(transition service.TransitionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := NewHandlers(transition, nil, nil, nil, nil, nil, nopLogger{})
	router.POST("/api/process",
		func(c *gin.Context) {
			c.Set(identityKey, Identity{UserID: 3, Role: workflow.RoleCommittee})
		},
		handlers.Act,
	)
	return router
}

func postProcess(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/process", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAct_Success(t *testing.T) {
	transition := &stubTransitionService{
		actFunc: func(ctx context.Context, req service.TransitionRequest) (*service.TransitionResult, error) {
			assert.Equal(t, int64(10), req.ApplicationID)
			assert.Equal(t, int64(3), req.ActorID)
			assert.Equal(t, "committee", req.ActorRole)
			return &service.TransitionResult{
				Process:   &entity.ProcessState{ID: 1, ApplicationID: 10, CurrentStep: "rector"},
				NewStatus: "Pending",
			}, nil
		},
	}

	rec := postProcess(t, processRouter(transition), gin.H{
		"application_id": 10,
		"action":         "approve",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message   string              `json:"message"`
		Process   entity.ProcessState `json:"process"`
		NewStatus string              `json:"newStatus"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rector", resp.Process.CurrentStep)
	assert.Equal(t, "Pending", resp.NewStatus)
}

func TestAct_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid action",
			err:        workflow.ErrInvalidAction,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid action",
		},
		{
			name:       "process not found",
			err:        service.ErrProcessNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Process not found",
		},
		{
			name:       "wrong role for step",
			err:        &workflow.ForbiddenError{Role: workflow.RoleFaculty, Step: workflow.StepRector},
			wantStatus: http.StatusForbidden,
			wantError:  "Access denied. Role faculty cannot act on step rector",
		},
		{
			name:       "process already done",
			err:        workflow.ErrInvalidTransition,
			wantStatus: http.StatusBadRequest,
			wantError:  "Cannot approve: process already done",
		},
		{
			name:       "concurrent transition lost",
			err:        service.ErrStaleProcess,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "no active workflow",
			err:        service.ErrNoActiveWorkflow,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unexpected failure",
			err:        errors.New("db gone"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transition := &stubTransitionService{
				actFunc: func(ctx context.Context, req service.TransitionRequest) (*service.TransitionResult, error) {
					return nil, tt.err
				},
			}

			rec := postProcess(t, processRouter(transition), gin.H{
				"application_id": 10,
				"action":         "approve",
			})

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var resp struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestAct_MissingFields(t *testing.T) {
	transition := &stubTransitionService{
		actFunc: func(ctx context.Context, req service.TransitionRequest) (*service.TransitionResult, error) {
			t.Fatal("service must not be called for an invalid body")
			return nil, nil
		},
	}

	rec := postProcess(t, processRouter(transition), gin.H{"action": "approve"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAct_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := NewHandlers(&stubTransitionService{}, nil, nil, nil, nil, nil, nopLogger{})
	router.POST("/api/process", handlers.Act)

	rec := postProcess(t, router, gin.H{"application_id": 10, "action": "approve"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
