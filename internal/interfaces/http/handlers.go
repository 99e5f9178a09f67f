package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadflow/ethics-review/internal/application/service"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	transitionService   service.TransitionService
	workflowService     service.WorkflowService
	applicationService  service.ApplicationService
	notificationService service.NotificationService
	authService         service.AuthService
	reportService       service.ReportService
	logger              Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	transitionService service.TransitionService,
	workflowService service.WorkflowService,
	applicationService service.ApplicationService,
	notificationService service.NotificationService,
	authService service.AuthService,
	reportService service.ReportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		transitionService:   transitionService,
		workflowService:     workflowService,
		applicationService:  applicationService,
		notificationService: notificationService,
		authService:         authService,
		reportService:       reportService,
		logger:              logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ---- process ----

// ProcessRequest is the body of POST /api/process
type ProcessRequest struct {
	ApplicationID int64  `json:"application_id" binding:"required"`
	Action        string `json:"action" binding:"required"`
	Comment       string `json:"comment"`
}

// Act handles POST /api/process
func (h *Handlers) Act(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application_id and action are required"})
		return
	}

	result, err := h.transitionService.Act(c.Request.Context(), service.TransitionRequest{
		ApplicationID: req.ApplicationID,
		ActorID:       identity.UserID,
		ActorRole:     identity.Role.String(),
		Action:        req.Action,
		Comment:       req.Comment,
	})
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Action processed",
		"process":   result.Process,
		"newStatus": result.NewStatus,
	})
}

func (h *Handlers) respondTransitionError(c *gin.Context, err error) {
	var forbidden *workflow.ForbiddenError

	switch {
	case errors.Is(err, workflow.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	case errors.Is(err, workflow.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
	case errors.Is(err, service.ErrProcessNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Process not found"})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Access denied. Role %s cannot act on step %s", forbidden.Role, forbidden.Step),
		})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot approve: process already done"})
	case errors.Is(err, service.ErrStaleProcess):
		c.JSON(http.StatusConflict, gin.H{"error": "Process was updated concurrently, please retry"})
	case errors.Is(err, service.ErrNoActiveWorkflow):
		c.JSON(http.StatusConflict, gin.H{"error": "No active workflow definition"})
	default:
		h.logger.Error("Transition failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// ---- workflows ----

// WorkflowRequest accepts the variable-length steps array and, for backward
// compatibility, the legacy fixed five-slot form.
type WorkflowRequest struct {
	Steps []string `json:"steps"`

	FirstStep  string `json:"first_step"`
	SecondStep string `json:"second_step"`
	ThirdStep  string `json:"third_step"`
	FourthStep string `json:"fourth_step"`
	FifthStep  string `json:"fifth_step"`
}

func (r *WorkflowRequest) steps() []string {
	if len(r.Steps) > 0 {
		return r.Steps
	}
	var steps []string
	for _, slot := range []string{r.FirstStep, r.SecondStep, r.ThirdStep, r.FourthStep, r.FifthStep} {
		if slot != "" {
			steps = append(steps, slot)
		}
	}
	return steps
}

// CreateWorkflow handles POST /api/workflows
func (h *Handlers) CreateWorkflow(c *gin.Context) {
	var req WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	def, err := h.workflowService.Create(c.Request.Context(), req.steps())
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Workflow created", "workflow": def})
}

// UpdateWorkflow handles PUT /api/workflows/:id
func (h *Handlers) UpdateWorkflow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	def, err := h.workflowService.Update(c.Request.Context(), id, req.steps())
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workflow updated", "workflow": def})
}

// DeleteWorkflow handles DELETE /api/workflows/:id
func (h *Handlers) DeleteWorkflow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	def, err := h.workflowService.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workflow deleted", "workflow": def})
}

// SetCurrentWorkflow handles PUT /api/workflows/:id/set-current
func (h *Handlers) SetCurrentWorkflow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	def, err := h.workflowService.SetCurrent(c.Request.Context(), id)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workflow set as current", "workflow": def})
}

// ListWorkflows handles GET /api/workflows
func (h *Handlers) ListWorkflows(c *gin.Context) {
	defs, err := h.workflowService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list workflows", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflows": defs})
}

func (h *Handlers) respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workflow not found"})
	case errors.Is(err, service.ErrDuplicateWorkflow):
		c.JSON(http.StatusConflict, gin.H{"error": "A workflow with this step sequence already exists"})
	case errors.Is(err, service.ErrWorkflowInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "The current workflow cannot be deleted"})
	case errors.Is(err, workflow.ErrInvalidStep), errors.Is(err, workflow.ErrEmptySequence):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Workflow operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// ---- applications ----

// SubmitApplicationRequest is the body of POST /api/applications
type SubmitApplicationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	FacultyID   int64  `json:"faculty_id" binding:"required"`
	CommitteeID *int64 `json:"committee_id"`
	Documents   []struct {
		FileName string `json:"file_name"`
		URL      string `json:"url"`
	} `json:"documents"`
}

// SubmitApplication handles POST /api/applications
func (h *Handlers) SubmitApplication(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and faculty_id are required"})
		return
	}

	docs := make([]service.DocumentInput, 0, len(req.Documents))
	for _, doc := range req.Documents {
		docs = append(docs, service.DocumentInput{FileName: doc.FileName, URL: doc.URL})
	}

	app, err := h.applicationService.Submit(c.Request.Context(), service.SubmitRequest{
		ResearcherID: identity.UserID,
		Title:        req.Title,
		Description:  req.Description,
		FacultyID:    req.FacultyID,
		CommitteeID:  req.CommitteeID,
		Documents:    docs,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoActiveWorkflow) {
			c.JSON(http.StatusConflict, gin.H{"error": "No active workflow definition"})
			return
		}
		h.logger.Error("Failed to submit application", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted", "application": app})
}

// UpdateApplicationRequest is the body of PUT /api/applications/:id
type UpdateApplicationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateApplication handles PUT /api/applications/:id
func (h *Handlers) UpdateApplication(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	app, err := h.applicationService.UpdateDraft(c.Request.Context(), id, identity.UserID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning researcher may edit an application"})
		case errors.Is(err, service.ErrNotEditable):
			c.JSON(http.StatusConflict, gin.H{"error": "Application is already under review"})
		default:
			h.logger.Error("Failed to update application", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application updated", "application": app})
}

// ListApplications handles GET /api/applications
func (h *Handlers) ListApplications(c *gin.Context) {
	apps, err := h.applicationService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list applications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// ListArchivedApplications handles GET /api/applications/archived
func (h *Handlers) ListArchivedApplications(c *gin.Context) {
	apps, err := h.applicationService.ListArchived(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list archived applications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// GetApplication handles GET /api/applications/:id
func (h *Handlers) GetApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		h.logger.Error("Failed to get application", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	docs, err := h.applicationService.GetDocuments(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get documents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": app, "documents": docs})
}

// ListApplicationReviews handles GET /api/applications/:id/reviews
func (h *Handlers) ListApplicationReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.applicationService.GetReviews(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list reviews", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ---- auth ----

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.logger.Error("Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required"`
	FacultyID   *int64 `json:"faculty_id"`
	CommitteeID *int64 `json:"committee_id"`
}

// Register handles POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, password and role are required"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		FacultyID:   req.FacultyID,
		CommitteeID: req.CommitteeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, workflow.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "user": user})
}

// ---- notifications ----

// ListNotifications handles GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	notifications, err := h.notificationService.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("Failed to list notifications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id, identity.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your notification"})
		default:
			h.logger.Error("Failed to mark notification read", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// ---- reports ----

// ArchivedReport handles GET /api/reports/archived
func (h *Handlers) ArchivedReport(c *gin.Context) {
	data, err := h.reportService.ArchivedApplications(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to generate report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="archived_applications.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
