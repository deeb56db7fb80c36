package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/client"
	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/metrics"
	"form-template-api/internal/render"
	"form-template-api/internal/repository"
	"form-template-api/internal/response"
	"form-template-api/internal/sequence"
)

const selectionDateLayout = "2006-01-02"

// FormSequenceService runs the multi-step form wizard of an order.
// userID is the authenticated caller, or nil when authentication is off;
// a sequence owned by another customer is reported as not found.
type FormSequenceService interface {
	Start(ctx context.Context, userID *uuid.UUID, req *dto.StartSequenceRequest) (*dto.SequenceResponse, error)
	Get(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error)
	Select(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SelectionRequest) (*dto.SequenceResponse, error)
	SubmitStep(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SubmitStepRequest) (*dto.SequenceResponse, error)
	GoBack(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error)
	UpdateCart(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.UpdateCartRequest) (*dto.SequenceResponse, error)
	Cancel(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) error
}

// formSequenceServiceImpl is the implementation of FormSequenceService
type formSequenceServiceImpl struct {
	categoryService FormCategoryService
	templateRepo    repository.FormTemplateRepository
	submissionRepo  repository.FormSubmissionRepository
	uploadRepo      repository.FormUploadRepository
	stateRepo       repository.SequenceStateRepository
	orderClient     client.OrderClient
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewFormSequenceService creates a new instance of FormSequenceService
func NewFormSequenceService(
	categoryService FormCategoryService,
	templateRepo repository.FormTemplateRepository,
	submissionRepo repository.FormSubmissionRepository,
	uploadRepo repository.FormUploadRepository,
	stateRepo repository.SequenceStateRepository,
	orderClient client.OrderClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) FormSequenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if orderClient == nil {
		orderClient = client.NewNoOpOrderClient()
	}
	return &formSequenceServiceImpl{
		categoryService: categoryService,
		templateRepo:    templateRepo,
		submissionRepo:  submissionRepo,
		uploadRepo:      uploadRepo,
		stateRepo:       stateRepo,
		orderClient:     orderClient,
		metrics:         m,
		logger:          logger,
	}
}

// batchSubmitter holds the steps handed over by the controller so that
// they can be written in one transaction afterwards
type batchSubmitter struct {
	steps []sequence.Step
}

func (b *batchSubmitter) Submit(ctx context.Context, steps []sequence.Step) error {
	b.steps = steps
	return nil
}

// Start resolves the templates of the given categories and stores a new
// sequence. A sequence without applicable templates is stored as idle.
func (s *formSequenceServiceImpl) Start(ctx context.Context, userID *uuid.UUID, req *dto.StartSequenceRequest) (*dto.SequenceResponse, error) {
	customerID := userID
	if customerID == nil {
		customerID = req.CustomerID
	}
	if customerID == nil || *customerID == uuid.Nil {
		return nil, response.NewValidationError("customerId is required", "")
	}

	templates, err := s.categoryService.TemplatesForCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	ctrl := sequence.New(templates, &batchSubmitter{})
	state := &repository.SequenceState{
		ID:          uuid.New(),
		CustomerID:  *customerID,
		OrderID:     req.OrderID,
		CategoryIDs: req.CategoryIDs,
		Snapshot:    ctrl.Snapshot(),
	}
	if err := s.save(ctx, state, ctrl); err != nil {
		return nil, err
	}

	s.metrics.RecordSequenceEvent(metrics.SequenceStarted)
	s.logger.Info("Form sequence started",
		zap.String("sequence_id", state.ID.String()),
		zap.Int("steps", ctrl.Steps()),
	)

	return toSequenceResponse(state, ctrl), nil
}

// Get returns the sequence with its current step rendered
func (s *formSequenceServiceImpl) Get(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error) {
	state, ctrl, _, rebuilt, err := s.load(ctx, userID, sequenceID)
	if err != nil {
		return nil, err
	}
	if rebuilt {
		if err := s.save(ctx, state, ctrl); err != nil {
			return nil, err
		}
	}
	return toSequenceResponse(state, ctrl), nil
}

// Select stages a date or a file for the current step
func (s *formSequenceServiceImpl) Select(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SelectionRequest) (*dto.SequenceResponse, error) {
	if (req.Date == nil) == (req.File == nil) {
		return nil, response.NewValidationError("Exactly one of date or file is required", "")
	}

	state, ctrl, _, _, err := s.load(ctx, userID, sequenceID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(selectionDateLayout, *req.Date)
		if err != nil {
			return nil, response.NewValidationError("Invalid date, expected YYYY-MM-DD", err.Error())
		}
		if err := ctrl.SelectDate(req.ElementID, date); err != nil {
			return nil, sequenceError(err)
		}
	} else {
		uploadID := req.File.UploadID
		fields, err := checkUploads(ctx, s.uploadRepo, state.CustomerID, []domain.FieldValue{
			{ElementID: req.ElementID, FileUploadID: &uploadID},
		})
		if err != nil {
			return nil, internalError("Failed to fetch uploads", err)
		}
		if fields != nil {
			return nil, response.NewFormValidationError(fields)
		}
		if err := ctrl.SelectFile(req.ElementID, render.FileRef{UploadID: uploadID, Name: req.File.Name}); err != nil {
			return nil, sequenceError(err)
		}
	}

	if err := s.save(ctx, state, ctrl); err != nil {
		return nil, err
	}
	return toSequenceResponse(state, ctrl), nil
}

// SubmitStep validates and stores the current step. Submitting the last
// step writes one submission per step in a single transaction; if that
// fails the sequence stays on the last step.
func (s *formSequenceServiceImpl) SubmitStep(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.SubmitStepRequest) (*dto.SequenceResponse, error) {
	state, ctrl, submitter, _, err := s.load(ctx, userID, sequenceID)
	if err != nil {
		return nil, err
	}

	tmpl := ctrl.Current()
	if tmpl == nil {
		return nil, sequenceError(sequence.ErrNotActive)
	}

	data, fieldErrs := render.StateFromValues(tmpl, req.Values)
	if fieldErrs != nil {
		s.metrics.RecordValidationFailure("sequence")
		return nil, response.NewFormValidationError(fieldErrs)
	}

	merged := data.Clone()
	merged.Merge(ctrl.Selections())
	if appErr := s.verifyUploads(ctx, state.CustomerID, render.Records(tmpl, merged)); appErr != nil {
		return nil, appErr
	}

	if err := ctrl.SubmitStep(ctx, data); err != nil {
		return nil, s.stepError(err)
	}

	if ctrl.Phase() == sequence.PhaseComplete {
		if err := s.persistSubmissions(ctx, state, submitter); err != nil {
			return nil, err
		}
	} else {
		s.metrics.RecordSequenceEvent(metrics.SequenceAdvanced)
	}

	if err := s.save(ctx, state, ctrl); err != nil {
		return nil, err
	}
	return toSequenceResponse(state, ctrl), nil
}

// GoBack returns to the previous step
func (s *formSequenceServiceImpl) GoBack(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*dto.SequenceResponse, error) {
	state, ctrl, _, _, err := s.load(ctx, userID, sequenceID)
	if err != nil {
		return nil, err
	}
	if err := ctrl.GoBack(); err != nil {
		return nil, sequenceError(err)
	}
	if err := s.save(ctx, state, ctrl); err != nil {
		return nil, err
	}
	return toSequenceResponse(state, ctrl), nil
}

// UpdateCart rebuilds the sequence for a changed set of categories.
// Progress is kept when the resulting template list is unchanged.
func (s *formSequenceServiceImpl) UpdateCart(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID, req *dto.UpdateCartRequest) (*dto.SequenceResponse, error) {
	state, ctrl, _, _, err := s.load(ctx, userID, sequenceID)
	if err != nil {
		return nil, err
	}
	if ctrl.Phase() == sequence.PhaseComplete {
		return nil, response.NewUnprocessableError("Form sequence is already complete", "")
	}

	templates, err := s.categoryService.TemplatesForCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	state.CategoryIDs = req.CategoryIDs
	if ctrl.Invalidate(templates) {
		s.metrics.RecordSequenceEvent(metrics.SequenceRebuilt)
		s.logger.Info("Form sequence rebuilt after cart change",
			zap.String("sequence_id", state.ID.String()),
			zap.Int("steps", ctrl.Steps()),
		)
	}

	if err := s.save(ctx, state, ctrl); err != nil {
		return nil, err
	}
	return toSequenceResponse(state, ctrl), nil
}

// Cancel discards the sequence. Nothing is submitted.
func (s *formSequenceServiceImpl) Cancel(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) error {
	if _, err := s.getState(ctx, userID, sequenceID); err != nil {
		return err
	}
	if err := s.stateRepo.Delete(ctx, sequenceID); err != nil {
		return internalError("Failed to delete form sequence", err)
	}
	s.metrics.RecordSequenceEvent(metrics.SequenceCancelled)
	return nil
}

func (s *formSequenceServiceImpl) getState(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*repository.SequenceState, error) {
	state, err := s.stateRepo.Get(ctx, sequenceID)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFoundError("Form sequence not found", "")
		}
		return nil, internalError("Failed to fetch form sequence", err)
	}
	if userID != nil && *userID != state.CustomerID {
		return nil, response.NewNotFoundError("Form sequence not found", "")
	}
	return state, nil
}

// load restores the controller of a stored sequence. When one of its
// templates no longer exists the sequence is rebuilt from its categories
// and rebuilt is true.
func (s *formSequenceServiceImpl) load(ctx context.Context, userID *uuid.UUID, sequenceID uuid.UUID) (*repository.SequenceState, *sequence.Controller, *batchSubmitter, bool, error) {
	state, err := s.getState(ctx, userID, sequenceID)
	if err != nil {
		return nil, nil, nil, false, err
	}

	templates, err := s.templateRepo.FindByIDsWithElements(ctx, state.Snapshot.TemplateIDs)
	if err != nil {
		return nil, nil, nil, false, internalError("Failed to fetch form templates", err)
	}

	submitter := &batchSubmitter{}
	ctrl, err := sequence.Restore(state.Snapshot, templates, submitter)
	if err == nil {
		return state, ctrl, submitter, false, nil
	}
	if !errors.Is(err, sequence.ErrTemplateMismatch) {
		return nil, nil, nil, false, internalError("Failed to restore form sequence", err)
	}

	s.logger.Warn("Form sequence templates changed, rebuilding",
		zap.String("sequence_id", state.ID.String()),
	)
	templates, err = s.categoryService.TemplatesForCategories(ctx, state.CategoryIDs)
	if err != nil {
		return nil, nil, nil, false, err
	}
	s.metrics.RecordSequenceEvent(metrics.SequenceRebuilt)
	return state, sequence.New(templates, submitter), submitter, true, nil
}

func (s *formSequenceServiceImpl) save(ctx context.Context, state *repository.SequenceState, ctrl *sequence.Controller) error {
	state.Snapshot = ctrl.Snapshot()
	if err := s.stateRepo.Save(ctx, state); err != nil {
		return internalError("Failed to save form sequence", err)
	}
	return nil
}

func (s *formSequenceServiceImpl) verifyUploads(ctx context.Context, customerID uuid.UUID, records []domain.FieldValue) *response.AppError {
	fields, err := checkUploads(ctx, s.uploadRepo, customerID, records)
	if err != nil {
		return internalError("Failed to fetch uploads", err)
	}
	if fields != nil {
		s.metrics.RecordValidationFailure("sequence")
		return response.NewFormValidationError(fields)
	}
	return nil
}

// persistSubmissions writes every submitted step and notifies the order service
func (s *formSequenceServiceImpl) persistSubmissions(ctx context.Context, state *repository.SequenceState, submitter *batchSubmitter) error {
	var all []domain.FieldValue
	for _, step := range submitter.steps {
		all = append(all, step.Values...)
	}
	if appErr := s.verifyUploads(ctx, state.CustomerID, all); appErr != nil {
		return appErr
	}

	sequenceID := state.ID
	submissions := make([]*domain.FormSubmission, len(submitter.steps))
	for i, step := range submitter.steps {
		submissions[i] = newSubmission(step.TemplateID, state.CustomerID, state.OrderID, &sequenceID,
			domain.SubmissionStatusPending, step.Values)
	}
	if err := s.submissionRepo.CreateBatch(ctx, submissions); err != nil {
		return internalError("Failed to create form submissions", err)
	}

	state.SubmissionIDs = make([]uuid.UUID, len(submissions))
	for i, sub := range submissions {
		state.SubmissionIDs[i] = sub.ID
	}

	s.metrics.AddSubmissionsCreated(len(submissions))
	s.metrics.RecordSequenceEvent(metrics.SequenceCompleted)
	s.logger.Info("Form sequence completed",
		zap.String("sequence_id", state.ID.String()),
		zap.Int("submissions", len(submissions)),
	)

	if state.OrderID != nil {
		if err := s.orderClient.NotifyFormsCompleted(ctx, client.FormsCompletedEvent{
			OrderID:       *state.OrderID,
			CustomerID:    state.CustomerID,
			SequenceID:    state.ID,
			SubmissionIDs: state.SubmissionIDs,
		}); err != nil {
			s.logger.Warn("Failed to notify order service",
				zap.String("order_id", state.OrderID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *formSequenceServiceImpl) stepError(err error) error {
	var verr *sequence.ValidationError
	if errors.As(err, &verr) {
		s.metrics.RecordValidationFailure("sequence")
		return response.NewFormValidationError(verr.Fields)
	}
	return sequenceError(err)
}

// sequenceError maps controller errors to API errors
func sequenceError(err error) error {
	switch {
	case errors.Is(err, sequence.ErrNotActive):
		return response.NewUnprocessableError("Form sequence is not active", "")
	case errors.Is(err, sequence.ErrNoPreviousStep):
		return response.NewUnprocessableError("Already at the first step", "")
	case errors.Is(err, sequence.ErrUnknownElement):
		return response.NewValidationError("Element is not part of the current step", "")
	}
	return internalError("Form sequence failed", err)
}

func toSequenceResponse(state *repository.SequenceState, ctrl *sequence.Controller) *dto.SequenceResponse {
	templates := ctrl.Templates()
	steps := make([]dto.SequenceStepSummary, len(templates))
	for i, t := range templates {
		steps[i] = dto.SequenceStepSummary{TemplateID: t.ID, Name: t.Name}
	}

	resp := &dto.SequenceResponse{
		SequenceID:       state.ID,
		Phase:            string(ctrl.Phase()),
		NoApplicableForm: ctrl.NoApplicableForm(),
		StepIndex:        ctrl.Index(),
		TotalSteps:       ctrl.Steps(),
		Steps:            steps,
		SubmissionIDs:    state.SubmissionIDs,
	}
	if cur := ctrl.Current(); cur != nil {
		resp.Current = &dto.SequenceStepResponse{
			TemplateID:  cur.ID,
			Name:        cur.Name,
			Description: cur.Description,
			Fields:      render.RenderTemplate(cur, ctrl.CurrentState(), nil),
		}
	}
	return resp
}
