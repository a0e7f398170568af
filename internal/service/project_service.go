package service

import (
	"errors"
	"sort"
	"strings"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
	"aman-backend/pkg/validator"
)

var ErrNotProjectOwner = errors.New("project does not belong to this client")

type ProjectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	if repo == nil {
		return nil
	}
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List() ([]models.Project, error) {
	return s.repo.List()
}

func (s *ProjectService) ListByClient(clientID uint) ([]models.Project, error) {
	return s.repo.ListByClient(clientID)
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	return s.repo.GetByID(id)
}

// GetForClient loads a project and checks ownership; clients only ever see
// their own projects.
func (s *ProjectService) GetForClient(id, clientID uint) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}

func (s *ProjectService) Create(req models.CreateProjectRequest) (*models.Project, error) {
	if req.Name.Empty() {
		return nil, errors.New("project name is required")
	}

	phases := normalizePhases(req.Phases)
	project := &models.Project{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Name:      req.Name.Trimmed(),
		Status:    models.ProjectActive,
		Phases:    models.PhaseList(phases),
		Progress:  overallProgress(phases),
	}

	if err := s.repo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdatePhase mutates one phase and recomputes the project roll-up. A phase
// marked done counts as 100 regardless of its stored progress value.
func (s *ProjectService) UpdatePhase(projectID uint, phaseIndex int, req models.UpdateProjectPhaseRequest) (*models.Project, error) {
	project, err := s.repo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if phaseIndex < 0 || phaseIndex >= len(project.Phases) {
		return nil, errors.New("phase index out of range")
	}

	phase := &project.Phases[phaseIndex]
	if req.Progress != nil {
		phase.Progress = *req.Progress
	}
	if req.Done != nil {
		phase.Done = *req.Done
		if phase.Done {
			phase.Progress = 100
		}
	}

	project.Progress = overallProgress(project.Phases)
	if project.Progress >= 100 && len(project.Phases) > 0 {
		project.Status = models.ProjectCompleted
	}

	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateStatus(id uint, status string) (*models.Project, error) {
	switch models.ProjectStatus(status) {
	case models.ProjectActive, models.ProjectOnHold, models.ProjectCompleted:
	default:
		return nil, errors.New("unknown project status")
	}

	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	project.Status = models.ProjectStatus(status)
	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// SubmitModification records a client change request against their project.
func (s *ProjectService) SubmitModification(projectID, clientID uint, req models.CreateModificationRequest) (*models.ModificationRequest, error) {
	if _, err := s.GetForClient(projectID, clientID); err != nil {
		return nil, err
	}

	modification := &models.ModificationRequest{
		ProjectID: projectID,
		ClientID:  clientID,
		Subject:   strings.TrimSpace(req.Subject),
		Details:   validator.SanitizeString(strings.TrimSpace(req.Details)),
		Status:    models.ModificationPending,
	}
	if modification.Subject == "" {
		return nil, errors.New("subject is required")
	}

	if err := s.repo.CreateModification(modification); err != nil {
		return nil, err
	}
	return modification, nil
}

func (s *ProjectService) ListModifications(projectID uint) ([]models.ModificationRequest, error) {
	return s.repo.ListModifications(projectID)
}

func (s *ProjectService) PendingModifications() ([]models.ModificationRequest, error) {
	return s.repo.ListModificationsByStatus(models.ModificationPending)
}

// ReviewModification moves a request through its workflow. Pending requests
// may be approved or rejected; approved ones may be marked done.
func (s *ProjectService) ReviewModification(id uint, req models.ReviewModificationRequest) (*models.ModificationRequest, error) {
	modification, err := s.repo.GetModification(id)
	if err != nil {
		return nil, err
	}

	target := models.ModificationStatus(req.Status)
	switch modification.Status {
	case models.ModificationPending:
		if target != models.ModificationApproved && target != models.ModificationRejected {
			return nil, errors.New("pending requests can only be approved or rejected")
		}
	case models.ModificationApproved:
		if target != models.ModificationDone {
			return nil, errors.New("approved requests can only be marked done")
		}
	default:
		return nil, errors.New("request is already finalized")
	}

	modification.Status = target
	if note := strings.TrimSpace(req.AdminNote); note != "" {
		modification.AdminNote = note
	}

	if err := s.repo.UpdateModification(modification); err != nil {
		return nil, err
	}
	return modification, nil
}

func normalizePhases(phases []models.ProjectPhase) []models.ProjectPhase {
	out := make([]models.ProjectPhase, 0, len(phases))
	for i, phase := range phases {
		phase.Name = phase.Name.Trimmed()
		if phase.Order == 0 {
			phase.Order = i
		}
		if phase.Progress < 0 {
			phase.Progress = 0
		}
		if phase.Progress > 100 {
			phase.Progress = 100
		}
		if phase.Done {
			phase.Progress = 100
		}
		out = append(out, phase)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func overallProgress(phases []models.ProjectPhase) int {
	if len(phases) == 0 {
		return 0
	}
	total := 0
	for _, phase := range phases {
		total += phase.Progress
	}
	return total / len(phases)
}
