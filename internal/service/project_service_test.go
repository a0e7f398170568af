package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
)

type memoryProjectRepository struct {
	projects      map[uint]models.Project
	modifications map[uint]models.ModificationRequest
}

func newMemoryProjectRepository(projects ...models.Project) *memoryProjectRepository {
	repo := &memoryProjectRepository{
		projects:      map[uint]models.Project{},
		modifications: map[uint]models.ModificationRequest{},
	}
	for _, project := range projects {
		repo.projects[project.ID] = project
	}
	return repo
}

func (m *memoryProjectRepository) List() ([]models.Project, error) {
	var out []models.Project
	for _, project := range m.projects {
		out = append(out, project)
	}
	return out, nil
}

func (m *memoryProjectRepository) ListByClient(clientID uint) ([]models.Project, error) {
	var out []models.Project
	for _, project := range m.projects {
		if project.ClientID == clientID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (m *memoryProjectRepository) GetByID(id uint) (*models.Project, error) {
	if project, ok := m.projects[id]; ok {
		return &project, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryProjectRepository) Create(project *models.Project) error {
	project.ID = uint(len(m.projects) + 1)
	m.projects[project.ID] = *project
	return nil
}

func (m *memoryProjectRepository) Update(project *models.Project) error {
	m.projects[project.ID] = *project
	return nil
}

func (m *memoryProjectRepository) Delete(id uint) error {
	delete(m.projects, id)
	return nil
}

func (m *memoryProjectRepository) CreateModification(req *models.ModificationRequest) error {
	req.ID = uint(len(m.modifications) + 1)
	m.modifications[req.ID] = *req
	return nil
}

func (m *memoryProjectRepository) GetModification(id uint) (*models.ModificationRequest, error) {
	if req, ok := m.modifications[id]; ok {
		return &req, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryProjectRepository) ListModifications(projectID uint) ([]models.ModificationRequest, error) {
	var out []models.ModificationRequest
	for _, req := range m.modifications {
		if req.ProjectID == projectID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memoryProjectRepository) ListModificationsByStatus(status models.ModificationStatus) ([]models.ModificationRequest, error) {
	var out []models.ModificationRequest
	for _, req := range m.modifications {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memoryProjectRepository) UpdateModification(req *models.ModificationRequest) error {
	m.modifications[req.ID] = *req
	return nil
}

var _ repository.ProjectRepository = (*memoryProjectRepository)(nil)

func TestProjectCreate_NormalizesPhases(t *testing.T) {
	service := NewProjectService(newMemoryProjectRepository())

	project, err := service.Create(models.CreateProjectRequest{
		ClientID:  7,
		ServiceID: 1,
		Name:      models.BilingualText{En: " Pentest Q3 ", Ar: "اختبار الاختراق"},
		Phases: []models.ProjectPhase{
			{Name: models.BilingualText{En: " Recon "}, Progress: 150},
			{Name: models.BilingualText{En: "Exploit"}, Progress: -10, Order: 1},
			{Name: models.BilingualText{En: "Report"}, Done: true, Order: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if project.Name.En != "Pentest Q3" {
		t.Fatalf("project name not trimmed: %q", project.Name.En)
	}
	if project.Phases[0].Name.En != "Recon" || project.Phases[0].Progress != 100 {
		t.Fatalf("first phase not normalized: %+v", project.Phases[0])
	}
	if project.Phases[1].Progress != 0 {
		t.Fatalf("negative progress must clamp to 0, got %d", project.Phases[1].Progress)
	}
	if project.Phases[2].Progress != 100 {
		t.Fatalf("done phases count as 100, got %d", project.Phases[2].Progress)
	}
	// (100 + 0 + 100) / 3
	if project.Progress != 66 {
		t.Fatalf("expected roll-up 66, got %d", project.Progress)
	}
}

func TestProjectUpdatePhase_RollsUpAndCompletes(t *testing.T) {
	repo := newMemoryProjectRepository(models.Project{
		ID: 1, ClientID: 7, Status: models.ProjectActive,
		Phases: models.PhaseList{
			{Name: models.BilingualText{En: "Recon"}, Progress: 100, Done: true},
			{Name: models.BilingualText{En: "Report"}, Order: 1, Progress: 40},
		},
		Progress: 70,
	})
	service := NewProjectService(repo)

	done := true
	project, err := service.UpdatePhase(1, 1, models.UpdateProjectPhaseRequest{Done: &done})
	if err != nil {
		t.Fatalf("UpdatePhase returned error: %v", err)
	}
	if project.Progress != 100 {
		t.Fatalf("expected full roll-up, got %d", project.Progress)
	}
	if project.Status != models.ProjectCompleted {
		t.Fatalf("project with all phases done must complete, got %s", project.Status)
	}

	if _, err := service.UpdatePhase(1, 5, models.UpdateProjectPhaseRequest{Done: &done}); err == nil {
		t.Fatal("expected error for out-of-range phase index")
	}
}

func TestProjectGetForClient_EnforcesOwnership(t *testing.T) {
	service := NewProjectService(newMemoryProjectRepository(models.Project{ID: 1, ClientID: 7}))

	if _, err := service.GetForClient(1, 9); !errors.Is(err, ErrNotProjectOwner) {
		t.Fatalf("expected ErrNotProjectOwner, got %v", err)
	}
	if _, err := service.GetForClient(1, 7); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestSubmitModification_RequiresOwnershipAndSubject(t *testing.T) {
	service := NewProjectService(newMemoryProjectRepository(models.Project{ID: 1, ClientID: 7}))

	if _, err := service.SubmitModification(1, 9, models.CreateModificationRequest{Subject: "Scope change"}); !errors.Is(err, ErrNotProjectOwner) {
		t.Fatalf("expected ErrNotProjectOwner, got %v", err)
	}
	if _, err := service.SubmitModification(1, 7, models.CreateModificationRequest{Subject: "   "}); err == nil {
		t.Fatal("expected error for blank subject")
	}

	mod, err := service.SubmitModification(1, 7, models.CreateModificationRequest{
		Subject: " Scope change ",
		Details: "Add the <script>alert(1)</script> staging environment",
	})
	if err != nil {
		t.Fatalf("SubmitModification returned error: %v", err)
	}
	if mod.Subject != "Scope change" {
		t.Fatalf("subject not trimmed: %q", mod.Subject)
	}
	if mod.Details != "Add the  staging environment" {
		t.Fatalf("details not sanitized: %q", mod.Details)
	}
	if mod.Status != models.ModificationPending {
		t.Fatalf("new requests start pending, got %s", mod.Status)
	}
}

func TestReviewModification_Workflow(t *testing.T) {
	repo := newMemoryProjectRepository(models.Project{ID: 1, ClientID: 7})
	service := NewProjectService(repo)

	mod, err := service.SubmitModification(1, 7, models.CreateModificationRequest{Subject: "Scope change"})
	if err != nil {
		t.Fatalf("SubmitModification returned error: %v", err)
	}

	if _, err := service.ReviewModification(mod.ID, models.ReviewModificationRequest{Status: "done"}); err == nil {
		t.Fatal("pending request must not jump straight to done")
	}

	approved, err := service.ReviewModification(mod.ID, models.ReviewModificationRequest{Status: "approved", AdminNote: "OK for next sprint"})
	if err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if approved.Status != models.ModificationApproved || approved.AdminNote != "OK for next sprint" {
		t.Fatalf("unexpected approved state: %+v", approved)
	}

	if _, err := service.ReviewModification(mod.ID, models.ReviewModificationRequest{Status: "rejected"}); err == nil {
		t.Fatal("approved request can only move to done")
	}

	finished, err := service.ReviewModification(mod.ID, models.ReviewModificationRequest{Status: "done"})
	if err != nil {
		t.Fatalf("done returned error: %v", err)
	}
	if finished.Status != models.ModificationDone {
		t.Fatalf("expected done, got %s", finished.Status)
	}

	if _, err := service.ReviewModification(mod.ID, models.ReviewModificationRequest{Status: "approved"}); err == nil {
		t.Fatal("finalized request must reject further transitions")
	}
}
