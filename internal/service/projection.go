package service

import (
	"time"

	"sitereport/internal/model"
)

// Placeholders for relations that cannot be resolved.
const (
	NoProjectPlaceholder = "No project"
	UnknownAuthor        = "Unknown"
)

// ProjectView is the client projection of a project.
type ProjectView struct {
	ID        uint    `json:"id"`
	Number    string  `json:"number"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	WorkType  string  `json:"work_type"`
	Builder   string  `json:"builder"`
	Status    string  `json:"status"`
	StartDate *string `json:"start_date"`
}

// ReportView is the client projection of a report.
type ReportView struct {
	ID          uint    `json:"id"`
	Number      string  `json:"number"`
	Title       string  `json:"title"`
	ProjectID   *uint   `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Status      string  `json:"status"`
	ReportDate  *string `json:"report_date"`
	AuthorName  string  `json:"author_name,omitempty"`
	CreatedAt   *string `json:"created_at"`
}

// VisitView is the client projection of a visit.
type VisitView struct {
	ID          uint    `json:"id"`
	Number      string  `json:"number"`
	ProjectID   *uint   `json:"project_id"`
	ProjectName string  `json:"project_name"`
	StartAt     *string `json:"start_at"`
	EndAt       *string `json:"end_at"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
}

// timestamp renders t as RFC 3339 in UTC, or nil when absent.
func timestamp(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func projectViews(projects []model.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectView{
			ID:        p.ID,
			Number:    p.Number,
			Name:      p.Name,
			Address:   p.Address,
			WorkType:  p.WorkType,
			Builder:   p.Builder,
			Status:    p.Status,
			StartDate: timestamp(p.StartDate),
		})
	}
	return views
}

func reportView(r model.Report, withAuthor bool) ReportView {
	view := ReportView{
		ID:          r.ID,
		Number:      r.Number,
		Title:       r.Title,
		ProjectID:   r.ProjectID,
		ProjectName: NoProjectPlaceholder,
		Status:      r.Status,
		ReportDate:  timestamp(r.ReportDate),
		CreatedAt:   timestamp(&r.CreatedAt),
	}
	if r.Project != nil {
		view.ProjectName = r.Project.Name
	}
	if withAuthor {
		view.AuthorName = UnknownAuthor
		if r.Author != nil {
			view.AuthorName = r.Author.FullName
		}
	}
	return view
}

func reportViews(reports []model.Report, withAuthor bool) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, reportView(r, withAuthor))
	}
	return views
}

func visitViews(visits []model.Visit) []VisitView {
	views := make([]VisitView, 0, len(visits))
	for _, v := range visits {
		name := v.ProjectName
		if v.Project != nil {
			name = v.Project.Name
		}
		if name == "" {
			name = NoProjectPlaceholder
		}
		views = append(views, VisitView{
			ID:          v.ID,
			Number:      v.Number,
			ProjectID:   v.ProjectID,
			ProjectName: name,
			StartAt:     timestamp(v.StartAt),
			EndAt:       timestamp(v.EndAt),
			Status:      v.Status,
			Notes:       v.Notes,
		})
	}
	return views
}
