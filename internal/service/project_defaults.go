package service

import (
	"github.com/samber/lo"

	"client-portal-api/internal/domain"
)

type phaseTemplate struct {
	name         string
	nextSteps    string
	tasks        []string
	deliverables []string
}

// defaultPhases is the structure every new project starts with.
var defaultPhases = [domain.PhaseCount]phaseTemplate{
	{
		name:      "Discovery",
		nextSteps: "Initial consultation and project kickoff",
		tasks: []string{
			"Initial consultation call",
			"Send client questionnaire",
			"Review competitors and inspiration",
			"Define project goals",
			"Contract signed",
		},
		deliverables: []string{"Signed Contract", "Project Brief"},
	},
	{
		name:      "Strategy",
		nextSteps: "Define site architecture and content strategy",
		tasks: []string{
			"Create sitemap",
			"Define user flows",
			"Content strategy document",
			"Technical requirements spec",
		},
		deliverables: []string{"Site Architecture", "Content Strategy Doc"},
	},
	{
		name:      "Design",
		nextSteps: "Create mood board and visual designs",
		tasks: []string{
			"Create mood board",
			"Define style guide",
			"Design homepage",
			"Design inner pages",
			"Mobile responsive designs",
			"Final design approval",
		},
		deliverables: []string{"Mood Board", "Style Guide", "Homepage Design", "Full Site Designs"},
	},
	{
		name:      "Development",
		nextSteps: "Build the website",
		tasks: []string{
			"Set up development environment",
			"Build component library",
			"Develop homepage",
			"Build remaining pages",
			"Implement animations",
			"CMS integration",
		},
		deliverables: []string{"Staging Site", "CMS Setup"},
	},
	{
		name:      "Launch",
		nextSteps: "Final testing and go live",
		tasks: []string{
			"QA testing",
			"SEO optimization",
			"Analytics setup",
			"Final client walkthrough",
			"Go live!",
		},
		deliverables: []string{"Live Website", "Training Documentation"},
	},
}

// initialPhaseStatus is in-progress for the first phase and upcoming for the rest.
func initialPhaseStatus(order int) domain.PhaseStatus {
	if order == 0 {
		return domain.PhaseStatusInProgress
	}
	return domain.PhaseStatusUpcoming
}

// buildDefaultPhases returns the unsaved phase tree for a new project.
func buildDefaultPhases() []domain.Phase {
	phases := make([]domain.Phase, 0, domain.PhaseCount)
	for order, tpl := range defaultPhases {
		phases = append(phases, domain.Phase{
			PhaseOrder: order,
			Name:       tpl.name,
			Status:     initialPhaseStatus(order),
			NextSteps:  tpl.nextSteps,
			Tasks: lo.Map(tpl.tasks, func(name string, i int) domain.Task {
				return domain.Task{Name: name, TaskOrder: i}
			}),
			Deliverables: lo.Map(tpl.deliverables, func(name string, i int) domain.Deliverable {
				return domain.Deliverable{
					Name:             name,
					Status:           domain.DeliverableStatusNotStarted,
					DeliverableOrder: i,
				}
			}),
		})
	}
	return phases
}
