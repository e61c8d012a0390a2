package domain

const (
	NavbarTypeProject  = "project"
	NavbarTypeWorkflow = "workflow"
	NavbarTypeGroup    = "group"
)

// NavbarProjectData is one entry of the navigation data the API serves for
// the current user: projects, and the workflows/applications inside them.
type NavbarProjectData struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ApplicationName string `json:"application_name,omitempty"`
	WorkflowName    string `json:"workflow_name,omitempty"`
	Type            string `json:"type"`
	Favorite        bool   `json:"favorite"`
}

// ProjectChoices keeps the project entries of data, in order, behind a
// blank entry standing for "all projects".
func ProjectChoices(data []NavbarProjectData) []NavbarProjectData {
	out := []NavbarProjectData{{Type: NavbarTypeProject, Name: " "}}
	for _, d := range data {
		if d.Type == NavbarTypeProject {
			out = append(out, d)
		}
	}
	return out
}
