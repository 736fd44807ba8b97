package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/codecollector/internal/app"
	"github.com/quantmind-br/codecollector/internal/filter"
	"github.com/quantmind-br/codecollector/internal/output"
)

// Source modes offered by the collect form
const (
	ModeZip    = "zip"
	ModeGitHub = "github"
)

// CollectValues are the answers of the interactive collect form
type CollectValues struct {
	Mode        string
	ZipPath     string
	RepoURL     string
	Extensions  string
	ProcessAll  bool
	ProjectName string
}

// NewCollectValues seeds the form from configured defaults
func NewCollectValues(extensions string, processAll bool) *CollectValues {
	if strings.TrimSpace(extensions) == "" {
		extensions = filter.DefaultExtensions
	}
	return &CollectValues{
		Mode:       ModeZip,
		Extensions: extensions,
		ProcessAll: processAll,
	}
}

// Spec returns the extension filter the answers describe
func (v *CollectValues) Spec() filter.Spec {
	return filter.Parse(v.Extensions, v.ProcessAll)
}

// Filename returns the output name for the answers
func (v *CollectValues) Filename() string {
	return output.NameFor(v.ProjectName)
}

// Target returns the zip path or repository URL, depending on Mode
func (v *CollectValues) Target() string {
	if v.Mode == ModeGitHub {
		return strings.TrimSpace(v.RepoURL)
	}
	return strings.TrimSpace(v.ZipPath)
}

// CreateCollectForm builds the source, filter and naming form
func CreateCollectForm(values *CollectValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("Source").
				Description("Where the code comes from").
				Options(
					huh.NewOption("Local .zip file", ModeZip),
					huh.NewOption("Public GitHub repository", ModeGitHub),
				).
				Value(&values.Mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("zip_path").
				Title("Zip File").
				Description("Path to the archive to collect").
				Value(&values.ZipPath).
				Placeholder("./project.zip").
				Validate(ValidateZipPath),
		).WithHideFunc(func() bool { return values.Mode != ModeZip }),
		huh.NewGroup(
			huh.NewInput().
				Key("repo_url").
				Title("Repository URL").
				Description("The main or master branch is downloaded").
				Value(&values.RepoURL).
				Placeholder("https://github.com/facebook/react").
				Validate(ValidateRepoURL),
		).WithHideFunc(func() bool { return values.Mode != ModeGitHub }),
		huh.NewGroup(
			huh.NewConfirm().
				Key("process_all").
				Title("Process All Files").
				Description("Ignore extensions and include every file").
				Value(&values.ProcessAll),

			huh.NewInput().
				Key("extensions").
				Title("Extensions").
				Description("Comma-separated, e.g. .go, .md").
				Value(&values.Extensions).
				Validate(ValidateExtensions(&values.ProcessAll)),

			huh.NewInput().
				Key("project_name").
				Title("Project Name").
				Description("Used for the output file name (optional)").
				Value(&values.ProjectName).
				Placeholder("my-project"),
		),
	).WithTheme(FormTheme(false))
}

// RunCollectForm asks the user for a source. huh.ErrUserAborted is returned on ctrl+c.
func RunCollectForm(values *CollectValues, accessible bool) error {
	form := CreateCollectForm(values)
	if accessible {
		form = form.WithTheme(FormTheme(true)).WithAccessible(true)
	}
	return form.Run()
}

// RenderSummary renders the outcome of a pipeline run. path is where the
// document was written; it may be empty for dry runs.
func RenderSummary(s app.State, path string) string {
	switch s.Phase {
	case app.PhaseSuccess:
		var b strings.Builder
		b.WriteString(SuccessStyle.Render("Collected " + pluralFiles(len(s.Result.Members))))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render("Source: " + s.Source.Label()))
		b.WriteString("\n")
		if path != "" {
			b.WriteString(DescriptionStyle.Render("Output: " + path))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for _, m := range s.Result.Members {
			b.WriteString(MemberStyle.Render(m) + "\n")
		}
		return SummaryBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
	case app.PhaseError:
		return FailureBoxStyle.Render(ErrorStyle.Render(s.Message))
	default:
		return WarnStyle.Render("Nothing to report (" + s.Phase.String() + ")")
	}
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
