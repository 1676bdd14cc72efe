package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"github.com/alexanderramin/freightdesk/internal/refdata"
	"github.com/alexanderramin/freightdesk/internal/service"
	"github.com/alexanderramin/freightdesk/internal/submit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds everything the commands need.
type App struct {
	Backend    backend.Client
	Assembler  *submit.Assembler
	Records    service.RecordService
	JobNumbers service.JobNumberService
	Drafts     service.DraftService
	Notify     *Notifier
	Prompter   Prompter
	Log        logrus.FieldLogger

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive() && a.Prompter != nil
}

// newLoader gives each form its own reference-data state.
func (a *App) newLoader() *refdata.Loader {
	return refdata.NewLoader(a.Backend, refdata.DefaultLookups(), a.Log)
}

// seed returns the starting values of a new record. A job with no number
// in given gets one allocated up front; a local fallback is flagged.
func (a *App) seed(ctx context.Context, e *forms.Entity, given form.Values) form.Values {
	vals := form.Values{}
	if e.Initial != nil {
		vals = e.Initial(a.now())
	}
	if e.Name == "job" && vals["jobNumber"] == "" && given.String("jobNumber") == "" {
		number, fallback := a.JobNumbers.Next(ctx)
		if fallback {
			a.Notify.Warn("Job number service unavailable; using " + number)
		}
		vals["jobNumber"] = number
	}
	return vals
}

// NewRootCmd creates the "freightdesk" command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "freightdesk",
		Short:         "Back-office entry for freight job orders and bills of lading",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEntityCmd(app, forms.Job(), "job"),
		newEntityCmd(app, forms.BillOfLading(), "bl"),
		newLookupCmd(app),
		newJobNoCmd(app),
		newDraftCmd(app),
	)
	return root
}
