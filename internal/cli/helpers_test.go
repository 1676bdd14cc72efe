package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/logging"
	"github.com/alexanderramin/freightdesk/internal/repository"
	"github.com/alexanderramin/freightdesk/internal/service"
	"github.com/alexanderramin/freightdesk/internal/submit"
	"github.com/alexanderramin/freightdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

type browseAnswer struct {
	action RowAction
	index  int
}

// scriptedPrompter answers prompts from queues. An exhausted queue answers
// conservatively: no field changes, "cancel", RowDone and "no".
type scriptedPrompter struct {
	fields   []map[string]string
	choices  []string
	confirms []bool
	browses  []browseAnswer

	fieldTitles  []string
	chooseTitles []string
	browseRows   [][][]string
	waits        int
}

func (p *scriptedPrompter) Fields(title string, st *form.State, names []string, _ OptionsFunc) error {
	p.fieldTitles = append(p.fieldTitles, title)
	if len(p.fields) == 0 {
		return nil
	}
	answers := p.fields[0]
	p.fields = p.fields[1:]
	for _, name := range names {
		f, ok := st.Schema().Field(name)
		if !ok || !promptable(f, st) {
			continue
		}
		if v, ok := answers[name]; ok {
			if err := st.Set(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *scriptedPrompter) Choose(title string, _ []Choice) (string, error) {
	p.chooseTitles = append(p.chooseTitles, title)
	if len(p.choices) == 0 {
		return "cancel", nil
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	return c, nil
}

func (p *scriptedPrompter) Confirm(string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, nil
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

func (p *scriptedPrompter) Browse(_ string, _ []string, rows [][]string) (RowAction, int, error) {
	p.browseRows = append(p.browseRows, rows)
	if len(p.browses) == 0 {
		return RowDone, -1, nil
	}
	b := p.browses[0]
	p.browses = p.browses[1:]
	return b.action, b.index, nil
}

func (p *scriptedPrompter) Wait(_ string, fn func()) error {
	p.waits++
	fn()
	return nil
}

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	app    *App
	fb     *testutil.FakeBackend
	drafts repository.DraftRepo
	out    *bytes.Buffer
	prompt *scriptedPrompter
}

// newTestEnv wires an App over a fake backend and an in-memory draft store.
// Prompts are scripted; interactive mode is on.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fb := testutil.NewFakeBackend()
	fb.JobNumber = "JOB-9"
	fb.SaveResp = json.RawMessage(`{"jobId":15,"blId":0}`)
	drafts := repository.NewSQLiteDraftRepo(testutil.NewTestDB(t))
	out := new(bytes.Buffer)
	notify := NewNotifier(out)
	log := logging.Discard()
	asm := submit.NewAssembler(fb, testutil.TestSession(), notify, log,
		submit.WithDrafts(drafts), submit.WithClock(func() time.Time { return testNow }))
	prompt := &scriptedPrompter{}

	app := &App{
		Backend:       fb,
		Assembler:     asm,
		Records:       service.NewRecordService(fb),
		JobNumbers:    service.NewJobNumberService(fb, log),
		Drafts:        service.NewDraftService(drafts, asm),
		Notify:        notify,
		Prompter:      prompt,
		Log:           log,
		Now:           func() time.Time { return testNow },
		IsInteractive: func() bool { return true },
	}
	return &testEnv{app: app, fb: fb, drafts: drafts, out: out, prompt: prompt}
}

func (e *testEnv) headless() { e.app.IsInteractive = func() bool { return false } }

// run executes the command tree with args, writing into the shared buffer.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(e.app)
	root.SetOut(e.out)
	root.SetErr(e.out)
	root.SetArgs(args)
	err := root.Execute()
	return e.out.String(), err
}

// savedPayload decodes the n-th Save payload into a generic map.
func savedPayload(t *testing.T, fb *testutil.FakeBackend, n int) (backend.SaveRequest, map[string]any) {
	t.Helper()
	require.Greater(t, len(fb.Saves), n)
	req := fb.Saves[n]
	data, err := json.Marshal(req.Payload)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return req, m
}

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
