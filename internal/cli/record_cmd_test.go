package cli

import (
	"testing"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seaJobFile = `{
  "jobNumber": "JOB-1", "jobDate": "2024-05-01T00:00:00", "operationType": "Import",
  "customerPartyId": 1, "polId": 10, "podId": 11, "vesselId": 4,
  "equipments": [{"containerTypeId": 1, "containerSizeId": 2, "quantity": 2, "grossWeight": 900, "tareWeight": 100}]
}`

func TestJobNew_InteractiveWizard(t *testing.T) {
	env := newTestEnv(t)
	env.fb.ListErrs["SetupContainerType"] = backend.ErrUnavailable
	env.fb.Lists["Job"] = testutil.JSON(`{"jobId":15,"jobNumber":"JOB-9","jobDate":"2024-05-01T00:00:00","status":"OPEN"}`)

	env.prompt.fields = []map[string]string{
		{"operationType": "Import"},
		{"customerPartyId": "1"},
		{"polId": "10", "podId": "11"},
		{"containerTypeId": "1", "containerSizeId": "2", "grossWeight": "1200", "tareWeight": "200"},
		{"remarks": "fragile"},
	}
	env.prompt.browses = []browseAnswer{{action: RowAdd, index: -1}}
	env.prompt.choices = []string{"next", "next", "next", "next", "next", "next", "next", "submit"}

	out, err := env.run(t, "job", "new")
	require.NoError(t, err)

	assert.Equal(t, []string{"General", "Parties", "Routing", "Equipment", "Review"}, env.prompt.fieldTitles)
	assert.Equal(t, "Job Order · step 1 of 8: General", env.prompt.chooseTitles[0])
	assert.Equal(t, 1, env.prompt.waits)
	assert.Contains(t, out, "Could not load container types; using the fallback list")

	// second equipment browse shows the saved row, labelled from the fallback list
	require.GreaterOrEqual(t, len(env.prompt.browseRows), 2)
	require.Len(t, env.prompt.browseRows[1], 1)
	assert.Equal(t, []string{"GP - General Purpose", "2", "", "1", "1200", "1000"}, env.prompt.browseRows[1][0])

	req, payload := savedPayload(t, env.fb, 0)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "Job", req.Path)
	assert.Equal(t, "JOB-9", payload["jobNumber"])
	assert.EqualValues(t, 0, payload["jobId"])
	assert.Equal(t, "fragile", payload["remarks"])
	assert.Equal(t, "alice 2024-05-01T10:00:00Z", payload["createLog"])
	require.Len(t, payload["equipments"], 1)

	assert.Contains(t, out, "Job Order created")
	assert.Contains(t, out, "15")
	assert.Contains(t, out, "RECENT JOB ORDER RECORDS")
	assert.Contains(t, out, "JOB-9")
}

func TestJobNew_StepGateKeepsUserOnStep(t *testing.T) {
	env := newTestEnv(t)
	env.prompt.choices = []string{"next", "cancel"}

	out, err := env.run(t, "job", "new")
	require.NoError(t, err)

	assert.Equal(t, []string{"General", "General"}, env.prompt.fieldTitles)
	assert.Contains(t, out, "Operation type is required")
	assert.Contains(t, out, "Cancelled.")
	assert.Zero(t, env.fb.SaveCount())
}

func TestJobNew_FileHeadless(t *testing.T) {
	env := newTestEnv(t)
	path := writeJSON(t, seaJobFile)

	_, err := env.run(t, "job", "new", "--file", path)
	require.NoError(t, err)

	assert.Zero(t, env.fb.JobNoCalls, "a number in the file is kept")
	assert.Zero(t, env.prompt.waits)
	_, payload := savedPayload(t, env.fb, 0)
	assert.Equal(t, "JOB-1", payload["jobNumber"])
	assert.Equal(t, "2024-05-01", payload["jobDate"])
	equipments := payload["equipments"].([]any)
	require.Len(t, equipments, 1)
	assert.EqualValues(t, 800, equipments[0].(map[string]any)["netWeight"])
}

func TestJobNew_FileWithNullJobNumberUsesAllocated(t *testing.T) {
	env := newTestEnv(t)
	path := writeJSON(t, `{
  "jobNumber": null, "jobDate": "2024-05-01", "operationType": "Export",
  "customerPartyId": 1, "polId": 10, "podId": 11, "shippingMode": "AIR"
}`)

	_, err := env.run(t, "job", "new", "--file", path)
	require.NoError(t, err)

	assert.Equal(t, 1, env.fb.JobNoCalls)
	_, payload := savedPayload(t, env.fb, 0)
	assert.Equal(t, "JOB-9", payload["jobNumber"])
}

func TestJobNew_HeadlessReportsFirstFailingStep(t *testing.T) {
	env := newTestEnv(t)
	env.headless()

	_, err := env.run(t, "job", "new", "--set", "operationType=Import")
	require.Error(t, err)

	assert.ErrorContains(t, err, `step "Parties"`)
	assert.ErrorContains(t, err, "Customer is required")
	assert.Zero(t, env.fb.SaveCount())
	assert.Equal(t, 1, env.fb.JobNoCalls)
}

func TestJobNew_SeaJobNeedsEquipment(t *testing.T) {
	env := newTestEnv(t)
	env.headless()

	_, err := env.run(t, "job", "new",
		"--set", "operationType=Import", "--set", "customerPartyId=1",
		"--set", "polId=10", "--set", "podId=11")
	require.Error(t, err)

	assert.ErrorContains(t, err, `step "Equipment"`)
	assert.ErrorContains(t, err, "Add at least one equipment line for a sea job")
	assert.Zero(t, env.fb.SaveCount())
}

func TestJobNew_WizardHoldsEquipmentStepUntilRowAdded(t *testing.T) {
	env := newTestEnv(t)
	env.prompt.fields = []map[string]string{
		{"operationType": "Import"},
		{"customerPartyId": "1"},
		{"polId": "10", "podId": "11"},
	}
	env.prompt.choices = []string{"next", "next", "next", "next", "cancel"}

	out, err := env.run(t, "job", "new")
	require.NoError(t, err)

	require.Len(t, env.prompt.chooseTitles, 5)
	assert.Equal(t, "Job Order · step 4 of 8: Equipment", env.prompt.chooseTitles[3])
	assert.Equal(t, "Job Order · step 4 of 8: Equipment", env.prompt.chooseTitles[4])
	assert.Contains(t, out, "Add at least one equipment line for a sea job")
	assert.Contains(t, out, "Cancelled.")
	assert.Zero(t, env.fb.SaveCount())
}

func TestJobNew_AirJobClearsSeaFields(t *testing.T) {
	env := newTestEnv(t)
	env.headless()

	_, err := env.run(t, "job", "new",
		"--set", "operationType=Export", "--set", "customerPartyId=1",
		"--set", "polId=10", "--set", "podId=11",
		"--set", "vesselId=4", "--set", "shippingMode=AIR")
	require.NoError(t, err)

	_, payload := savedPayload(t, env.fb, 0)
	assert.Equal(t, "AIR", payload["shippingMode"])
	assert.EqualValues(t, 0, payload["vesselId"])
	assert.Empty(t, payload["equipments"])
}

func TestJobNew_UnknownOverride(t *testing.T) {
	env := newTestEnv(t)
	env.headless()

	_, err := env.run(t, "job", "new", "--set", "nope=1")
	assert.ErrorContains(t, err, "--set nope")

	_, err = env.run(t, "job", "new", "--set", "broken")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestJobNew_FailedSaveBecomesDraft(t *testing.T) {
	env := newTestEnv(t)
	env.fb.SaveErr = &backend.APIError{Status: 500, Message: "database offline"}

	out, err := env.run(t, "job", "new", "--file", writeJSON(t, seaJobFile))
	require.Error(t, err)

	assert.Contains(t, out, "database offline")
	assert.Contains(t, out, "Saved as draft")
	drafts, err := env.drafts.List(t.Context(), "job")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "POST", drafts[0].Method)
}

func TestJobEdit_LoadsFromBackendAndPuts(t *testing.T) {
	env := newTestEnv(t)
	env.fb.Lists["Job"] = testutil.JSON(`{"jobId":42,"companyId":7,"jobNumber":"JOB-42","jobDate":"2024-04-01T00:00:00",
		"operationType":"Import","status":"OPEN","customerPartyId":1,"shippingMode":"SEA","polId":10,"podId":11,
		"createLog":"bob 2024-04-01T08:00:00Z"}`)
	env.fb.Lists["JobEquipment"] = testutil.JSON(`{"jobEquipmentId":3,"jobId":42,"containerTypeId":1,"containerSizeId":1,"quantity":1,"createLog":"bob 2024-04-01T08:00:00Z"}`)

	_, err := env.run(t, "job", "edit", "42", "--submit", "--set", "remarks=rebooked")
	require.NoError(t, err)

	req, payload := savedPayload(t, env.fb, 0)
	assert.Equal(t, "PUT", req.Method)
	assert.EqualValues(t, 42, payload["jobId"])
	assert.Equal(t, "rebooked", payload["remarks"])
	assert.Equal(t, "bob 2024-04-01T08:00:00Z", payload["createLog"])
	assert.Equal(t, "alice 2024-05-01T10:00:00Z", payload["updateLog"])
	assert.NotContains(t, env.out.String(), "RECENT", "edits do not list recent records")
}

func TestJobEdit_RejectsUnsavedRecord(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "job", "edit", writeJSON(t, seaJobFile))
	assert.ErrorContains(t, err, "has no jobId")
}

func TestBLNew_TabsAndContainerDelete(t *testing.T) {
	env := newTestEnv(t)
	env.prompt.choices = []string{"containers", "details", "parties", "routing", "submit"}
	env.prompt.browses = []browseAnswer{
		{action: RowAdd, index: -1},
		{action: RowAdd, index: -1},
		{action: RowDelete, index: 0},
	}
	env.prompt.confirms = []bool{true}
	env.prompt.fields = []map[string]string{
		{"containerNo": "MSKU0000001"},
		{"containerNo": "MSKU0000002"},
		{"blNumber": "BL-7"},
		{"shipperPartyId": "1", "consigneePartyId": "2"},
		{"polId": "10", "podId": "11"},
	}

	_, err := env.run(t, "bl", "new")
	require.NoError(t, err)

	req, payload := savedPayload(t, env.fb, 0)
	assert.Equal(t, "bl", req.Path)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "BL-7", payload["blNumber"])
	assert.Equal(t, "2024-05-01", payload["blDate"])
	containers := payload["blContainers"].([]any)
	require.Len(t, containers, 1)
	assert.Equal(t, "MSKU0000002", containers[0].(map[string]any)["containerNo"])
}

func TestBLNew_InvalidContainerCanBeDropped(t *testing.T) {
	env := newTestEnv(t)
	env.prompt.choices = []string{"containers", "cancel"}
	env.prompt.browses = []browseAnswer{{action: RowAdd, index: -1}}
	env.prompt.fields = []map[string]string{{"sealNo": "S1"}}
	env.prompt.confirms = []bool{false}

	out, err := env.run(t, "bl", "new")
	require.NoError(t, err)

	assert.Contains(t, out, "Container no. is required")
	require.Len(t, env.prompt.browseRows, 2)
	assert.Empty(t, env.prompt.browseRows[1], "declined fix leaves the list unchanged")
}

func TestJobList(t *testing.T) {
	env := newTestEnv(t)
	env.fb.Lists["Job"] = testutil.JSON(
		`{"jobId":2,"jobNumber":"JOB-2","jobDate":"2024-05-02T00:00:00"}`,
		`{"jobId":1,"jobNumber":"JOB-1","jobDate":"2024-05-01T00:00:00"}`)

	out, err := env.run(t, "job", "list", "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "JOB-2")
	assert.Contains(t, out, "2024-05-02")
	assert.NotContains(t, out, "T00:00:00")
	require.Len(t, env.fb.ListCalls, 1)
	assert.Equal(t, 2, env.fb.ListCalls[0].PageSize)
}
