package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"github.com/alexanderramin/freightdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordService_LoadJobWithChildren(t *testing.T) {
	fb := testutil.NewFakeBackend()
	fb.Lists["Job"] = testutil.JSON(`{"jobId":42,"jobNumber":"JOB-42","shippingMode":"SEA","createLog":"bob 2024-01-01T00:00:00Z","customer":{"name":"ACME"}}`)
	fb.Lists["JobEquipment"] = testutil.JSON(`{"jobEquipmentId":1,"jobId":42,"containerTypeId":2,"quantity":3}`)
	fb.Lists["JobCharge"] = testutil.JSON(`{"jobChargeId":5,"jobId":42,"priceFC":"100"}`)
	fb.Lists["Invoice"] = testutil.JSON(`{"invoiceId":9,"jobId":42}`)
	fb.Lists["InvoiceItem"] = testutil.JSON(`{"invoiceItemId":11,"invoiceId":9,"priceFC":50}`, `{"invoiceItemId":12,"invoiceId":9,"priceFC":25}`)

	rec, err := NewRecordService(fb).Load(context.Background(), forms.Job(), 42)
	require.NoError(t, err)

	assert.Equal(t, "JOB-42", rec.Values["jobNumber"])
	assert.Equal(t, "bob 2024-01-01T00:00:00Z", rec.Values["createLog"])
	assert.NotContains(t, rec.Values, "customer")
	require.Len(t, rec.Children["equipments"], 1)
	assert.Equal(t, "3", rec.Children["equipments"][0].Values["quantity"])
	assert.Empty(t, rec.Children["commodities"])
	assert.NotNil(t, rec.Children["commodities"])
	require.Len(t, rec.Children["invoices"], 1)
	assert.Len(t, rec.Children["invoices"][0].Children["invoiceItems"], 2)

	wheres := map[string]string{}
	for _, q := range fb.ListCalls {
		wheres[q.Entity] = q.Where
	}
	assert.Equal(t, "JobId = 42", wheres["Job"])
	assert.Equal(t, "JobId = 42", wheres["JobEquipment"])
	assert.Equal(t, "InvoiceId = 9", wheres["InvoiceItem"])
}

func TestRecordService_LoadMissing(t *testing.T) {
	fb := testutil.NewFakeBackend()

	_, err := NewRecordService(fb).Load(context.Background(), forms.Job(), 7)

	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Len(t, fb.ListCalls, 1)
}

func TestRecordService_LoadChildFailure(t *testing.T) {
	fb := testutil.NewFakeBackend()
	fb.Lists["bl"] = testutil.JSON(`{"blId":3,"blNumber":"BL-3"}`)
	fb.ListErrs["BlContainer"] = backend.ErrUnavailable

	_, err := NewRecordService(fb).Load(context.Background(), forms.BillOfLading(), 3)

	assert.ErrorIs(t, err, backend.ErrUnavailable)
	assert.ErrorContains(t, err, "blContainers")
}

func TestRecordService_Recent(t *testing.T) {
	fb := testutil.NewFakeBackend()
	fb.Lists["Job"] = testutil.JSON(`{"jobId":2,"jobNumber":"JOB-2"}`, `{"jobId":1,"jobNumber":"JOB-1"}`)

	recs, err := NewRecordService(fb).Recent(context.Background(), forms.Job(), 10)
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, "JOB-2", recs[0].Values["jobNumber"])
	require.Len(t, fb.ListCalls, 1)
	assert.Equal(t, backend.ListQuery{Entity: "Job", SortOn: "JobId DESC", PageSize: 10}, fb.ListCalls[0])
}

func TestRecordService_UndecodableRow(t *testing.T) {
	fb := testutil.NewFakeBackend()
	fb.Lists["Job"] = testutil.JSON(`[1,2]`)

	_, err := NewRecordService(fb).Recent(context.Background(), forms.Job(), 5)

	assert.ErrorIs(t, err, backend.ErrInvalidResponse)
}
