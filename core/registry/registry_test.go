package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"herbledger/core/record"
)

func item(id string) Item {
	return Item{ItemID: id, Name: "Ashwagandha", Origin: "Field 7", Registrant: "collector-1", Unit: "Kg", Claimed: 10}
}

func TestCreateForcesPendingAndRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	it := item("H1")
	it.Status = record.StatusVerified // callers cannot smuggle a status in
	require.NoError(t, r.Create(it))

	got, ok := r.Get("H1")
	require.True(t, ok)
	require.Equal(t, record.StatusPendingVerification, got.Status)

	require.Error(t, r.Create(item("H1")))
}

func TestStatusTransitions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(item("H1")))
	require.NoError(t, r.Create(item("H2")))

	require.NoError(t, r.SetStatus("H1", record.StatusVerified))
	require.NoError(t, r.SetStatus("H2", record.StatusDisputed))

	// Both end states are terminal.
	require.Error(t, r.SetStatus("H1", record.StatusDisputed))
	require.Error(t, r.SetStatus("H2", record.StatusVerified))
	// pending -> pending is not a transition.
	require.NoError(t, r.Create(item("H3")))
	require.Error(t, r.SetStatus("H3", record.StatusPendingVerification))
	require.Error(t, r.SetStatus("missing", record.StatusVerified))
}

func TestPendingListing(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(item("H2")))
	require.NoError(t, r.Create(item("H1")))
	require.NoError(t, r.Create(item("H3")))
	require.NoError(t, r.SetStatus("H3", record.StatusVerified))

	pending := r.Pending()
	require.Len(t, pending, 2)
	require.Equal(t, "H1", pending[0].ItemID)
	require.Equal(t, "H2", pending[1].ItemID)
}

func TestHistoryAndExportImport(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(item("H1")))
	require.NoError(t, r.AppendHistory("H1", 1))
	require.NoError(t, r.AppendHistory("H1", 4))
	require.Error(t, r.AppendHistory("missing", 2))

	out := NewRegistry()
	require.NoError(t, out.Import(r.Export()))
	got, ok := out.Get("H1")
	require.True(t, ok)
	require.Equal(t, []uint64{1, 4}, got.History)

	bad := map[string]Item{"H9": {ItemID: "H9", Status: "melted"}}
	require.Error(t, out.Import(bad))
}
