package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreditCreatesEntryLazily(t *testing.T) {
	s := NewStore()
	require.False(t, s.HasActor("supplier-1"))

	require.NoError(t, s.Credit("supplier-1", "H1", "Ashwagandha", "Kg", 10))
	require.True(t, s.HasActor("supplier-1"))

	e, ok := s.Get("supplier-1", "H1")
	require.True(t, ok)
	require.Equal(t, 10.0, e.Quantity)
	require.Equal(t, "Kg", e.Unit)
}

func TestCreditRejectsUnitDrift(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Credit("supplier-1", "H1", "Ashwagandha", "Kg", 10))
	err := s.Credit("supplier-1", "H1", "Ashwagandha", "Grams", 5)
	require.Error(t, err)

	e, _ := s.Get("supplier-1", "H1")
	require.Equal(t, 10.0, e.Quantity, "failed credit must not mutate")
}

func TestDebitNeverGoesNegative(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Credit("supplier-1", "H1", "Ashwagandha", "Kg", 4))

	require.Error(t, s.Debit("supplier-1", "H1", 5))
	require.Error(t, s.Debit("supplier-1", "H2", 1))
	require.Error(t, s.Debit("nobody", "H1", 1))

	require.NoError(t, s.Debit("supplier-1", "H1", 4))
	e, _ := s.Get("supplier-1", "H1")
	require.Equal(t, 0.0, e.Quantity)
}

func TestListIsSortedCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Credit("m1", "H2", "Tulsi", "Kg", 2))
	require.NoError(t, s.Credit("m1", "H1", "Ashwagandha", "Kg", 1))

	list := s.List("m1")
	require.Len(t, list, 2)
	require.Equal(t, "H1", list[0].ItemID)

	list[0].Quantity = 999
	e, _ := s.Get("m1", "H1")
	require.Equal(t, 1.0, e.Quantity, "List must return copies")
}

func TestExportImportRoundTrip(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Credit("m1", "H1", "Ashwagandha", "Kg", 7))

	out := NewStore()
	require.NoError(t, out.Import(s.Export()))
	e, ok := out.Get("m1", "H1")
	require.True(t, ok)
	require.Equal(t, 7.0, e.Quantity)

	bad := map[string]map[string]Entry{"m1": {"H1": {ItemID: "H1", Quantity: -1}}}
	require.Error(t, out.Import(bad))
}
