package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestIsTempID(t *testing.T) {
	assert.True(t, IsTempID(TempID("r1")))
	assert.True(t, IsTempID("temp-anything"))
	assert.False(t, IsTempID("4f06ae9c-0000-0000-0000-000000000000"))
	assert.False(t, IsTempID(""))
}

func TestBeginAdd_InsertsProvisionalEntry(t *testing.T) {
	c := NewCollection()
	c.BeginAdd("r1", Snapshot{Title: "Inception", Poster: strptr("p.jpg"), IsFavorite: true})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, TempID("r1"), items[0].ID)
	assert.Equal(t, "Inception", items[0].Title)
	assert.Equal(t, "p.jpg", *items[0].Poster)
	// provisional entries always start un-favorited
	assert.False(t, items[0].IsFavorite)
}

func TestResolveAdd_ReplacesInPlaceAndKeepsOptimisticPoster(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m0", Title: "Alien"}})
	c.BeginAdd("r1", Snapshot{Title: "Inception", Poster: strptr("p.jpg")})

	c.ResolveAdd("r1", Snapshot{ID: "m1", Title: "Inception", Poster: nil, IsFavorite: false})

	items := c.Items()
	require.Len(t, items, 2)
	// position preserved: the provisional slot becomes the confirmed entry
	assert.Equal(t, "m1", items[1].ID)
	require.NotNil(t, items[1].Poster)
	assert.Equal(t, "p.jpg", *items[1].Poster)
}

func TestResolveAdd_ServerPosterWins(t *testing.T) {
	c := NewCollection()
	c.BeginAdd("r1", Snapshot{Title: "Inception", Poster: strptr("old.jpg")})
	c.ResolveAdd("r1", Snapshot{ID: "m1", Title: "Inception", Poster: strptr("new.jpg")})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new.jpg", *items[0].Poster)
}

func TestResolveAdd_FallsBackToTitleMatch(t *testing.T) {
	c := NewCollection()
	c.BeginAdd("r1", Snapshot{Title: "Heat"})
	// settlement arrives keyed by a different request id (e.g. a retry
	// issued by the user); the provisional entry is matched by title
	c.ResolveAdd("r2", Snapshot{ID: "m1", Title: "Heat"})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
}

func TestResolveAdd_NoProvisionalEntryAppends(t *testing.T) {
	c := NewCollection()
	c.ResolveAdd("r1", Snapshot{ID: "m1", Title: "Heat"})
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
}

func TestFailAdd_RemovesProvisionalEntryOnly(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m0", Title: "Alien"}})
	c.BeginAdd("r1", Snapshot{Title: "Inception"})

	c.FailAdd("r1")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m0", items[0].ID)
}

func TestFavorite_ToggleAndRollback(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m1", Title: "A", IsFavorite: false}})

	c.BeginFavorite("r1", "m1", nil)
	got, _ := c.Get("m1")
	assert.True(t, got.IsFavorite)
	assert.Equal(t, 1, c.PendingRollbacks())

	c.FailFavorite("r1")
	got, _ = c.Get("m1")
	assert.False(t, got.IsFavorite)
	assert.Equal(t, 0, c.PendingRollbacks())
}

func TestFavorite_ExplicitValueAndServerConfirmation(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m1", Title: "A", IsFavorite: true}})

	c.BeginFavorite("r1", "m1", boolptr(true))
	got, _ := c.Get("m1")
	assert.True(t, got.IsFavorite)

	// server says false: a concurrent mutation changed it meanwhile
	c.ResolveFavorite("r1", "m1", false)
	got, _ = c.Get("m1")
	assert.False(t, got.IsFavorite)
	assert.Equal(t, 0, c.PendingRollbacks())
}

func TestFavorite_UnknownIDIsNoop(t *testing.T) {
	c := NewCollection()
	c.BeginFavorite("r1", "missing", nil)
	assert.Equal(t, 0, c.PendingRollbacks())
	// settlement of the no-op must be harmless
	c.FailFavorite("r1")
	c.ResolveFavorite("r1", "missing", true)
}

func TestEdit_AppliesAllFieldsAndRollsBack(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{
		ID: "m1", Title: "Alien", Year: strptr("1979"),
		Runtime: strptr("117 min"), Genre: strptr("Horror"),
		Director: strptr("Ridley Scott"), Poster: strptr("a.jpg"),
	}})

	c.BeginEdit("r1", "m1", EditFields{Title: "Aliens", Year: strptr("1986")})
	got, _ := c.Get("m1")
	assert.Equal(t, "Aliens", got.Title)
	assert.Equal(t, "1986", *got.Year)
	// full replace: unset optional fields become null locally too
	assert.Nil(t, got.Runtime)
	// but poster is not an editable field
	assert.Equal(t, "a.jpg", *got.Poster)

	c.FailEdit("r1")
	got, _ = c.Get("m1")
	assert.Equal(t, "Alien", got.Title)
	assert.Equal(t, "117 min", *got.Runtime)
	assert.Equal(t, 0, c.PendingRollbacks())
}

func TestEdit_ResolveReplacesWholesale(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m1", Title: "Alien"}})
	c.BeginEdit("r1", "m1", EditFields{Title: "Aliens"})

	server := Snapshot{ID: "m1", Title: "Aliens", Year: strptr("1986"), IsFavorite: true}
	c.ResolveEdit("r1", server)

	got, _ := c.Get("m1")
	assert.Equal(t, server, got)
	assert.Equal(t, 0, c.PendingRollbacks())
}

func TestDelete_FlagLifecycle(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m1", Title: "A"}})

	c.BeginDelete("m1")
	assert.True(t, c.IsDeleting("m1"))
	// not a visual removal: the entry stays until confirmation
	assert.Len(t, c.Items(), 1)

	c.FailDelete("m1")
	assert.False(t, c.IsDeleting("m1"))
	assert.Len(t, c.Items(), 1)

	c.BeginDelete("m1")
	c.ResolveDelete("m1")
	assert.False(t, c.IsDeleting("m1"))
	assert.Empty(t, c.Items())
}

// Two in-flight mutations on the same entity: the settlement that
// arrives last wins the authoritative fields, regardless of issue order.
func TestOutOfOrderSettlements_LastArrivalWins(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{{ID: "m1", Title: "A", IsFavorite: false}})

	c.BeginFavorite("r1", "m1", boolptr(true))
	c.BeginFavorite("r2", "m1", boolptr(false))

	// r2 settles first, then r1
	c.ResolveFavorite("r2", "m1", false)
	c.ResolveFavorite("r1", "m1", true)

	got, _ := c.Get("m1")
	assert.True(t, got.IsFavorite)
	assert.Equal(t, 0, c.PendingRollbacks())
}

// Requests on distinct entities never interfere with each other's slots.
func TestDistinctEntities_DoNotInterfere(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Snapshot{
		{ID: "m1", Title: "A"},
		{ID: "m2", Title: "B"},
	})

	c.BeginEdit("r1", "m1", EditFields{Title: "A2"})
	c.BeginFavorite("r2", "m2", nil)

	c.FailEdit("r1")
	c.ResolveFavorite("r2", "m2", true)

	a, _ := c.Get("m1")
	b, _ := c.Get("m2")
	assert.Equal(t, "A", a.Title)
	assert.True(t, b.IsFavorite)
	assert.Equal(t, 0, c.PendingRollbacks())
}
