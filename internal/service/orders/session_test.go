package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardslip/internal/domain/models"
)

func testCards() []models.Card {
	return []models.Card{
		{Number: "025/100", Name: "ピカチュウ", Rarity: "RR", Price: "￥1,200"},
		{Number: "125", Name: "ライチュウ", Price: "500"},
		{Number: "250", Name: "ホウオウ", Price: "1,000"},
	}
}

func TestCommitAppendsLineAndZeroesPending(t *testing.T) {
	sess := newSession("test")
	version := sess.SetResults(testCards())

	require.NoError(t, sess.SetPending(version, 0, 2))

	line, err := sess.Commit(version, 0)
	require.NoError(t, err)
	assert.Equal(t, "025/100", line.Number)
	assert.Equal(t, 2, line.Quantity)
	assert.False(t, line.IsManual)
	assert.False(t, line.AddedAt.IsZero())
	assert.Equal(t, 1, sess.Len())

	// The pending quantity was spent; committing again needs a new one.
	_, err = sess.Commit(version, 0)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, 1, sess.Len())
}

func TestCommitNeverMergesDuplicates(t *testing.T) {
	sess := newSession("test")
	version := sess.SetResults(testCards())

	require.NoError(t, sess.SetPending(version, 1, 1))
	_, err := sess.Commit(version, 1)
	require.NoError(t, err)

	require.NoError(t, sess.SetPending(version, 1, 1))
	_, err = sess.Commit(version, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, sess.Len())
}

func TestCommittedLineDoesNotAliasResult(t *testing.T) {
	sess := newSession("test")
	cards := testCards()
	version := sess.SetResults(cards)

	require.NoError(t, sess.SetPending(version, 0, 1))
	_, err := sess.Commit(version, 0)
	require.NoError(t, err)

	cards[0].Price = "9999"

	totals := sess.Totals()
	assert.Equal(t, int64(1200), totals.TotalAmount)
}

func TestStaleResultSetRejected(t *testing.T) {
	sess := newSession("test")
	oldVersion := sess.SetResults(testCards())
	sess.SetResults(testCards()[:1])

	err := sess.SetPending(oldVersion, 0, 1)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	_, err = sess.Commit(oldVersion, 0)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Zero(t, sess.Len())
}

func TestSelectionPositionOutOfRange(t *testing.T) {
	sess := newSession("test")
	version := sess.SetResults(testCards())

	assert.Error(t, sess.SetPending(version, -1, 1))
	assert.Error(t, sess.SetPending(version, 3, 1))
	assert.Error(t, sess.SetPending(version, 0, -1))
}

func TestNewSearchResetsPendingQuantities(t *testing.T) {
	sess := newSession("test")
	version := sess.SetResults(testCards())
	require.NoError(t, sess.SetPending(version, 0, 5))

	fresh := sess.SetResults(testCards())

	_, err := sess.Commit(fresh, 0)
	require.Error(t, err, "pending quantities must not survive a new search")
}

func TestAppendManualValidation(t *testing.T) {
	cases := []struct {
		name     string
		itemName string
		price    int
		quantity int
	}{
		{name: "empty name", itemName: "", price: 100, quantity: 1},
		{name: "blank name", itemName: "   ", price: 100, quantity: 1},
		{name: "zero price", itemName: "プロモカード", price: 0, quantity: 1},
		{name: "negative price", itemName: "プロモカード", price: -5, quantity: 1},
		{name: "zero quantity", itemName: "プロモカード", price: 100, quantity: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := newSession("test")
			_, err := sess.AppendManual(tc.itemName, "", "", tc.price, tc.quantity)
			require.Error(t, err)
			assert.True(t, models.IsValidation(err))
			assert.Zero(t, sess.Len(), "failed validation must not mutate the slip")
		})
	}
}

func TestAppendManualPlaceholderNumber(t *testing.T) {
	sess := newSession("test")

	line, err := sess.AppendManual("プロモカード", "", "PR", 300, 2)
	require.NoError(t, err)

	assert.Equal(t, "手動追加", line.Number)
	assert.Equal(t, "プロモカード", line.Name)
	assert.Equal(t, "PR", line.Rarity)
	assert.Equal(t, "300", line.Price)
	assert.Empty(t, line.Type)
	assert.Empty(t, line.Description)
	assert.True(t, line.IsManual)
}

func TestAppendManualKeepsProvidedNumber(t *testing.T) {
	sess := newSession("test")

	line, err := sess.AppendManual("プロモカード", "PR-001", "", 300, 1)
	require.NoError(t, err)
	assert.Equal(t, "PR-001", line.Number)
}

func TestEditPrice(t *testing.T) {
	sess := newSession("test")
	_, err := sess.AppendManual("カード", "", "", 500, 1)
	require.NoError(t, err)

	require.NoError(t, sess.EditPrice(0, 800))
	assert.Equal(t, int64(800), sess.Totals().TotalAmount)

	// Zero is allowed and zeroes the subtotal.
	require.NoError(t, sess.EditPrice(0, 0))
	assert.Equal(t, int64(0), sess.Totals().TotalAmount)
}

func TestEditPriceNegativeRejected(t *testing.T) {
	sess := newSession("test")
	_, err := sess.AppendManual("カード", "", "", 500, 1)
	require.NoError(t, err)

	err = sess.EditPrice(0, -1)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, int64(500), sess.Totals().TotalAmount, "rejected edit must leave the price unchanged")
}

func TestEditPriceUnknownIndex(t *testing.T) {
	sess := newSession("test")
	assert.ErrorIs(t, sess.EditPrice(0, 100), models.ErrLineNotFound)
}

func TestRemoveLineShiftsFollowingLines(t *testing.T) {
	sess := newSession("test")
	for _, name := range []string{"一枚目", "二枚目", "三枚目"} {
		_, err := sess.AppendManual(name, "", "", 100, 1)
		require.NoError(t, err)
	}

	require.NoError(t, sess.RemoveLine(0))
	require.NoError(t, sess.RemoveLine(0))

	view := sess.View()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "三枚目", view.Lines[0].Name)
}

func TestRemoveLineUnknownIndex(t *testing.T) {
	sess := newSession("test")
	assert.ErrorIs(t, sess.RemoveLine(0), models.ErrLineNotFound)
	assert.ErrorIs(t, sess.RemoveLine(-1), models.ErrLineNotFound)
}

func TestClearIsIdempotent(t *testing.T) {
	sess := newSession("test")
	sess.Clear()
	assert.Zero(t, sess.Len())

	_, err := sess.AppendManual("カード", "", "", 100, 1)
	require.NoError(t, err)

	sess.Clear()
	sess.Clear()
	assert.Zero(t, sess.Len())
	assert.Equal(t, models.OrderTotals{}, sess.Totals())
}

func TestTotals(t *testing.T) {
	sess := newSession("test")
	version := sess.SetResults([]models.Card{
		{Number: "1", Name: "A", Price: "500"},
		{Number: "2", Name: "B", Price: "1,000"},
	})

	require.NoError(t, sess.SetPending(version, 0, 2))
	_, err := sess.Commit(version, 0)
	require.NoError(t, err)

	require.NoError(t, sess.SetPending(version, 1, 1))
	_, err = sess.Commit(version, 1)
	require.NoError(t, err)

	totals := sess.Totals()
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.Equal(t, int64(2000), totals.TotalAmount)
}

func TestTotalsUnparsablePriceCountsAsZero(t *testing.T) {
	sess := newSession("test")
	version := sess.SetResults([]models.Card{
		{Number: "1", Name: "A", Price: "相談"},
		{Number: "2", Name: "B", Price: ""},
	})

	for pos := 0; pos < 2; pos++ {
		require.NoError(t, sess.SetPending(version, pos, 1))
		_, err := sess.Commit(version, pos)
		require.NoError(t, err)
	}

	totals := sess.Totals()
	assert.Equal(t, 2, totals.TotalQuantity)
	assert.Zero(t, totals.TotalAmount)
}

func TestViewSubtotals(t *testing.T) {
	sess := newSession("test")
	_, err := sess.AppendManual("カード", "", "", 250, 4)
	require.NoError(t, err)

	view := sess.View()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(250), view.Lines[0].UnitPrice)
	assert.Equal(t, int64(1000), view.Lines[0].Subtotal)
	assert.Equal(t, 4, view.Totals.TotalQuantity)
	assert.Equal(t, int64(1000), view.Totals.TotalAmount)
}

func TestPrintSheet(t *testing.T) {
	sess := newSession("test")
	_, err := sess.AppendManual("一枚目", "", "", 500, 2)
	require.NoError(t, err)
	_, err = sess.AppendManual("二枚目", "", "", 1000, 1)
	require.NoError(t, err)

	sheet := sess.PrintSheet()
	assert.False(t, sheet.GeneratedAt.IsZero())
	require.Len(t, sheet.Lines, 2)

	assert.Equal(t, "一枚目", sheet.Lines[0].Name)
	assert.Equal(t, "￥500", sheet.Lines[0].UnitPrice)
	assert.Equal(t, "￥1,000", sheet.Lines[0].Subtotal)
	assert.Equal(t, "二枚目", sheet.Lines[1].Name)

	assert.Equal(t, "3", sheet.TotalQuantity)
	assert.Equal(t, "￥2,000", sheet.TotalAmount)
}
