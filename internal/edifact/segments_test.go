package edifact

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"edi-orders/internal/models"
)

func testBuilder(t *testing.T) segmentBuilder {
	t.Helper()
	cfg, err := NewConfig(Config{Envelope: true})
	require.NoError(t, err)
	return segmentBuilder{cfg: cfg}
}

func TestSegmentBuilder_Formats(t *testing.T) {
	b := testBuilder(t)

	seg, err := b.unh("ORD0001")
	require.NoError(t, err)
	require.Equal(t, "UNH+ORD0001+ORDERS:D:96A:UN'", seg)

	seg, err = b.bgm("2025-0509-A")
	require.NoError(t, err)
	require.Equal(t, "BGM+220+2025-0509-A+9'", seg)

	seg, err = b.dtm("137", "20250509")
	require.NoError(t, err)
	require.Equal(t, "DTM+137:20250509:102'", seg)

	seg, err = b.cux("USD")
	require.NoError(t, err)
	require.Equal(t, "CUX+2:USD:9'", seg)

	seg, err = b.lin(3, "ITEM001")
	require.NoError(t, err)
	require.Equal(t, "LIN+3++ITEM001:EN'", seg)

	seg, err = b.qty(10, "EA")
	require.NoError(t, err)
	require.Equal(t, "QTY+21:10:EA'", seg)

	seg, err = b.pri(mustDecimal(t, "12.5"), "EA")
	require.NoError(t, err)
	require.Equal(t, "PRI+AAA:12.50:EA'", seg)

	seg, err = b.moa("79", mustDecimal(t, "134.38"))
	require.NoError(t, err)
	require.Equal(t, "MOA+79:134.38'", seg)

	seg, err = b.tax(mustDecimal(t, "7.5"))
	require.NoError(t, err)
	require.Equal(t, "TAX+7+VAT+++:::7.50'", seg)

	seg, err = b.loc("WAREHOUSE1")
	require.NoError(t, err)
	require.Equal(t, "LOC+11+WAREHOUSE1:92'", seg)

	seg, err = b.pai("NET30")
	require.NoError(t, err)
	require.Equal(t, "PAI+NET30:3'", seg)

	seg, err = b.tod("FOB")
	require.NoError(t, err)
	require.Equal(t, "TOD+5++FOB'", seg)

	seg, err = b.ftx(2, "handle with care")
	require.NoError(t, err)
	require.Equal(t, "FTX+AAI+2++handle with care'", seg)

	seg, err = b.unt(17, "ORD0001")
	require.NoError(t, err)
	require.Equal(t, "UNT+17+ORD0001'", seg)

	seg, err = b.unz(1, "ORD0001")
	require.NoError(t, err)
	require.Equal(t, "UNZ+1+ORD0001'", seg)
}

func TestSegmentBuilder_UNB(t *testing.T) {
	b := testBuilder(t)
	ts := time.Date(2025, 5, 9, 12, 30, 0, 0, time.UTC)

	seg, err := b.unb(ts, "ORD0001")
	require.NoError(t, err)
	require.Equal(t, "UNB+UNOA:2+EDIORDERS+PARTNER+250509:1230+ORD0001'", seg)
}

func TestSegmentBuilder_NAD(t *testing.T) {
	b := testBuilder(t)

	segs, err := b.nad(models.Party{Qualifier: "BY", ID: "1234567890123"})
	require.NoError(t, err)
	require.Equal(t, []string{"NAD+BY+1234567890123::91'"}, segs)

	segs, err = b.nad(models.Party{Qualifier: "SU", ID: "321", Name: "Supplier+Co"})
	require.NoError(t, err)
	require.Equal(t, []string{"NAD+SU+321::91++Supplier?+Co'"}, segs)
}

func TestSegmentBuilder_EscapesUserFields(t *testing.T) {
	b := testBuilder(t)

	seg, err := b.bgm("PO'2025+01")
	require.NoError(t, err)
	require.Equal(t, "BGM+220+PO?'2025?+01+9'", seg)
}

func TestSegmentBuilder_RejectsOversizedSegment(t *testing.T) {
	cfg, err := NewConfig(Config{MaxSegmentLength: 20})
	require.NoError(t, err)
	b := segmentBuilder{cfg: cfg}

	_, err = b.bgm(strings.Repeat("X", 30))
	require.Error(t, err)

	ge, ok := err.(*GenerationError)
	require.True(t, ok)
	require.Equal(t, CodeSegmentTooLong, ge.Code)
	require.Equal(t, 20, ge.Details["max"])
	require.Greater(t, ge.Details["length"].(int), 20)
}

func TestChunkText(t *testing.T) {
	require.Nil(t, chunkText("", 10))
	require.Equal(t, []string{"short"}, chunkText("short", 10))
	require.Equal(t, []string{"abcde", "fghij", "klm"}, chunkText("abcdefghijklm", 5))
	require.Equal(t, []string{"exact"}, chunkText("exact", 5))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abcdef", 3))
	require.Equal(t, "abc", truncate("abc", 10))
	require.Equal(t, "abc", truncate("abc", 0))
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
