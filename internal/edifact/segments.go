package edifact

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"edi-orders/internal/models"
)

const segmentPreviewLength = 40

// segmentBuilder formats single terminated segments for one config.
// Every user-supplied field goes through Escape before interpolation,
// and every assembled segment is checked against MaxSegmentLength.
type segmentBuilder struct {
	cfg Config
}

func (b segmentBuilder) finish(seg string) (string, error) {
	if len(seg) > b.cfg.MaxSegmentLength {
		preview := seg
		if len(preview) > segmentPreviewLength {
			preview = preview[:segmentPreviewLength] + "..."
		}
		return "", newError(CodeSegmentTooLong, "segment %q exceeds maximum length (%d > %d)", preview, len(seg), b.cfg.MaxSegmentLength).
			withDetail("segment", preview).
			withDetail("length", len(seg)).
			withDetail("max", b.cfg.MaxSegmentLength)
	}
	return seg, nil
}

func (b segmentBuilder) una() string {
	return b.cfg.UNASegment
}

func (b segmentBuilder) unb(ts time.Time, messageRef string) (string, error) {
	return b.finish(fmt.Sprintf("UNB+UNOA:2+%s+%s+%s:%s+%s'",
		Escape(b.cfg.SenderID), Escape(b.cfg.ReceiverID),
		ts.Format("060102"), ts.Format("1504"), Escape(messageRef)))
}

func (b segmentBuilder) unh(messageRef string) (string, error) {
	return b.finish(fmt.Sprintf("UNH+%s+%s:%s:%s:%s'",
		Escape(messageRef), b.cfg.MessageType, b.cfg.Version, b.cfg.Release, b.cfg.ControllingAgency))
}

// bgm: document type 220 (purchase order), message function 9 (original).
func (b segmentBuilder) bgm(orderNumber string) (string, error) {
	return b.finish(fmt.Sprintf("BGM+220+%s+9'", Escape(orderNumber)))
}

func (b segmentBuilder) dtm(qualifier, date string) (string, error) {
	return b.finish(fmt.Sprintf("DTM+%s:%s:%s'", qualifier, Escape(date), b.cfg.DateFormat))
}

func (b segmentBuilder) cux(currency string) (string, error) {
	return b.finish(fmt.Sprintf("CUX+2:%s:9'", Escape(currency)))
}

// nad emits the name-and-address sequence for one party. Code list
// responsible agency is fixed at 91 (assigned by seller).
func (b segmentBuilder) nad(party models.Party) ([]string, error) {
	base := fmt.Sprintf("NAD+%s+%s::91", Escape(party.Qualifier), Escape(party.ID))
	seg := base + "'"
	if name := truncate(party.Name, b.cfg.MaxFieldLength); name != "" {
		seg = base + "++" + Escape(name) + "'"
	}
	seg, err := b.finish(seg)
	if err != nil {
		return nil, err
	}
	return []string{seg}, nil
}

func (b segmentBuilder) com(contact, contactType string) (string, error) {
	return b.finish(fmt.Sprintf("COM+%s:%s'", Escape(contact), Escape(contactType)))
}

func (b segmentBuilder) lin(lineNumber int, productCode string) (string, error) {
	return b.finish(fmt.Sprintf("LIN+%d++%s:EN'", lineNumber, Escape(productCode)))
}

func (b segmentBuilder) imd(description string) (string, error) {
	return b.finish(fmt.Sprintf("IMD+F++:::%s'", Escape(truncate(description, b.cfg.MaxFieldLength))))
}

// qty: qualifier 21 (ordered quantity).
func (b segmentBuilder) qty(quantity int, unit string) (string, error) {
	return b.finish(fmt.Sprintf("QTY+21:%d:%s'", quantity, Escape(unit)))
}

func (b segmentBuilder) pri(price decimal.Decimal, unit string) (string, error) {
	quantized := RoundHalfUp(price, b.cfg.places)
	return b.finish(fmt.Sprintf("PRI+AAA:%s:%s'", quantized.StringFixed(b.cfg.places), Escape(unit)))
}

func (b segmentBuilder) moa(qualifier string, amount decimal.Decimal) (string, error) {
	quantized := RoundHalfUp(amount, b.cfg.places)
	return b.finish(fmt.Sprintf("MOA+%s:%s'", Escape(qualifier), quantized.StringFixed(b.cfg.places)))
}

func (b segmentBuilder) tax(rate decimal.Decimal) (string, error) {
	quantized := RoundHalfUp(rate, b.cfg.places)
	return b.finish(fmt.Sprintf("TAX+7+VAT+++:::%s'", quantized.StringFixed(b.cfg.places)))
}

// loc: qualifier 11 (place of delivery), code list 92.
func (b segmentBuilder) loc(location string) (string, error) {
	return b.finish(fmt.Sprintf("LOC+11+%s:92'", Escape(location)))
}

func (b segmentBuilder) pai(terms string) (string, error) {
	return b.finish(fmt.Sprintf("PAI+%s:3'", Escape(terms)))
}

func (b segmentBuilder) tod(incoterms string) (string, error) {
	return b.finish(fmt.Sprintf("TOD+5++%s'", Escape(incoterms)))
}

// ftx: qualifier AAI (general information), one segment per chunk with
// a 1-based sequence number.
func (b segmentBuilder) ftx(sequence int, text string) (string, error) {
	return b.finish(fmt.Sprintf("FTX+AAI+%d++%s'", sequence, Escape(text)))
}

func (b segmentBuilder) unt(segmentCount int, messageRef string) (string, error) {
	return b.finish(fmt.Sprintf("UNT+%d+%s'", segmentCount, Escape(messageRef)))
}

func (b segmentBuilder) unz(messageCount int, messageRef string) (string, error) {
	return b.finish(fmt.Sprintf("UNZ+%d+%s'", messageCount, Escape(messageRef)))
}

func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// chunkText splits free text into consecutive fixed-size chunks. The
// last chunk carries the remainder.
func chunkText(s string, size int) []string {
	if s == "" || size <= 0 {
		return nil
	}
	var out []string
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	return append(out, s)
}
