package edifact

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Generator converts validated purchase orders into EDIFACT ORDERS
// interchanges. It is a pure computation over an immutable validated
// copy of the input: no shared state, repeated calls with the same
// input and clock produce byte-identical output.
type Generator struct {
	cfg   Config
	shape ShapeValidator
	log   logrus.FieldLogger
	now   func() time.Time
}

type Option func(*Generator)

// WithClock overrides the UNB timestamp source. Tests pin it so output
// becomes reproducible.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Generator) { g.log = log }
}

// WithShapeValidator replaces the default gojsonschema-backed shape
// check.
func WithShapeValidator(shape ShapeValidator) Option {
	return func(g *Generator) { g.shape = shape }
}

func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: cfg,
		log: logrus.StandardLogger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.shape == nil {
		shape, err := NewSchemaValidator()
		if err != nil {
			return nil, err
		}
		g.shape = shape
	}
	return g, nil
}

// Result is one generated interchange plus the envelope facts the
// service layer persists alongside it.
type Result struct {
	Message      string
	MessageRef   string
	OrderNumber  string
	Currency     string
	SegmentCount int
	GrandTotal   string
}

// segmentList collects segments and latches the first builder error so
// assembly reads linearly.
type segmentList struct {
	segs []string
	err  error
}

func (l *segmentList) add(seg string, err error) {
	if l.err != nil {
		return
	}
	if err != nil {
		l.err = err
		return
	}
	l.segs = append(l.segs, seg)
}

func (l *segmentList) addAll(segs []string, err error) {
	if l.err != nil {
		return
	}
	if err != nil {
		l.err = err
		return
	}
	l.segs = append(l.segs, segs...)
}

func (l *segmentList) addRaw(seg string) {
	if l.err == nil {
		l.segs = append(l.segs, seg)
	}
}

// Generate validates raw and assembles the full interchange. Validation
// is fail-fast: the first violated rule aborts before any segment is
// built and no partial output is ever returned.
func (g *Generator) Generate(raw map[string]any) (Result, error) {
	ord, err := ValidateOrder(raw, g.cfg, g.shape)
	if err != nil {
		g.log.WithError(err).Error("order validation failed")
		return Result{}, err
	}

	// Precision guard before any formatting happens: item prices and
	// the tax rate must already fit the configured rounding.
	for _, item := range ord.Items {
		if err := CheckPrecision("price", item.Price, g.cfg.places); err != nil {
			return Result{}, err
		}
	}
	if ord.TaxRate != nil {
		if err := CheckPrecision("tax_rate", *ord.TaxRate, g.cfg.places); err != nil {
			return Result{}, err
		}
	}

	b := segmentBuilder{cfg: g.cfg}
	list := &segmentList{}

	if g.cfg.Envelope {
		list.addRaw(b.una())
		list.add(b.unb(g.now().UTC(), ord.MessageRef))
	}
	list.add(b.unh(ord.MessageRef))
	list.add(b.bgm(ord.OrderNumber))
	list.add(b.dtm("137", ord.OrderDate))

	if ord.DeliveryDate != "" {
		list.add(b.dtm("2", ord.DeliveryDate))
	}
	if ord.Currency != "" {
		list.add(b.cux(ord.Currency))
	}

	for _, party := range ord.Parties {
		list.addAll(b.nad(party))
		if party.Address != "" {
			list.add(b.com(party.Address, "AD"))
		}
		if party.Contact != "" {
			list.add(b.com(party.Contact, "TE"))
		}
	}

	goodsTotal := decimal.Zero
	for i, item := range ord.Items {
		list.add(b.lin(i+1, item.ProductCode))
		list.add(b.imd(item.Description))
		list.add(b.qty(item.Quantity, item.Unit))
		list.add(b.pri(item.Price, item.Unit))
		goodsTotal = goodsTotal.Add(LineTotal(item.Price, item.Quantity, g.cfg.places))
	}

	grandTotal := goodsTotal
	if ord.TaxRate != nil {
		taxAmount := TaxAmount(goodsTotal, *ord.TaxRate, g.cfg.places)
		list.add(b.tax(*ord.TaxRate))
		list.add(b.moa("124", taxAmount))
		grandTotal = goodsTotal.Add(taxAmount)
	}

	if ord.DeliveryLocation != "" {
		list.add(b.loc(ord.DeliveryLocation))
	}
	if ord.PaymentTerms != "" {
		list.add(b.pai(ord.PaymentTerms))
	}
	if ord.Incoterms != "" {
		list.add(b.tod(ord.Incoterms))
	}
	for i, chunk := range chunkText(ord.SpecialInstructions, g.cfg.MaxFieldLength) {
		list.add(b.ftx(i+1, chunk))
	}

	list.add(b.moa("79", grandTotal))

	if list.err != nil {
		g.log.WithError(list.err).Error("segment assembly failed")
		return Result{}, list.err
	}

	unhIndex := -1
	for i, seg := range list.segs {
		if strings.HasPrefix(seg, "UNH+") {
			unhIndex = i
			break
		}
	}
	if unhIndex < 0 {
		err := newError(CodeMissingUNH, "UNH segment missing from assembled message")
		g.log.WithError(err).Error("internal consistency fault")
		return Result{}, err
	}

	// UNT declares every segment from UNH to the trailer inclusive;
	// the +1 stands in for the UNT segment not yet appended.
	segmentCount := len(list.segs) - unhIndex + 1
	list.add(b.unt(segmentCount, ord.MessageRef))

	if g.cfg.Envelope {
		// A single message per interchange, so UNZ always declares 1.
		list.add(b.unz(1, ord.MessageRef))
	}
	if list.err != nil {
		return Result{}, list.err
	}

	res := Result{
		Message:      strings.Join(list.segs, g.cfg.LineEnding),
		MessageRef:   ord.MessageRef,
		OrderNumber:  ord.OrderNumber,
		Currency:     ord.Currency,
		SegmentCount: segmentCount,
		GrandTotal:   RoundHalfUp(grandTotal, g.cfg.places).StringFixed(g.cfg.places),
	}

	g.log.WithFields(logrus.Fields{
		"message_ref": res.MessageRef,
		"segments":    res.SegmentCount,
		"total":       res.GrandTotal,
	}).Info("generated EDIFACT ORDERS interchange")

	return res, nil
}
