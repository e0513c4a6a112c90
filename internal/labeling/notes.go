package labeling

import (
	"strings"
	"time"

	"github.com/LCLAMEDIA/openorders/internal/calendar"
	"github.com/LCLAMEDIA/openorders/internal/model"
)

// Checking notes assigned by the classifier.
const (
	NoteLessThreeDays  = "< 3 DAYS"
	NoteCancelQueue    = "CANCEL Q"
	NoteDataEntryQueue = "Data Entry CHK Q"
	NoteCSStockIssue   = "CS STOCK ISSUE Q"
	NoteCSMGQueue      = "CSMG Q"
	NoteCSHoldQueue    = "CS HOLD Q"
	NotePOOverdue      = "PO OVERDUE"
	NotePOOK           = "PO OK"
	NoteShouldShip     = "SHOULD SHIP THIS WEEK"
	NotePOReceived     = "PO RECEIVED PLEASE SHIP"
	NoteDirectReceived = "DIRECT PO RECEIVED PLEASE SHIP"
	NoteDecoOK         = "DECO OK"
	NoteDecoOverdue    = "DECO OVERDUE"
	NoteExpired        = "EXPIRED"
)

// QID codes that drive the date-based rule subsets.
const (
	qidPurchaseOrder = 3
	qidReceivedA     = 4
	qidReceivedB     = 5
	qidDecoLongLead  = 31
	qidDecoShortLead = 32
)

// noteContext is the per-row input to the rule chain. Dates are pre-parsed;
// zero values disable the rules that depend on them.
type noteContext struct {
	rec        *model.OrderRecord
	ourRefDate time.Time
	now        time.Time
}

// noteRule inspects one condition. When applied is true the note is
// unconditionally reassigned, whatever an earlier rule set.
type noteRule func(ctx *noteContext) (note string, applied bool)

// noteRules is the fixed evaluation order. This is a sequential overwrite
// chain, not a priority table: the last rule that fires owns the note, so the
// order must not be rearranged.
var noteRules = []noteRule{
	ruleRecentlyIssued,
	taskQueueRule("62: CANCEL", NoteCancelQueue),
	taskQueueRule("Data Entry CHK", NoteDataEntryQueue),
	taskQueueRule("24: CS Customer Service-Stock Issue", NoteCSStockIssue),
	taskQueueRule("3: CSMG", NoteCSMGQueue),
	taskQueueRule("501: CS HOLD", NoteCSHoldQueue),
	rulePurchaseOrderDue,
	rulePOReceived,
	decoRule(qidDecoLongLead, 12, 11),
	decoRule(qidDecoShortLead, 7, 6),
	ruleExpiredCustomer,
}

// ClassifyNote resolves the checking note for a record. The record's
// CustomerLabel must already be assigned; now is the shared run clock.
func ClassifyNote(rec *model.OrderRecord, now time.Time) string {
	ctx := &noteContext{rec: rec, now: now}
	if d, ok := calendar.ExtractDate(rec.OurRef, now.Location()); ok {
		ctx.ourRefDate = d
	}

	note := ""
	for _, rule := range noteRules {
		if n, applied := rule(ctx); applied {
			note = n
		}
	}
	return note
}

// ruleRecentlyIssued flags orders issued within the last 3 business days.
func ruleRecentlyIssued(ctx *noteContext) (string, bool) {
	if ctx.rec.DateIssued.IsZero() {
		return "", false
	}
	ok, _ := calendar.CheckBusinessDays(ctx.rec.DateIssued, 3, calendar.CompareLessThan, ctx.now)
	return NoteLessThreeDays, ok
}

// taskQueueRule matches a workflow-stage tag inside TaskQueue.
func taskQueueRule(tag, note string) noteRule {
	lower := strings.ToLower(tag)
	return func(ctx *noteContext) (string, bool) {
		return note, strings.Contains(strings.ToLower(ctx.rec.TaskQueue), lower)
	}
}

// rulePurchaseOrderDue compares the OurRef date of a QID 3 order against
// today. The passed check runs before today_or_future; for a parsed date
// exactly one of the two fires.
func rulePurchaseOrderDue(ctx *noteContext) (string, bool) {
	if !ctx.rec.HasQID || ctx.rec.QID != qidPurchaseOrder || ctx.ourRefDate.IsZero() {
		return "", false
	}
	if ok, _ := calendar.CheckBusinessDays(ctx.ourRefDate, 0, calendar.ComparePassed, ctx.now); ok {
		return NotePOOverdue, true
	}
	if ok, _ := calendar.CheckBusinessDays(ctx.ourRefDate, 0, calendar.CompareTodayOrFuture, ctx.now); ok {
		return NotePOOK, true
	}
	return "", false
}

// rulePOReceived handles QID 4/5 orders by QIDDate age, with the DIRECT
// override when the reference text mentions a direct shipment.
func rulePOReceived(ctx *noteContext) (string, bool) {
	if !ctx.rec.HasQID || (ctx.rec.QID != qidReceivedA && ctx.rec.QID != qidReceivedB) || ctx.rec.QIDDate.IsZero() {
		return "", false
	}
	note, applied := "", false
	if ok, _ := calendar.CheckBusinessDays(ctx.rec.QIDDate, 3, calendar.CompareLessThan, ctx.now); ok {
		note, applied = NoteShouldShip, true
	}
	if ok, _ := calendar.CheckBusinessDays(ctx.rec.QIDDate, 3, calendar.CompareGreaterThan, ctx.now); ok {
		note, applied = NotePOReceived, true
		if strings.Contains(strings.ToLower(ctx.rec.OurRef), "direct") {
			note = NoteDirectReceived
		}
	}
	return note, applied
}

// decoRule handles the decorated-stock QIDs: within okDays business days the
// order is on time, beyond overdueDays it is overdue.
func decoRule(qid, okDays, overdueDays int) noteRule {
	return func(ctx *noteContext) (string, bool) {
		if !ctx.rec.HasQID || ctx.rec.QID != qid || ctx.rec.QIDDate.IsZero() {
			return "", false
		}
		// The ok/overdue windows overlap by one day; checked sequentially
		// the overdue result wins the overlap.
		note, applied := "", false
		if ok, _ := calendar.CheckBusinessDays(ctx.rec.QIDDate, okDays, calendar.CompareLessThan, ctx.now); ok {
			note, applied = NoteDecoOK, true
		}
		if ok, _ := calendar.CheckBusinessDays(ctx.rec.QIDDate, overdueDays, calendar.CompareGreaterThan, ctx.now); ok {
			note, applied = NoteDecoOverdue, true
		}
		return note, applied
	}
}

// ruleExpiredCustomer runs last so an expired contract always wins.
func ruleExpiredCustomer(ctx *noteContext) (string, bool) {
	return NoteExpired, strings.Contains(strings.ToLower(ctx.rec.CustomerLabel), "expire")
}
