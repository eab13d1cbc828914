package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/ofx2csv/record"
	"github.com/rustyeddy/ofx2csv/value"
)

// OFXParser reads OFX v1 (SGML) and v2 (XML) exports with ofxgo.
type OFXParser struct{}

func (OFXParser) Parse(r io.Reader) (*Document, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("parse ofx: %w", err)
	}
	return FromResponse(resp)
}

// FromResponse maps every bank, credit card and investment statement in resp
// to an Account.
func FromResponse(resp *ofxgo.Response) (*Document, error) {
	doc := &Document{}

	for _, msg := range resp.InvStmt {
		stmt, ok := msg.(*ofxgo.InvStatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected investment message %T", msg)
		}
		doc.Accounts = append(doc.Accounts, investmentAccount(stmt))
	}
	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected bank message %T", msg)
		}
		doc.Accounts = append(doc.Accounts, Account{
			ID:        stmt.BankAcctFrom.AcctID.String(),
			Kind:      KindBank,
			Statement: bankStatement(stmt.BankTranList, stmt.DtAsOf, stmt.BalAmt),
		})
	}
	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected credit card message %T", msg)
		}
		doc.Accounts = append(doc.Accounts, Account{
			ID:        stmt.CCAcctFrom.AcctID.String(),
			Kind:      KindCreditCard,
			Statement: bankStatement(stmt.BankTranList, stmt.DtAsOf, stmt.BalAmt),
		})
	}

	return doc, nil
}

func investmentAccount(stmt *ofxgo.InvStatementResponse) Account {
	s := Statement{EndDate: stmt.DtAsOf.UTC(), AvailableCash: decimal.Zero}

	if stmt.InvBal != nil {
		s.AvailableCash = toDecimal(stmt.InvBal.AvailCash)
	}

	if list := stmt.InvTranList; list != nil {
		if !list.DtEnd.IsZero() {
			s.EndDate = list.DtEnd.UTC()
		}
		for _, tran := range list.InvTransactions {
			s.Transactions = append(s.Transactions, investmentTransaction(tran))
		}
		for _, bank := range list.BankTransactions {
			for _, tran := range bank.Transactions {
				s.Transactions = append(s.Transactions, bankTransaction(tran))
			}
		}
	}

	for _, pos := range stmt.InvPosList {
		s.Positions = append(s.Positions, position(pos))
	}

	return Account{
		ID:        stmt.InvAcctFrom.AcctID.String(),
		Kind:      KindInvestment,
		Statement: s,
	}
}

func bankStatement(list *ofxgo.TransactionList, asOf ofxgo.Date, balance ofxgo.Amount) Statement {
	s := Statement{EndDate: asOf.UTC(), AvailableCash: toDecimal(balance)}
	if list == nil {
		return s
	}
	if !list.DtEnd.IsZero() {
		s.EndDate = list.DtEnd.UTC()
	}
	for _, tran := range list.Transactions {
		s.Transactions = append(s.Transactions, bankTransaction(tran))
	}
	return s
}

// bankTransaction always carries the full set of bank columns; the ones the
// source leaves out are Absent.
func bankTransaction(t ofxgo.Transaction) record.Record {
	var payee value.Value = value.Absent{}
	switch {
	case t.Name != "":
		payee = value.Text(t.Name)
	case t.Payee != nil:
		payee = value.Text(t.Payee.Name)
	}

	var sic value.Value = value.Absent{}
	if t.SIC != 0 {
		sic = value.Int(t.SIC)
	}

	var b builder
	b.add("payee", payee)
	b.add("type", value.Text(strings.ToLower(t.TrnType.String())))
	b.add("date", dateValue(&t.DtPosted))
	b.add("user_date", dateValue(t.DtUser))
	b.add("amount", amountValue(t.TrnAmt))
	b.add("id", textValue(t.FiTID))
	b.add("memo", textValue(t.Memo))
	b.add("sic", sic)
	b.add("mcc", value.Absent{})
	b.add("checknum", textValue(t.CheckNum))
	return b.rec
}

func investmentTransaction(tran ofxgo.InvTransaction) record.Record {
	var b builder
	b.add("type", value.Text(strings.ToLower(tran.TransactionType())))

	switch t := tran.(type) {
	case ofxgo.BuyDebt:
		b.invBuy(t.InvBuy)
	case ofxgo.BuyMF:
		b.invBuy(t.InvBuy)
	case ofxgo.BuyOpt:
		b.invBuy(t.InvBuy)
	case ofxgo.BuyOther:
		b.invBuy(t.InvBuy)
	case ofxgo.BuyStock:
		b.invBuy(t.InvBuy)
	case ofxgo.SellDebt:
		b.invSell(t.InvSell)
	case ofxgo.SellMF:
		b.invSell(t.InvSell)
	case ofxgo.SellOpt:
		b.invSell(t.InvSell)
	case ofxgo.SellOther:
		b.invSell(t.InvSell)
	case ofxgo.SellStock:
		b.invSell(t.InvSell)
	case ofxgo.ClosureOpt:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.amount("units", t.Units)
	case ofxgo.Income:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.add("income_type", value.Text(strings.ToLower(t.IncomeType.String())))
		b.amount("total", t.Total)
	case ofxgo.Reinvest:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.add("income_type", value.Text(strings.ToLower(t.IncomeType.String())))
		b.amount("units", t.Units)
		b.amount("unit_price", t.UnitPrice)
		b.amount("commission", t.Commission)
		b.amount("fees", t.Fees)
		b.amount("total", t.Total)
	case ofxgo.RetOfCap:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.amount("total", t.Total)
	case ofxgo.InvExpense:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.amount("total", t.Total)
	case ofxgo.MarginInterest:
		b.invTran(t.InvTran)
		b.amount("total", t.Total)
	case ofxgo.JrnlFund:
		b.invTran(t.InvTran)
		b.amount("total", t.Total)
	case ofxgo.JrnlSec:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.amount("units", t.Units)
	case ofxgo.Split:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.amount("units", t.NewUnits)
	case ofxgo.Transfer:
		b.invTran(t.InvTran)
		b.text("security", t.SecID.UniqueID)
		b.amount("units", t.Units)
		b.amount("unit_price", t.UnitPrice)
		b.add("tferaction", value.Text(strings.ToLower(t.TferAction.String())))
	default:
		b.add("details", value.UnknownOf(tran))
	}

	return b.rec
}

func position(pos ofxgo.Position) record.Record {
	var inv ofxgo.InvPosition
	switch p := pos.(type) {
	case ofxgo.StockPosition:
		inv = p.InvPos
	case ofxgo.MFPosition:
		inv = p.InvPos
	case ofxgo.OptPosition:
		inv = p.InvPos
	case ofxgo.DebtPosition:
		inv = p.InvPos
	case ofxgo.OtherPosition:
		inv = p.InvPos
	default:
		return record.Record{
			{Name: "security", Value: value.UnknownOf(pos)},
		}
	}

	var b builder
	b.text("security", inv.SecID.UniqueID)
	b.amount("units", inv.Units)
	b.amount("unit_price", inv.UnitPrice)
	b.amount("market_value", inv.MktVal)
	b.date("date", inv.DtPriceAsOf)
	return b.rec
}

// builder accumulates fields, skipping the ones the source left empty.
type builder struct {
	rec record.Record
}

func (b *builder) add(name string, v value.Value) {
	b.rec = append(b.rec, record.Field{Name: name, Value: v})
}

func (b *builder) text(name string, s ofxgo.String) {
	if s == "" {
		return
	}
	b.add(name, value.Text(s))
}

func (b *builder) date(name string, d ofxgo.Date) {
	if d.IsZero() {
		return
	}
	b.add(name, dateValue(&d))
}

func (b *builder) optDate(name string, d *ofxgo.Date) {
	if d == nil {
		return
	}
	b.date(name, *d)
}

func (b *builder) amount(name string, a ofxgo.Amount) {
	b.add(name, amountValue(a))
}

func (b *builder) invTran(t ofxgo.InvTran) {
	b.text("id", t.FiTID)
	b.date("tradeDate", t.DtTrade)
	b.optDate("settleDate", t.DtSettle)
	b.text("memo", t.Memo)
}

func (b *builder) invBuy(t ofxgo.InvBuy) {
	b.invTran(t.InvTran)
	b.text("security", t.SecID.UniqueID)
	b.amount("units", t.Units)
	b.amount("unit_price", t.UnitPrice)
	b.amount("commission", t.Commission)
	b.amount("fees", t.Fees)
	b.amount("total", t.Total)
}

func (b *builder) invSell(t ofxgo.InvSell) {
	b.invTran(t.InvTran)
	b.text("security", t.SecID.UniqueID)
	b.amount("units", t.Units)
	b.amount("unit_price", t.UnitPrice)
	b.amount("commission", t.Commission)
	b.amount("fees", t.Fees)
	b.amount("total", t.Total)
}

// dateValue converts an OFX date to UTC, the zone every timestamp is
// written in.
func dateValue(d *ofxgo.Date) value.Value {
	if d == nil || d.IsZero() {
		return value.Absent{}
	}
	return value.Timestamp(d.UTC())
}

func textValue(s ofxgo.String) value.Value {
	if s == "" {
		return value.Absent{}
	}
	return value.Text(s)
}

func amountValue(a ofxgo.Amount) value.Value {
	d, err := decimal.NewFromString(a.String())
	if err != nil {
		return value.Unknown{Type: "ofxgo.Amount", Repr: a.String()}
	}
	return value.NewDecimal(d)
}

func toDecimal(a ofxgo.Amount) decimal.Decimal {
	d, err := decimal.NewFromString(a.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
