package ledger_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fifotax/fifotax/date"
	"github.com/fifotax/fifotax/ledger"
	"github.com/fifotax/fifotax/util"
)

func init() {
	util.AssertsPanic = true
}

func mkDateYD(year uint32, day int) date.Date {
	tm := date.New(year, time.January, 1)
	return tm.AddDays(day)
}

func mkDate(day int) date.Date {
	return mkDateYD(2021, day)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	util.Assertf(err == nil, "dec: bad literal '%s'\n", s)
	return d
}

func mkBuy(day int, shares string, amount string, commission string) *ledger.Tx {
	return &ledger.Tx{Action: ledger.BUY, Shares: dec(shares),
		AmountPerShare: dec(amount), Commission: dec(commission),
		TradeDate: mkDate(day)}
}

func mkSell(day int, shares string, amount string, commission string) *ledger.Tx {
	return &ledger.Tx{Action: ledger.SELL, Shares: dec(shares),
		AmountPerShare: dec(amount), Commission: dec(commission),
		TradeDate: mkDate(day)}
}

// regex can be pattern string or Regexp
func RqPanicsWithRegexp(t *testing.T, regex interface{}, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			require.Regexp(t, regex, r)
		} else {
			require.FailNow(t, "Function did not panic")
		}
	}()
	fn()
}

// Use this instead of require.New if any type needing comparison has either
// a custom String method or Equal method (Decimal for example)
type CustomRequire struct {
	t       *testing.T
	options cmp.Options // This is a []Option
}

func NewCustomRequire(t *testing.T) *CustomRequire {
	return &CustomRequire{t, []cmp.Option{
		cmp.Comparer(func(d1, d2 decimal.Decimal) bool { return d1.Equal(d2) }),
		cmp.Comparer(func(d1, d2 date.Date) bool { return d1.Equal(d2) }),
	}}
}

func (rq *CustomRequire) PanicsWithRegexp(regex interface{}, fn func()) {
	RqPanicsWithRegexp(rq.t, regex, fn)
}

func (rq *CustomRequire) Equal(expected, actual interface{}) {
	diff := cmp.Diff(expected, actual, rq.options)
	require.True(rq.t, diff == "", diff)
}
