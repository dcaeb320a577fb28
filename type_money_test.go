package stock

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_ExactArithmetic(t *testing.T) {
	// The classic binary float trap: 0.1+0.2 stays exactly 0.3.
	sum := XOF(0.1).Add(XOF(0.2))
	if !sum.Decimal().Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("0.1+0.2 = %s, want exactly 0.3", sum.Decimal())
	}

	total := XOF(5000).Mul(Q(100)).Add(XOF(750))
	if !total.Equal(XOF(500750)) {
		t.Errorf("100*5000+750 = %s, want 500750", total.Decimal())
	}
}

func TestMoney_WeakEmptyCurrency(t *testing.T) {
	got := NO(100).Add(XOF(50))
	if got.Currency() != "XOF" {
		t.Errorf("currency = %q, want XOF to win over the empty one", got.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("mixing two real currencies should panic")
		}
	}()
	XOF(1).Add(M(1, "EUR"))
}

func TestMoney_SignedString(t *testing.T) {
	if got := XOF(0).SignedString(); got != "-" {
		t.Errorf("zero SignedString = %q, want -", got)
	}
	if got := XOF(100).SignedString(); !strings.HasPrefix(got, "+") {
		t.Errorf("positive SignedString = %q, want a + prefix", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(2.5).String(); got != "2.50%" {
		t.Errorf("String() = %q, want 2.50%%", got)
	}
	if got := Percent(2.5).SignedString(); got != "+2.50%" {
		t.Errorf("SignedString() = %q, want +2.50%%", got)
	}
	if got := Percent(-1.25).SignedString(); got != "-1.25%" {
		t.Errorf("SignedString() = %q, want -1.25%%", got)
	}
	if !Percent(10).Equal(10.00009) {
		t.Error("Equal() should tolerate sub-precision noise")
	}
	if Percent(10).Equal(10.1) {
		t.Error("Equal() should reject a real difference")
	}
}

func TestQuantity_JSON(t *testing.T) {
	data, err := Q(10.5).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if string(data) != "10.5" {
		t.Errorf("MarshalJSON() = %s, want unquoted 10.5", data)
	}

	var q Quantity
	if err := q.UnmarshalJSON([]byte("42")); err != nil {
		t.Fatalf("UnmarshalJSON() failed: %v", err)
	}
	if !q.Equal(Q(42)) {
		t.Errorf("UnmarshalJSON(42) = %s", q)
	}
}
