package fundwatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeDB_MissingFileYieldsFreshStore(t *testing.T) {
	db, err := DecodeDB(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if got := db.Users(); len(got) != 1 || got[0] != DefaultUser {
		t.Errorf("fresh store users = %v, want [%s]", got, DefaultUser)
	}
	if db.Ledger(DefaultUser) == nil {
		t.Error("fresh store has no default ledger")
	}
}

func TestDB_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fund_user_data.json")

	db := NewDB()
	l := db.Ledger(DefaultUser)
	if err := l.OpenOrBuy("001186", Q(1000), CNY(2.0), "broker-a"); err != nil {
		t.Fatal(err)
	}
	if err := l.OpenOrBuy("sh510300", Q(200), CNY(3.85), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Create("yy"); err != nil {
		t.Fatal(err)
	}

	if err := EncodeDB(path, db); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	loaded, err := DecodeDB(path)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got := loaded.Users(); len(got) != 2 {
		t.Fatalf("users = %v, want 2 entries", got)
	}
	p := loaded.Ledger(DefaultUser).Position("001186")
	if p == nil {
		t.Fatal("position lost in round trip")
	}
	if !p.Shares.Equal(Q(1000)) || p.Channel != "broker-a" {
		t.Errorf("position = %+v, want 1000 shares on broker-a", p)
	}
	if !p.AverageCost.Amount().Equal(decimal.NewFromFloat(2.0)) {
		t.Errorf("cost = %s, want 2", p.AverageCost.Amount())
	}
	if loaded.Ledger("yy") == nil {
		t.Error("created user lost in round trip")
	}
}

// The historical file layout must keep loading, and fields the tracker does
// not own (the profile blob) must survive a round trip untouched.
func TestDecodeDB_HistoricalLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fund_user_data.json")
	content := `{"Default": {"holdings": [{"code": "001186", "shares": 1000, "cost": 2.0}], "profile": {"age": 25, "height": 175}}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	db, err := DecodeDB(path)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := db.Ledger(DefaultUser).Position("001186")
	if p == nil || !p.Shares.Equal(Q(1000)) {
		t.Fatalf("historical holding not loaded: %+v", p)
	}

	if err := EncodeDB(path, db); err != nil {
		t.Fatal(err)
	}
	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(rewritten), `"age"`) {
		t.Error("profile blob lost on save")
	}
}

func TestDB_Create_Validation(t *testing.T) {
	db := NewDB()
	if _, err := db.Create(""); err == nil {
		t.Error("empty user name accepted")
	}
	if _, err := db.Create(DefaultUser); err == nil {
		t.Error("duplicate user accepted")
	}
}

func TestDecodeDB_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeDB(path); err == nil {
		t.Error("malformed store accepted")
	}
}
