package fundwatch

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// This file persists user ledgers as a single JSON file mapping user name
// to holdings, compatible with the historical fund_user_data.json layout:
//
//	{"Default": {"holdings": [{"code": "001186", "shares": 1000, "cost": 2.0}], "profile": {...}}}
//
// The store offers no transactional guarantee beyond last-writer-wins. It
// is written only on explicit ledger mutations, never from a fetch cycle.

// DefaultUser is the account every fresh store starts with.
const DefaultUser = "Default"

// DB is the set of all user ledgers.
type DB struct {
	users map[string]*userRecord
}

type userRecord struct {
	ledger *Ledger
	// profile is free-form per-user data owned by the UI layer; it is
	// carried through load/save untouched.
	profile json.RawMessage
}

// NewDB returns a store holding only the default user with no positions.
func NewDB() *DB {
	db := &DB{users: make(map[string]*userRecord)}
	db.users[DefaultUser] = &userRecord{ledger: NewLedger(DefaultUser)}
	return db
}

// Users lists the user names, sorted.
func (db *DB) Users() []string {
	names := make([]string, 0, len(db.users))
	for name := range db.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ledger returns the ledger of a user, or nil when the user does not exist.
func (db *DB) Ledger(user string) *Ledger {
	if rec, ok := db.users[user]; ok {
		return rec.ledger
	}
	return nil
}

// Create adds a new empty user.
func (db *DB) Create(user string) (*Ledger, error) {
	if user == "" {
		return nil, fmt.Errorf("user name is missing")
	}
	if _, exists := db.users[user]; exists {
		return nil, fmt.Errorf("user %q already exists", user)
	}
	rec := &userRecord{ledger: NewLedger(user)}
	db.users[user] = rec
	return rec.ledger, nil
}

// json shapes for the on-disk format.

type jholding struct {
	Code    string          `json:"code"`
	Shares  decimal.Decimal `json:"shares"`
	Cost    decimal.Decimal `json:"cost"`
	Channel string          `json:"channel,omitempty"`
}

type juser struct {
	Holdings []jholding      `json:"holdings"`
	Profile  json.RawMessage `json:"profile,omitempty"`
}

// DecodeDB reads the store file. A missing file is not an error: it yields
// a fresh store with the default user.
func DecodeDB(path string) (*DB, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewDB(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open store %q: %w", path, err)
	}

	jusers := make(map[string]juser)
	if err := json.Unmarshal(content, &jusers); err != nil {
		return nil, fmt.Errorf("format error in store %q: %w", path, err)
	}

	db := &DB{users: make(map[string]*userRecord)}
	for name, ju := range jusers {
		ledger := NewLedger(name)
		for _, h := range ju.Holdings {
			if h.Code == "" {
				return nil, fmt.Errorf("format error in store %q: holding with no code for user %q", path, name)
			}
			ledger.positions = append(ledger.positions, &Position{
				ID:          h.Code,
				Shares:      Q(h.Shares),
				AverageCost: CNY(h.Cost),
				Channel:     h.Channel,
			})
		}
		db.users[name] = &userRecord{ledger: ledger, profile: ju.Profile}
	}
	if len(db.users) == 0 {
		db.users[DefaultUser] = &userRecord{ledger: NewLedger(DefaultUser)}
	}
	return db, nil
}

// EncodeDB writes the store file, replacing its previous content.
// An I/O failure leaves the in-memory store untouched; the caller decides
// whether to retry or surface it.
func EncodeDB(path string, db *DB) error {
	jusers := make(map[string]juser, len(db.users))
	for name, rec := range db.users {
		ju := juser{Holdings: make([]jholding, 0, len(rec.ledger.positions)), Profile: rec.profile}
		for _, p := range rec.ledger.positions {
			ju.Holdings = append(ju.Holdings, jholding{
				Code:    p.ID,
				Shares:  p.Shares.Decimal(),
				Cost:    p.AverageCost.Amount(),
				Channel: p.Channel,
			})
		}
		jusers[name] = ju
	}

	content, err := json.MarshalIndent(jusers, "", " ")
	if err != nil {
		return fmt.Errorf("cannot encode store: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("cannot write store %q: %w", path, err)
	}
	return nil
}
