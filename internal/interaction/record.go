package interaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wichananm65/beauty-dashboard-backend/internal/bracket"
	"github.com/wichananm65/beauty-dashboard-backend/internal/catalog"
)

var (
	// ErrConfiguration means a backend credential exists but cannot be used.
	ErrConfiguration = errors.New("interaction backend misconfigured")
	// ErrPersistence means a read or write on the backend failed.
	ErrPersistence = errors.New("interaction persistence failed")
	// ErrInvalidRecord means a record was rejected before reaching the backend.
	ErrInvalidRecord = errors.New("invalid interaction record")
	// ErrUnknownProduct means the brand has no product for the skin type.
	ErrUnknownProduct = errors.New("unknown product")
)

// Record is one saved product interaction.
type Record struct {
	Brand       string          `json:"brand" bson:"brand"`
	ProductName string          `json:"product_name" bson:"product_name"`
	SkinType    string          `json:"skin_type" bson:"skin_type"`
	PriceRange  bracket.Bracket `json:"price_range" bson:"price_range"`
	PriceValue  int             `json:"price_value" bson:"price_value"`
	Timestamp   Timestamp       `json:"timestamp" bson:"-"`
}

// Validate checks required fields and that the price range agrees with the price.
func (r Record) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Brand) == "" {
		errs = append(errs, errors.New("brand is required"))
	}
	if strings.TrimSpace(r.ProductName) == "" {
		errs = append(errs, errors.New("product_name is required"))
	}
	if _, err := catalog.ParseSkinType(r.SkinType); err != nil {
		errs = append(errs, fmt.Errorf("skin_type %q: %w", r.SkinType, err))
	}
	if r.PriceValue < 0 {
		errs = append(errs, errors.New("price_value must be >= 0"))
	}
	if want := bracket.ForRecord(r.PriceValue); r.PriceRange != want {
		errs = append(errs, fmt.Errorf("price_range %q does not match price_value %d (want %q)", r.PriceRange, r.PriceValue, want))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, errors.Join(errs...))
}

// Timestamp is a UTC instant that may be unknown. Unparseable input decodes
// to an unknown timestamp instead of failing the record.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC(), Valid: true}
}

// layouts accepted on read; naive layouts are taken as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t)
		}
	}
	return Timestamp{}
}

func (ts Timestamp) String() string {
	if !ts.Valid {
		return ""
	}
	return ts.Time.UTC().Format(time.RFC3339Nano)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*ts = Timestamp{}
		return nil
	}
	*ts = ParseTimestamp(s)
	return nil
}

// newerThan ranks known timestamps newest first and unknown ones last.
func (ts Timestamp) newerThan(other Timestamp) bool {
	switch {
	case ts.Valid && !other.Valid:
		return true
	case !ts.Valid:
		return false
	default:
		return ts.Time.After(other.Time)
	}
}

// SortRecent orders records by timestamp descending, unknown timestamps last.
// Records with equal timestamps keep their relative order.
func SortRecent(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.newerThan(records[j].Timestamp)
	})
}

// decodeLoose builds a record from a generic document. Fields of the wrong
// type are left zero and a bad timestamp becomes unknown.
func decodeLoose(m map[string]any) Record {
	r := Record{
		Brand:       looseString(m["brand"]),
		ProductName: looseString(m["product_name"]),
		SkinType:    looseString(m["skin_type"]),
		PriceRange:  bracket.Bracket(looseString(m["price_range"])),
		PriceValue:  looseInt(m["price_value"]),
	}
	switch v := m["timestamp"].(type) {
	case time.Time:
		r.Timestamp = NewTimestamp(v)
	case string:
		r.Timestamp = ParseTimestamp(v)
	}
	return r
}

func decodeLooseJSON(raw json.RawMessage) Record {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return Record{}
	}
	return decodeLoose(m)
}

func looseString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func looseInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
