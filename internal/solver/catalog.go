// Package solver holds the constraint catalog, the scorer, the greedy
// constructor and the local-search optimizer.
package solver

import (
	"encoding/json"
	"fmt"
	"sort"

	"hotel_allocation/internal/domain"
)

// Code identifies a catalog entry. The set is closed; tenants only toggle,
// weight and parameterize entries.
type Code string

const (
	RoomTypeMatch         Code = "ROOM_TYPE_MATCH"
	NoDoubleBooking       Code = "NO_DOUBLE_BOOKING"
	AccessibilityRequired Code = "ACCESSIBILITY_REQUIRED"
	SmokingPolicy         Code = "SMOKING_POLICY"
	PetPolicy             Code = "PET_POLICY"
	AllBookingsAssigned   Code = "ALL_BOOKINGS_ASSIGNED"

	VIPOceanView          Code = "VIP_OCEAN_VIEW"
	VIPHighFloor          Code = "VIP_HIGH_FLOOR"
	ViewPreference        Code = "VIEW_PREFERENCE"
	FloorPreference       Code = "FLOOR_PREFERENCE"
	QuietLocation         Code = "QUIET_LOCATION"
	BudgetConstraint      Code = "BUDGET_CONSTRAINT"
	EarlyCheckIn          Code = "EARLY_CHECKIN"
	LateCheckout          Code = "LATE_CHECKOUT"
	ConnectingRooms       Code = "CONNECTING_ROOMS"
	BalconyPreference     Code = "BALCONY_PREFERENCE"
	KitchenettePreference Code = "KITCHENETTE_PREFERENCE"
	LoyaltyTierUpgrade    Code = "LOYALTY_TIER_UPGRADE"
	MinimizeRoomChanges   Code = "MINIMIZE_ROOM_CHANGES"
)

// Codes lists every catalog code in registration order.
var Codes = []Code{
	RoomTypeMatch, NoDoubleBooking, AccessibilityRequired, SmokingPolicy, PetPolicy, AllBookingsAssigned,
	VIPOceanView, VIPHighFloor, ViewPreference, FloorPreference, QuietLocation, BudgetConstraint,
	EarlyCheckIn, LateCheckout, ConnectingRooms, BalconyPreference, KitchenettePreference,
	LoyaltyTierUpgrade, MinimizeRoomChanges,
}

type ParamType string

const (
	ParamInt     ParamType = "int"
	ParamFloat   ParamType = "float"
	ParamBool    ParamType = "bool"
	ParamStrings ParamType = "strings"
)

// Eval is the context an evaluator sees: the whole solution and the booking
// under evaluation.
type Eval struct {
	Sol   *Solution
	Index int
}

func (e Eval) Booking() *domain.GuestBooking { return &e.Sol.Bookings[e.Index] }
func (e Eval) Room() *domain.Room            { return e.Sol.Room(e.Index) }

// Evaluator returns nil when the rule does not apply to the booking. Returned
// matches only carry Score and Justification; the caller stamps the rest.
type Evaluator func(ev Eval, p Params) *domain.ConstraintMatch

type Entry struct {
	Code          Code                  `json:"code"`
	Name          string                `json:"name"`
	Kind          domain.ConstraintKind `json:"kind"`
	DefaultWeight int                   `json:"defaultWeight"`
	Schema        map[string]ParamType  `json:"paramSchema,omitempty"`
	Defaults      Params                `json:"defaultParams,omitempty"`

	eval Evaluator
}

var registry = map[Code]Entry{}

func register(e Entry) {
	if _, dup := registry[e.Code]; dup {
		panic("solver: duplicate constraint " + string(e.Code))
	}
	registry[e.Code] = e
}

func init() {
	registerHard()
	registerSoft()
}

// Lookup returns the catalog entry for code.
func Lookup(code string) (Entry, bool) {
	e, ok := registry[Code(code)]
	return e, ok
}

// Catalog returns all entries, hard first, then by code.
func Catalog() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == domain.KindHard
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Constraint is a catalog entry bound to one tenant's weight and parameters.
type Constraint struct {
	Entry
	Weight int
	Params Params
}

// Evaluate runs the entry against booking i of sol.
func (c Constraint) Evaluate(sol *Solution, i int) *domain.ConstraintMatch {
	m := c.eval(Eval{Sol: sol, Index: i}, c.Params)
	if m == nil {
		return nil
	}
	m.Code = string(c.Code)
	m.Name = c.Name
	m.BookingID = sol.Bookings[i].ID
	return m
}

// Bind resolves tenant configs against the catalog. Disabled configs are
// skipped. Hard constraints always weigh -1 per violation.
func Bind(cfgs []domain.TenantConstraintConfig) ([]Constraint, error) {
	out := make([]Constraint, 0, len(cfgs))
	for _, cfg := range cfgs {
		if !cfg.Enabled {
			continue
		}
		e, ok := Lookup(cfg.Code)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownConstraint, cfg.Code)
		}
		if err := e.ValidateParams(cfg.Params); err != nil {
			return nil, err
		}
		w := e.DefaultWeight
		if cfg.Weight != nil {
			w = *cfg.Weight
		} else if cfg.DefaultWeight != 0 {
			w = cfg.DefaultWeight
		}
		if e.Kind == domain.KindHard {
			w = -1
		}
		p := make(Params, len(e.Defaults)+len(cfg.Params)+1)
		for k, v := range e.Defaults {
			p[k] = v
		}
		for k, v := range cfg.Params {
			p[k] = v
		}
		p["weight"] = w
		out = append(out, Constraint{Entry: e, Weight: w, Params: p})
	}
	return out, nil
}

// DefaultConfigs enables every catalog entry with its default weight.
func DefaultConfigs(tenantID string) []domain.TenantConstraintConfig {
	out := make([]domain.TenantConstraintConfig, 0, len(Codes))
	for _, code := range Codes {
		e := registry[code]
		out = append(out, domain.TenantConstraintConfig{
			TenantID:      tenantID,
			Code:          string(e.Code),
			Name:          e.Name,
			Kind:          e.Kind,
			Enabled:       true,
			DefaultWeight: e.DefaultWeight,
		})
	}
	return out
}

// ValidateParams checks p against the entry's schema. Unknown keys are rejected.
func (e Entry) ValidateParams(p map[string]any) error {
	for k, v := range p {
		if k == "weight" {
			continue
		}
		t, ok := e.Schema[k]
		if !ok {
			return fmt.Errorf("%s: unknown parameter %q", e.Code, k)
		}
		if !t.accepts(v) {
			return fmt.Errorf("%s: parameter %q must be %s, got %T", e.Code, k, t, v)
		}
	}
	return nil
}

func (t ParamType) accepts(v any) bool {
	switch t {
	case ParamInt, ParamFloat:
		_, ok := toFloat(v)
		return ok
	case ParamBool:
		_, ok := v.(bool)
		return ok
	case ParamStrings:
		_, ok := toStrings(v)
		return ok
	}
	return false
}

// Params is a tenant parameter bag as decoded from JSON or YAML.
type Params map[string]any

func (p Params) Int(k string, def int) int {
	if f, ok := toFloat(p[k]); ok {
		return int(f)
	}
	return def
}

func (p Params) Float(k string, def float64) float64 {
	if f, ok := toFloat(p[k]); ok {
		return f
	}
	return def
}

func (p Params) Bool(k string, def bool) bool {
	if b, ok := p[k].(bool); ok {
		return b
	}
	return def
}

func (p Params) Strings(k string, def []string) []string {
	if s, ok := toStrings(p[k]); ok {
		return s
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, it := range s {
			str, ok := it.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}
