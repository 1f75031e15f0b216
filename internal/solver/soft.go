package solver

import (
	"fmt"
	"slices"

	"hotel_allocation/internal/domain"
)

func registerSoft() {
	register(Entry{
		Code: VIPOceanView, Name: "VIP ocean view priority", Kind: domain.KindSoft, DefaultWeight: 100,
		Schema:   map[string]ParamType{"minLoyaltyTier": ParamInt, "views": ParamStrings},
		Defaults: Params{"minLoyaltyTier": 0, "views": []string{string(domain.ViewOcean), string(domain.ViewBeach)}},
		eval:     vipOceanView,
	})
	register(Entry{
		Code: VIPHighFloor, Name: "VIP high floor priority", Kind: domain.KindSoft, DefaultWeight: 80,
		Schema:   map[string]ParamType{"minLoyaltyTier": ParamInt, "minFloor": ParamInt},
		Defaults: Params{"minLoyaltyTier": 0, "minFloor": 5},
		eval:     vipHighFloor,
	})
	register(Entry{Code: ViewPreference, Name: "View preference matched", Kind: domain.KindSoft, DefaultWeight: 50, eval: viewPreference})
	register(Entry{
		Code: FloorPreference, Name: "Floor preference matched", Kind: domain.KindSoft, DefaultWeight: 40,
		Schema:   map[string]ParamType{"highFloorMin": ParamInt, "lowFloorMax": ParamInt, "lowFloorWeight": ParamInt},
		Defaults: Params{"highFloorMin": 5, "lowFloorMax": 3, "lowFloorWeight": 20},
		eval:     floorPreference,
	})
	register(Entry{
		Code: QuietLocation, Name: "Quiet location preference", Kind: domain.KindSoft, DefaultWeight: 60,
		Schema:   map[string]ParamType{"minElevatorDistance": ParamInt},
		Defaults: Params{"minElevatorDistance": 3},
		eval:     quietLocation,
	})
	register(Entry{
		Code: BudgetConstraint, Name: "Budget exceeded", Kind: domain.KindSoft, DefaultWeight: -50,
		Schema:   map[string]ParamType{"bufferPercent": ParamFloat},
		Defaults: Params{"bufferPercent": 10.0},
		eval:     budgetConstraint,
	})
	register(Entry{Code: EarlyCheckIn, Name: "Early check-in granted", Kind: domain.KindSoft, DefaultWeight: 30, eval: earlyCheckIn})
	register(Entry{Code: LateCheckout, Name: "Late checkout granted", Kind: domain.KindSoft, DefaultWeight: 30, eval: lateCheckout})
	register(Entry{Code: ConnectingRooms, Name: "Connecting rooms for groups", Kind: domain.KindSoft, DefaultWeight: 0, eval: connectingRooms})
	register(Entry{Code: BalconyPreference, Name: "Balcony preference matched", Kind: domain.KindSoft, DefaultWeight: 40, eval: balconyPreference})
	register(Entry{Code: KitchenettePreference, Name: "Kitchenette preference matched", Kind: domain.KindSoft, DefaultWeight: 35, eval: kitchenettePreference})
	register(Entry{
		Code: LoyaltyTierUpgrade, Name: "Loyalty tier upgrade reward", Kind: domain.KindSoft, DefaultWeight: 60,
		Schema:   map[string]ParamType{"tierStep": ParamInt},
		Defaults: Params{"tierStep": 10},
		eval:     loyaltyTierUpgrade,
	})
	register(Entry{Code: MinimizeRoomChanges, Name: "Minimize room changes", Kind: domain.KindSoft, DefaultWeight: -80, eval: minimizeRoomChanges})
}

func reward(w int, format string, args ...any) *domain.ConstraintMatch {
	return &domain.ConstraintMatch{
		Score:         domain.HardSoftScore{Soft: w},
		Justification: fmt.Sprintf(format, args...),
	}
}

func vipEligible(g domain.Guest, p Params) bool {
	return g.VIP && g.LoyaltyTier >= p.Int("minLoyaltyTier", 0)
}

func vipOceanView(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !vipEligible(b.Guest, p) {
		return nil
	}
	views := p.Strings("views", []string{string(domain.ViewOcean), string(domain.ViewBeach)})
	if !slices.Contains(views, string(r.View)) {
		return nil
	}
	return reward(p.Int("weight", 100), "VIP guest %s (tier %d) placed in %s view room %s", b.Guest.ID, b.Guest.LoyaltyTier, r.View, r.Number)
}

func vipHighFloor(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !vipEligible(b.Guest, p) {
		return nil
	}
	minFloor := p.Int("minFloor", 5)
	if r.Floor < minFloor {
		return nil
	}
	return reward(p.Int("weight", 80), "VIP guest %s placed on floor %d (>= %d)", b.Guest.ID, r.Floor, minFloor)
}

func viewPreference(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	want := b.Guest.Preferences.View
	if r == nil || want == "" || r.View != want {
		return nil
	}
	return reward(p.Int("weight", 50), "guest %s wanted %s view and got room %s", b.Guest.ID, want, r.Number)
}

func floorPreference(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	if r == nil {
		return nil
	}
	b := ev.Booking()
	switch b.Guest.Preferences.Floor {
	case domain.FloorHigh:
		if floor := p.Int("highFloorMin", 5); r.Floor >= floor {
			return reward(p.Int("weight", 40), "guest %s prefers a high floor and got floor %d", b.Guest.ID, r.Floor)
		}
	case domain.FloorLow:
		if floor := p.Int("lowFloorMax", 3); r.Floor <= floor {
			return reward(p.Int("lowFloorWeight", 20), "guest %s prefers a low floor and got floor %d", b.Guest.ID, r.Floor)
		}
	}
	return nil
}

func quietLocation(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !b.Guest.Preferences.Quiet {
		return nil
	}
	dist := p.Int("minElevatorDistance", 3)
	if r.ElevatorDistance < dist {
		return nil
	}
	return reward(p.Int("weight", 60), "guest %s wants quiet; room %s is %d from the elevator", b.Guest.ID, r.Number, r.ElevatorDistance)
}

// budgetConstraint fires when the nightly price exceeds budget plus buffer.
// The penalty is the flat weight, not proportional to the overage.
func budgetConstraint(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || b.Guest.BudgetMax == nil {
		return nil
	}
	budget := *b.Guest.BudgetMax
	buffer := p.Float("bufferPercent", 10)
	limit := budget * (1 + buffer/100)
	if r.PricePerNight <= limit {
		return nil
	}
	return reward(p.Int("weight", -50), "room %s price $%.2f is $%.2f over $%.2f max (budget $%.2f + %g%% buffer)",
		r.Number, r.PricePerNight, r.PricePerNight-limit, limit, budget, buffer)
}

// earlyCheckIn rewards the request as soon as any room is assigned; whether
// the room is actually vacated in time is not checked.
func earlyCheckIn(ev Eval, p Params) *domain.ConstraintMatch {
	b := ev.Booking()
	if !b.EarlyCheckIn || ev.Room() == nil {
		return nil
	}
	return reward(p.Int("weight", 30), "early check-in requested for booking %s", b.ID)
}

func lateCheckout(ev Eval, p Params) *domain.ConstraintMatch {
	b := ev.Booking()
	if !b.LateCheckout || ev.Room() == nil {
		return nil
	}
	return reward(p.Int("weight", 30), "late checkout requested for booking %s", b.ID)
}

// connectingRooms needs group booking state that the model does not carry.
func connectingRooms(Eval, Params) *domain.ConstraintMatch { return nil }

func balconyPreference(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !b.Guest.Preferences.WantsBalcony || !r.HasBalcony {
		return nil
	}
	return reward(p.Int("weight", 40), "guest %s wanted a balcony and got room %s", b.Guest.ID, r.Number)
}

func kitchenettePreference(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !b.Guest.Preferences.WantsKitchenette || !r.HasKitchenette {
		return nil
	}
	return reward(p.Int("weight", 35), "guest %s wanted a kitchenette and got room %s", b.Guest.ID, r.Number)
}

// loyaltyTierUpgrade: platinum (3) in a suite, gold (2) in deluxe or suite,
// silver (1) in deluxe. Reward is weight + tier*tierStep.
func loyaltyTierUpgrade(ev Eval, p Params) *domain.ConstraintMatch {
	r := ev.Room()
	if r == nil {
		return nil
	}
	b := ev.Booking()
	tier := b.Guest.LoyaltyTier
	ok := false
	switch tier {
	case 3:
		ok = r.Type == domain.RoomSuite
	case 2:
		ok = r.Type == domain.RoomDeluxe || r.Type == domain.RoomSuite
	case 1:
		ok = r.Type == domain.RoomDeluxe
	}
	if !ok {
		return nil
	}
	w := p.Int("weight", 60) + tier*p.Int("tierStep", 10)
	return reward(w, "tier %d guest %s placed in %s room %s", tier, b.Guest.ID, r.Type, r.Number)
}

// minimizeRoomChanges penalizes back-to-back stays of the same guest in
// different rooms. The pair is reported on the earlier booking only.
func minimizeRoomChanges(ev Eval, p Params) *domain.ConstraintMatch {
	ri := ev.Sol.RoomIndex(ev.Index)
	if ri == unassigned {
		return nil
	}
	b := ev.Booking()
	for j := range ev.Sol.Bookings {
		if j == ev.Index {
			continue
		}
		o := &ev.Sol.Bookings[j]
		if o.Guest.ID != b.Guest.ID || !b.CheckOut.Equal(o.CheckIn) {
			continue
		}
		rj := ev.Sol.RoomIndex(j)
		if rj == unassigned || rj == ri {
			continue
		}
		return reward(p.Int("weight", -80), "guest %s moves from room %s to room %s between %s and %s",
			b.Guest.ID, ev.Sol.Rooms[ri].Number, ev.Sol.Rooms[rj].Number, b.ID, o.ID)
	}
	return nil
}
