// Package player - consumables.go
//
// This file implements the between-cast housekeeping and the consumables
// used during a fight.
//
// Housekeeping, run at the top of every iteration:
//   - re-latch session inputs dropped by a stuck-at-casting recovery
//   - stat refill: tea on low comfort, food on low hunger or stamina,
//     alcohol on its cooldown
//   - bait harvest while stamina allows
//   - scheduled lure change
//   - dismiss gift and card pop-ups
package player

import (
	"context"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/tackle"
)

func (p *Player) housekeeping(ctx context.Context) error {
	p.latch()
	if err := p.refill(ctx); err != nil {
		return err
	}
	if err := p.harvest(ctx); err != nil {
		return err
	}
	if err := p.changeLure(ctx); err != nil {
		return err
	}
	return p.dismissPopups(ctx)
}

// use presses a quick-slot key and waits for the animation.
func (p *Player) use(ctx context.Context, key string, c result.Counter) error {
	p.log.Info("using consumable", "item", c, "key", key)
	p.in.Press(key)
	p.result.Add(c)
	return p.wait(ctx, p.cfg.Stats.UseDelay)
}

func (p *Player) refill(ctx context.Context) error {
	stats, keys := p.cfg.Stats, p.cfg.Keys

	if p.det.Comfort() < stats.ComfortThreshold && p.timer.IsTeaDrinkable() {
		if err := p.use(ctx, keys.Tea, result.Tea); err != nil {
			return err
		}
	}
	if p.det.Hunger() < stats.HungerThreshold || p.det.Stamina() < stats.StaminaThreshold {
		if err := p.use(ctx, keys.Food, result.Food); err != nil {
			return err
		}
	}
	if stats.Alcohol && p.timer.IsAlcoholDrinkable() {
		if err := p.use(ctx, keys.Alcohol, result.Alcohol); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) harvest(ctx context.Context) error {
	cfg := p.cfg.Harvest
	if !cfg.Enabled || p.det.Stamina() < cfg.StaminaThreshold {
		return nil
	}
	p.log.Info("harvesting baits")
	p.in.Press(p.cfg.Keys.Shovel)
	if err := p.wait(ctx, p.cfg.Tackle.SettleDelay); err != nil {
		return err
	}
	if err := p.in.HoldMouseFor(ctx, input.Left, cfg.DigDuration); err != nil {
		return err
	}
	p.in.Press(p.cfg.Keys.Dismiss)
	p.result.Add(result.Harvest)
	return p.wait(ctx, p.cfg.Tackle.SettleDelay)
}

func (p *Player) changeLure(ctx context.Context) error {
	if !p.profile.LureChange || !p.timer.IsLureChangeable() {
		return nil
	}
	o, err := p.rod().EquipItem(ctx, detect.Lure)
	if err != nil {
		return err
	}
	if o == tackle.Done {
		p.result.Add(result.LureChange)
	}
	return nil
}

func (p *Player) dismissPopups(ctx context.Context) error {
	dismiss := func(c result.Counter) error {
		p.log.Info("dismissing pop-up", "kind", c)
		p.in.Press(p.cfg.Keys.Dismiss)
		p.result.Add(c)
		return p.wait(ctx, p.cfg.Tackle.SettleDelay)
	}
	if p.det.IsGiftReceived() {
		if err := dismiss(result.Gift); err != nil {
			return err
		}
	}
	if p.det.IsCardReceived() {
		return dismiss(result.Card)
	}
	return nil
}

// drinkCoffee drinks one coffee for the current fight, or quits when the
// per-fight limit is used up.
func (p *Player) drinkCoffee(ctx context.Context) error {
	if p.fightCoffee >= p.cfg.Stats.CoffeeLimit {
		return generalQuit("coffee limit reached", tackle.CoffeeTimeout)
	}
	p.fightCoffee++
	return p.use(ctx, p.cfg.Keys.Coffee, result.Coffee)
}

// renewTicket buys a new fishing ticket, or quits when renewal is disabled or
// the ticket button cannot be found.
func (p *Player) renewTicket(ctx context.Context) error {
	hours := p.cfg.Ticket.RenewDuration
	if hours <= 0 {
		return generalQuit("ticket expired", tackle.TicketExpired)
	}
	pos, ok := p.det.TicketPosition(hours)
	if !ok {
		return generalQuit("ticket expired, renewal button not found", tackle.TicketExpired)
	}
	p.log.Info("renewing ticket", "hours", hours)
	p.in.MoveTo(pos.X, pos.Y)
	p.in.Click(input.Left)
	p.result.Add(result.Ticket)
	return p.wait(ctx, p.cfg.Tackle.SettleDelay)
}
