// Package player - recovery.go
//
// This file implements the recovery table: every tackle outcome maps to
// exactly one action.
//
//	Outcome              Recovery
//	Done                 proceed
//	FishHooked           fight (pull + lift), restart
//	FishCaptured         keepnet rules, recast in bottom mode, restart
//	LureBroken           equip a favourite lure, else quit
//	StuckAtCasting       release held inputs, recast in bottom mode, restart
//	LineAtEnd            lower the brake once, quit
//	LineSnagged          multi-rod: rod unavailable, restart; else quit
//	Disconnected         quit through the main menu
//	TackleBroken         quit
//	BaitNotChosen        multi-rod: rod unavailable, restart; else quit
//	TicketExpired        renew, retry; else quit
//	CoffeeTimeout        drink, retry; quit once the per-fight limit is reached
//	GearRatioTimeout     toggle gear ratio, retry
//	PirkTimeout          adjust depth and retry, or recast (restart); recast
//	                     once the per-cast depth adjust limit is used up
//	ElevateTimeout       same as PirkTimeout
//	LiftTimeout          standard rod: wait, retry the pull; telescopic: restart
//	DryMixNotChosen      refill and retry; rod unavailable when out of stock
//	DriftTimeout         restart
//	SinkTimeout          proceed
//	ItemNotFound         quit
package player

import (
	"context"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/tackle"
)

// action tells the stage runner what to do after a recovery.
type action int

const (
	proceed action = iota // continue the iteration
	retry                 // run the stage again
	restart               // abandon the iteration
)

// String returns the string representation of the action
func (a action) String() string {
	switch a {
	case proceed:
		return "proceed"
	case retry:
		return "retry"
	case restart:
		return "restart"
	default:
		return "unknown"
	}
}

// handle applies the recovery for o. A non-nil error is a *QuitError or the
// context error.
func (p *Player) handle(ctx context.Context, o tackle.Outcome) (action, error) {
	if o != tackle.Done {
		p.log.Debug("outcome", "rod", p.rod().Slot(), "stage", p.rod().Stage(), "outcome", o)
	}

	switch o {
	case tackle.Done:
		return proceed, nil

	case tackle.FishHooked:
		if err := p.fight(ctx); err != nil {
			return restart, err
		}
		return restart, nil

	case tackle.FishCaptured:
		if err := p.handleCapture(ctx); err != nil {
			return restart, err
		}
		if p.profile.Mode == config.ModeBottom {
			return restart, p.recast(ctx)
		}
		return restart, nil

	case tackle.LureBroken:
		p.log.Warn("lure broken, replacing", "rod", p.rod().Slot())
		o, err := p.rod().EquipItem(ctx, detect.Lure)
		if err != nil {
			return restart, err
		}
		if o != tackle.Done {
			return p.handle(ctx, o)
		}
		p.result.Add(result.LureChange)
		return restart, nil

	case tackle.StuckAtCasting:
		p.log.Warn("stuck at casting, releasing inputs")
		p.in.ReleaseAll()
		p.latch()
		if p.profile.Mode == config.ModeBottom {
			return restart, p.recast(ctx)
		}
		return restart, nil

	case tackle.LineAtEnd:
		if p.cfg.Brake.Enabled {
			p.brake.Change(-1)
		}
		return restart, generalQuit("line is at its end", o)

	case tackle.LineSnagged, tackle.BaitNotChosen:
		if !p.profile.MultiRod() {
			return restart, generalQuit(o.String(), o)
		}
		p.rod().SetAvailable(false)
		p.publish(EventRecovery, "rod "+p.rod().Slot()+" disabled: "+o.String())
		return restart, nil

	case tackle.Disconnected:
		return restart, disconnectedQuit()

	case tackle.TackleBroken:
		return restart, generalQuit("tackle is broken", o)

	case tackle.TicketExpired:
		if err := p.renewTicket(ctx); err != nil {
			return restart, err
		}
		return retry, nil

	case tackle.CoffeeTimeout:
		if err := p.drinkCoffee(ctx); err != nil {
			return restart, err
		}
		return retry, nil

	case tackle.GearRatioTimeout:
		p.log.Info("switching gear ratio")
		p.in.Press(p.cfg.Keys.GearRatio)
		return retry, nil

	case tackle.PirkTimeout, tackle.ElevateTimeout:
		if p.profile.StageTimeoutAction == config.Recast {
			return restart, nil
		}
		p.adjustments++
		if limit := p.cfg.Tackle.DepthAdjustLimit; limit > 0 && p.adjustments > limit {
			p.log.Info("depth adjust limit reached, recasting", "adjustments", limit)
			return restart, nil
		}
		if _, err := p.rod().AdjustDepth(ctx); err != nil {
			return restart, err
		}
		return retry, nil

	case tackle.LiftTimeout:
		if p.profile.Telescopic() {
			return restart, nil
		}
		if err := p.wait(ctx, p.cfg.Tackle.LiftRetryDelay); err != nil {
			return restart, err
		}
		return retry, nil

	case tackle.DryMixNotChosen:
		o, err := p.rod().EquipItem(ctx, detect.DryMix)
		if err != nil {
			return restart, err
		}
		if o == tackle.ItemNotFound {
			p.rod().SetAvailable(false)
			if !p.profile.MultiRod() {
				return restart, generalQuit("dry mix is used up", o)
			}
			return restart, nil
		}
		return retry, nil

	case tackle.DriftTimeout:
		return restart, nil

	case tackle.SinkTimeout:
		return proceed, nil

	case tackle.ItemNotFound:
		return restart, generalQuit("no replacement item found", o)
	}
	return restart, generalQuit("unhandled outcome "+o.String(), o)
}

// fight runs the pull path on the current rod: pull until the line is in,
// then lift until the fish is captured. A lift timeout on a standard rod goes
// back to pulling.
func (p *Player) fight(ctx context.Context) error {
	rod := p.rod()
	p.fightCoffee = 0
	p.log.Info("fish hooked", "rod", rod.Slot())
	p.publish(EventFight, "fish hooked")

	for {
		if !p.profile.Telescopic() {
			o, err := p.pull(ctx)
			if err != nil {
				return err
			}
			if o == tackle.FishCaptured {
				_, err := p.handle(ctx, o)
				return err
			}
			if o != tackle.Done {
				return nil
			}
		}

		o, err := rod.Lift(ctx, p.profile.Telescopic())
		if err != nil {
			return err
		}
		act, err := p.handle(ctx, o)
		if err != nil || act != retry {
			return err
		}
	}
}

// pull runs the pull stage until it ends with Done or a capture. Any other
// outcome that restarts the iteration is returned as is.
func (p *Player) pull(ctx context.Context) (tackle.Outcome, error) {
	for {
		o, err := p.rod().Pull(ctx)
		if err != nil {
			return o, err
		}
		if o == tackle.Done || o == tackle.FishCaptured {
			return o, nil
		}
		act, err := p.handle(ctx, o)
		if err != nil {
			return o, err
		}
		if act != retry {
			return o, nil
		}
	}
}
