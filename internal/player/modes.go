// Package player - modes.go
//
// This file implements one iteration of every technique loop.
//
// Structure of an iteration:
//
//	housekeeping -> reset -> cast -> technique stage -> retrieve -> fight
//
// Each stage outcome goes through the recovery table (recovery.go); a
// restart verdict ends the iteration early and the loop starts over.
//
// Techniques:
//   - spin: cast and retrieve
//   - bottom: rotate rods on stands, check each for a bite, recast on a miss streak
//   - pirk: cast, sink, jig with short rod lifts
//   - elevator: cast, sink, walk the lure up or down the water column
//   - telescopic: cast a float rod without a reel and watch the float
//   - bolognese: as telescopic, with a reel
package player

import (
	"context"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/tackle"
)

func (p *Player) spin(ctx context.Context) error {
	if err := p.housekeeping(ctx); err != nil {
		return err
	}
	rod := p.rod()
	if ok, err := p.stage(ctx, rod.Reset); !ok || err != nil {
		return err
	}
	if ok, err := p.stage(ctx, p.cast); !ok || err != nil {
		return err
	}
	if d := p.profile.PauseDuration; d > 0 && p.timer.IsPausable() {
		p.log.Info("pausing before retrieve", "duration", d)
		if err := p.wait(ctx, d); err != nil {
			return err
		}
	}
	_, err := p.stage(ctx, func(ctx context.Context) (tackle.Outcome, error) {
		return rod.Retrieve(ctx, p.profile.RetrieveWithShift)
	})
	return err
}

func (p *Player) bottom(ctx context.Context) error {
	if err := p.housekeeping(ctx); err != nil {
		return err
	}
	if err := p.castSpodRod(ctx); err != nil {
		return err
	}

	idx, err := p.nextRod()
	if err != nil {
		return quitWith("all rods are unavailable", err)
	}
	p.current = idx
	rod := p.rods[idx]
	if err := rod.Select(ctx); err != nil {
		return err
	}

	if p.det.IsFishHooked() {
		p.misses[idx] = 0
		if _, err := p.handle(ctx, tackle.FishHooked); err != nil {
			return err
		}
	} else {
		p.misses[idx]++
		p.log.Debug("no bite", "rod", rod.Slot(), "misses", p.misses[idx])
		if limit := p.profile.CheckMissLimit; limit > 0 && p.misses[idx] >= limit {
			p.log.Info("miss limit reached, recasting", "rod", rod.Slot(), "misses", p.misses[idx])
			p.misses[idx] = 0
			if err := p.recast(ctx); err != nil {
				return err
			}
		}
	}

	p.in.Press(p.cfg.Keys.PutAway)
	return p.wait(ctx, p.profile.CheckDelay)
}

func (p *Player) pirk(ctx context.Context) error {
	return p.jig(ctx, p.rod().Pirk)
}

func (p *Player) elevator(ctx context.Context) error {
	return p.jig(ctx, p.rod().Elevate)
}

// jig runs the shared pirk/elevator iteration with technique as the fishing stage.
func (p *Player) jig(ctx context.Context, technique func(context.Context) (tackle.Outcome, error)) error {
	if err := p.housekeeping(ctx); err != nil {
		return err
	}
	rod := p.rod()
	p.adjustments = 0
	if ok, err := p.stage(ctx, rod.Reset); !ok || err != nil {
		return err
	}
	if ok, err := p.stage(ctx, p.cast); !ok || err != nil {
		return err
	}
	if p.profile.Sink {
		if ok, err := p.stage(ctx, rod.Sink); !ok || err != nil {
			return err
		}
	}
	_, err := p.stage(ctx, technique)
	return err
}

func (p *Player) telescopic(ctx context.Context) error {
	if err := p.housekeeping(ctx); err != nil {
		return err
	}
	if ok, err := p.stage(ctx, p.cast); !ok || err != nil {
		return err
	}
	_, err := p.stage(ctx, p.rod().Drift)
	return err
}

func (p *Player) bolognese(ctx context.Context) error {
	if err := p.housekeeping(ctx); err != nil {
		return err
	}
	rod := p.rod()
	if ok, err := p.stage(ctx, rod.Reset); !ok || err != nil {
		return err
	}
	if ok, err := p.stage(ctx, p.cast); !ok || err != nil {
		return err
	}
	_, err := p.stage(ctx, rod.Drift)
	return err
}

// castSpodRod casts the spod rod once per spod interval and puts it back.
func (p *Player) castSpodRod(ctx context.Context) error {
	key := p.profile.SpodRodKey
	if key == "" || !p.timer.IsSpodRodCastable() {
		return nil
	}
	p.log.Info("casting spod rod", "key", key)
	p.in.Press(key)
	if err := p.wait(ctx, p.cfg.Tackle.SettleDelay); err != nil {
		return err
	}
	if _, err := p.rod().Cast(ctx, false); err != nil {
		return err
	}
	p.in.Press(p.cfg.Keys.PutAway)
	return p.wait(ctx, p.cfg.Tackle.SettleDelay)
}
