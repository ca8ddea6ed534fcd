package player

import (
	"context"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/tackle"
)

// handleCapture keeps or releases a captured fish and applies the full
// keepnet policy.
func (p *Player) handleCapture(ctx context.Context) error {
	tagged := p.det.IsFishTagged()
	keep := !p.cfg.Keepnet.TaggedOnly || tagged

	if keep {
		p.in.Press(p.cfg.Keys.Keep)
		p.keepnet++
	} else {
		p.in.Press(p.cfg.Keys.Release)
	}
	p.result.AddFish(keep, tagged)
	p.log.Info("fish captured", "kept", keep, "tagged", tagged, "keepnet", p.keepnet, "total", p.result.Total())
	p.publish(EventCatch, "fish captured")

	if err := p.wait(ctx, p.cfg.Tackle.SettleDelay); err != nil {
		return err
	}
	if !keep {
		return nil
	}
	if p.keepnet < p.cfg.Keepnet.Capacity && !p.det.IsKeepnetFull() {
		return nil
	}
	return p.keepnetFull(ctx)
}

func (p *Player) keepnetFull(ctx context.Context) error {
	if p.cfg.Keepnet.FullAction != config.KeepnetAlarm {
		return generalQuit("keepnet is full", tackle.FishCaptured)
	}

	p.log.Warn("keepnet is full, waiting for it to be emptied")
	p.publish(EventAlarm, "keepnet is full")
	for p.det.IsKeepnetFull() {
		if err := p.wait(ctx, p.cfg.Keepnet.AlarmPoll); err != nil {
			return err
		}
	}
	p.keepnet = 0
	p.log.Info("keepnet emptied, resuming")
	return nil
}
