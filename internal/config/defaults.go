package config

import "time"

// Default returns the configuration used when no file overrides a key.
func Default() *Config {
	return &Config{
		Profile: "SPIN",
		Log: LogConfig{
			Level: "info",
			File:  "Debug.log",
		},
		Result: ResultConfig{
			Format: "json",
		},
		Timer: TimerConfig{
			TeaInterval:        5 * time.Minute,
			AlcoholInterval:    15 * time.Minute,
			LureChangeInterval: 30 * time.Minute,
			SpodRodInterval:    30 * time.Minute,
			PauseInterval:      30 * time.Minute,
			CoffeeInterval:     time.Minute,
			RareEventInterval:  8 * time.Second,

			PirkTimeout:      60 * time.Second,
			ElevateTimeout:   60 * time.Second,
			LiftTimeout:      20 * time.Second,
			DriftTimeout:     16 * time.Second,
			SinkTimeout:      60 * time.Second,
			GearRatioTimeout: 2 * time.Minute,
		},
		Tackle: TackleConfig{
			LoopDelay:      250 * time.Millisecond,
			CastDelay:      6 * time.Second,
			SettleDelay:    time.Second,
			CheckLineAtEnd: true,
			CheckSnag:      true,
			CheckDryMix:    false,
			AimJitter:      60,

			PirkDuration:        500 * time.Millisecond,
			PirkDelay:           2 * time.Second,
			ElevateDuration:     time.Second,
			ElevateDelay:        4 * time.Second,
			DepthAdjustDuration: 1200 * time.Millisecond,
			DepthAdjustLimit:    10,
			LandingNetDelay:     500 * time.Millisecond,
			LiftRetryDelay:      2 * time.Second,
		},
		Brake: BrakeConfig{
			Enabled:          false,
			Initial:          29,
			Max:              30,
			StartDelay:       2 * time.Second,
			IncreaseInterval: time.Second,
			PollDelay:        100 * time.Millisecond,
		},
		Stats: StatsConfig{
			StaminaThreshold: 0.3,
			HungerThreshold:  0.5,
			ComfortThreshold: 0.5,
			CoffeeLimit:      10,
			UseDelay:         1500 * time.Millisecond,
		},
		Keepnet: KeepnetConfig{
			Capacity:   100,
			FullAction: KeepnetQuit,
			AlarmPoll:  10 * time.Second,
		},
		Harvest: HarvestConfig{
			StaminaThreshold: 0.9,
			DigDuration:      8 * time.Second,
		},
		Keys: KeyConfig{
			Tea:        "f1",
			Coffee:     "f2",
			Food:       "f3",
			Alcohol:    "f4",
			Shovel:     "f5",
			Inventory:  "v",
			GearRatio:  "space",
			LandingNet: "space",
			Keep:       "space",
			Release:    "backspace",
			Dismiss:    "space",
			PutAway:    "0",
			MainMenu:   "esc",
		},
		Probes: map[string]Probe{},
		Profiles: map[string]Profile{
			"SPIN": {
				Mode:      ModeSpin,
				CastPower: 5,
				Lock:      true,
			},
			"BOTTOM": {
				Mode:           ModeBottom,
				CastPower:      5,
				Lock:           true,
				Rods:           []string{"1", "2", "3"},
				CheckMissLimit: 16,
				CheckDelay:     32 * time.Second,
			},
			"PIRK": {
				Mode:               ModePirk,
				CastPower:          1,
				Sink:               true,
				StageTimeoutAction: AdjustDepth,
			},
			"ELEVATOR": {
				Mode:               ModeElevator,
				CastPower:          1,
				Sink:               true,
				StageTimeoutAction: Recast,
			},
			"TELESCOPIC": {
				Mode:      ModeTelescopic,
				CastPower: 3,
			},
			"BOLOGNESE": {
				Mode:      ModeBolognese,
				CastPower: 3,
			},
		},
	}
}
