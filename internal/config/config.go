// Package config - config.go
//
// This file defines the configuration tree for a fishing session.
//
// The tree is read once from a YAML file (see load.go), merged over the
// defaults in defaults.go and frozen: nothing in the session writes to it
// after start. Durations are written as Go duration strings ("1.5s", "3m").
//
// Layout:
//
//	profile: SPIN                 # selected profile name
//	log: {level, file}
//	status: {addr}                # optional HTTP/websocket status server
//	result: {path, format}        # optional result dump (json|yaml)
//	timer:   cooldown intervals and stage timeouts
//	tackle:  loop delays, cast and technique gestures
//	brake:   friction brake bounds and regulator pacing
//	stats:   stamina/hunger/comfort thresholds and consumable limits
//	keepnet: capacity and full-keepnet policy
//	keys:    hotkey bindings
//	profiles: named technique profiles, one of them selected
package config

import (
	"time"
)

// Mode identifies a fishing technique loop.
type Mode string

const (
	ModeSpin       Mode = "spin"
	ModeBottom     Mode = "bottom"
	ModePirk       Mode = "pirk"
	ModeElevator   Mode = "elevator"
	ModeTelescopic Mode = "telescopic"
	ModeBolognese  Mode = "bolognese"
)

// Modes lists every supported technique.
var Modes = []Mode{ModeSpin, ModeBottom, ModePirk, ModeElevator, ModeTelescopic, ModeBolognese}

// FullKeepnetAction selects what happens when the keepnet fills up.
type FullKeepnetAction string

const (
	KeepnetQuit  FullKeepnetAction = "quit"
	KeepnetAlarm FullKeepnetAction = "alarm"
)

// StageTimeoutAction selects the recovery for pirk/elevate timeouts.
type StageTimeoutAction string

const (
	AdjustDepth StageTimeoutAction = "adjust"
	Recast      StageTimeoutAction = "recast"
)

// Config holds the whole session configuration.
type Config struct {
	Profile        string             `yaml:"profile"`
	ShutdownOnExit bool               `yaml:"shutdown_on_exit"`
	Log            LogConfig          `yaml:"log"`
	Status         StatusConfig       `yaml:"status"`
	Result         ResultConfig       `yaml:"result"`
	Timer          TimerConfig        `yaml:"timer"`
	Tackle         TackleConfig       `yaml:"tackle"`
	Brake          BrakeConfig        `yaml:"brake"`
	Stats          StatsConfig        `yaml:"stats"`
	Keepnet        KeepnetConfig      `yaml:"keepnet"`
	Harvest        HarvestConfig      `yaml:"harvest"`
	Ticket         TicketConfig       `yaml:"ticket"`
	Keys           KeyConfig          `yaml:"keys"`
	Probes         map[string]Probe   `yaml:"probes"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// LogConfig controls the session logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // truncated on every start, empty disables
}

// StatusConfig controls the optional status server.
type StatusConfig struct {
	Addr string `yaml:"addr"` // empty disables the server
}

// ResultConfig controls where the final result is written.
type ResultConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // json or yaml
}

// TimerConfig holds cooldown intervals and stage timeouts.
type TimerConfig struct {
	TeaInterval        time.Duration `yaml:"tea_interval"`
	AlcoholInterval    time.Duration `yaml:"alcohol_interval"`
	LureChangeInterval time.Duration `yaml:"lure_change_interval"`
	SpodRodInterval    time.Duration `yaml:"spod_rod_interval"`
	PauseInterval      time.Duration `yaml:"pause_interval"`
	CoffeeInterval     time.Duration `yaml:"coffee_interval"`
	RareEventInterval  time.Duration `yaml:"rare_event_interval"`

	PirkTimeout      time.Duration `yaml:"pirk_timeout"`
	ElevateTimeout   time.Duration `yaml:"elevate_timeout"`
	LiftTimeout      time.Duration `yaml:"lift_timeout"`
	DriftTimeout     time.Duration `yaml:"drift_timeout"`
	SinkTimeout      time.Duration `yaml:"sink_timeout"`
	GearRatioTimeout time.Duration `yaml:"gear_ratio_timeout"`
}

// TackleConfig holds the gesture pacing shared by all rods.
type TackleConfig struct {
	LoopDelay      time.Duration `yaml:"loop_delay"`
	CastDelay      time.Duration `yaml:"cast_delay"`
	SettleDelay    time.Duration `yaml:"settle_delay"`
	CheckLineAtEnd bool          `yaml:"check_line_at_end"`
	CheckSnag      bool          `yaml:"check_snag"`
	CheckDryMix    bool          `yaml:"check_dry_mix"`
	RandomCastAim  bool          `yaml:"random_cast_aim"`
	AimJitter      int           `yaml:"aim_jitter"`

	PirkDuration        time.Duration `yaml:"pirk_duration"`
	PirkDelay           time.Duration `yaml:"pirk_delay"`
	ElevateDuration     time.Duration `yaml:"elevate_duration"`
	ElevateDelay        time.Duration `yaml:"elevate_delay"`
	ElevateDrop         bool          `yaml:"elevate_drop"`
	DepthAdjustDuration time.Duration `yaml:"depth_adjust_duration"`
	DepthAdjustLimit    int           `yaml:"depth_adjust_limit"` // per cast, 0 = unlimited
	LandingNetDelay     time.Duration `yaml:"landing_net_delay"`
	LiftRetryDelay      time.Duration `yaml:"lift_retry_delay"`
}

// BrakeConfig holds the friction brake bounds and regulator pacing.
type BrakeConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Initial          int           `yaml:"initial"`
	Max              int           `yaml:"max"`
	StartDelay       time.Duration `yaml:"start_delay"`
	IncreaseInterval time.Duration `yaml:"increase_interval"`
	PollDelay        time.Duration `yaml:"poll_delay"`
}

// StatsConfig holds player stat thresholds, fractions in [0, 1].
type StatsConfig struct {
	StaminaThreshold float64       `yaml:"stamina_threshold"`
	HungerThreshold  float64       `yaml:"hunger_threshold"`
	ComfortThreshold float64       `yaml:"comfort_threshold"`
	Alcohol          bool          `yaml:"alcohol"`
	CoffeeLimit      int           `yaml:"coffee_limit"` // per fight
	UseDelay         time.Duration `yaml:"use_delay"`
}

// KeepnetConfig holds the keepnet policy.
type KeepnetConfig struct {
	Capacity   int               `yaml:"capacity"`
	Initial    int               `yaml:"initial"`
	TaggedOnly bool              `yaml:"tagged_only"`
	FullAction FullKeepnetAction `yaml:"full_action"`
	AlarmPoll  time.Duration     `yaml:"alarm_poll"`
}

// HarvestConfig controls bait digging between casts.
type HarvestConfig struct {
	Enabled          bool          `yaml:"enabled"`
	StaminaThreshold float64       `yaml:"stamina_threshold"`
	DigDuration      time.Duration `yaml:"dig_duration"`
}

// TicketConfig controls fishing ticket renewal; zero duration disables renewal.
type TicketConfig struct {
	RenewDuration int `yaml:"renew_duration"` // hours
}

// KeyConfig binds game actions to keys.
type KeyConfig struct {
	Tea        string `yaml:"tea"`
	Coffee     string `yaml:"coffee"`
	Food       string `yaml:"food"`
	Alcohol    string `yaml:"alcohol"`
	Shovel     string `yaml:"shovel"`
	Inventory  string `yaml:"inventory"`
	GearRatio  string `yaml:"gear_ratio"`
	LandingNet string `yaml:"landing_net"`
	Keep       string `yaml:"keep"`
	Release    string `yaml:"release"`
	Dismiss    string `yaml:"dismiss"`
	PutAway    string `yaml:"put_away"`
	Trolling   string `yaml:"trolling"` // held for the whole session when set
	MainMenu   string `yaml:"main_menu"`
}

// Probe is a screen pixel used by the probe detector.
type Probe struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Color     string `yaml:"color"` // hex, e.g. "ffcc00"
	Tolerance uint8  `yaml:"tolerance"`
	Width     int    `yaml:"width"` // bar probes scan [X, X+Width)
}

// Profile is one named technique setup.
type Profile struct {
	Mode               Mode               `yaml:"mode"`
	CastPower          int                `yaml:"cast_power"`
	Lock               bool               `yaml:"lock"`
	Rods               []string           `yaml:"rods"`
	RandomRodSelection bool               `yaml:"random_rod_selection"`
	CheckMissLimit     int                `yaml:"check_miss_limit"`
	CheckDelay         time.Duration      `yaml:"check_delay"`
	RetrieveWithShift  bool               `yaml:"retrieve_with_shift"`
	PauseDuration      time.Duration      `yaml:"pause_duration"`
	LureChange         bool               `yaml:"lure_change"`
	SpodRodKey         string             `yaml:"spod_rod_key"`
	Sink               bool               `yaml:"sink"`
	StageTimeoutAction StageTimeoutAction `yaml:"stage_timeout_action"`
}

// Telescopic reports whether the profile fishes without a reel.
func (p Profile) Telescopic() bool {
	return p.Mode == ModeTelescopic
}

// MultiRod reports whether the profile rotates more than one rod. Only the
// bottom loop schedules rods.
func (p Profile) MultiRod() bool {
	return p.Mode == ModeBottom && len(p.Rods) > 1
}
