// simloop is a headless demonstration host for the combat core: it loads
// static data, builds one simulation context, runs a scripted encounter for
// a fixed number of ticks, and logs the emitted outcome events.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/model"
	"github.com/nocten/valdera/internal/sim"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath = flag.String("config", "", "sim config yaml (empty = defaults)")
		ticks   = flag.Int("ticks", 300, "number of ticks to run")
		seed    = flag.Uint64("seed", 1, "rng seed")
		debug   = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	cfg := config.DefaultSim()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := data.LoadAll(); err != nil {
		return fmt.Errorf("loading static data: %w", err)
	}

	ctx := sim.NewContext(cfg, "Wanderer", model.Location{X: 0, Y: 0}, sim.Options{Seed: *seed})
	ctx.Bus.Subscribe(logOutcome)

	// Scripted encounter: a pack of walkers plus a golem ahead of the player.
	ctx.SpawnMonster("rot_walker", model.Location{X: 40, Y: 0})
	ctx.SpawnMonster("rot_walker", model.Location{X: 50, Y: 12})
	ctx.SpawnMonster("shard_golem", model.Location{X: 120, Y: 0})

	// Learn and slot a starter kit.
	ctx.Player.GrantSkillPoints(3)
	ctx.Book.Unlock("cleave")
	ctx.Book.Unlock("firebolt")
	ctx.Book.Equip("cleave", 0)
	ctx.Book.Equip("firebolt", 1)

	for i := 0; i < *ticks; i++ {
		switch {
		case i%30 == 5:
			ctx.QueueAttack(0)
		case i%45 == 10:
			ctx.QueueSkill("cleave", 0)
		case i%60 == 20:
			ctx.QueueSkill("firebolt", math.Atan2(0, 1))
		}
		ctx.Tick()
	}

	slog.Info("encounter finished",
		"ticks", ctx.TickCount(),
		"playerHP", ctx.Player.CurrentHP(),
		"playerLevel", ctx.Player.Level(),
	)
	return nil
}

func logOutcome(ev events.Event) {
	switch e := ev.(type) {
	case events.DamageDealt:
		slog.Info("damage", "source", e.SourceID, "target", e.TargetID, "amount", e.Amount, "crit", e.Crit, "status", e.FromStatus)
	case events.Death:
		slog.Info("death", "target", e.TargetID, "killer", e.KillerID, "xp", e.XP, "gold", e.Gold, "boss", e.IsBoss)
	case events.SkillUsed:
		slog.Info("skill used", "skill", e.SkillID, "level", e.Level)
	case events.PlayerLevelUp:
		slog.Info("level up", "level", e.NewLevel)
	case events.ShieldBroken:
		slog.Info("shield broken", "target", e.TargetID)
	}
}
