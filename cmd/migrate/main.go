package main

import (
	"kost/config"
	"kost/helper"
	"kost/shared/logger"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

var actions = []helper.Action{
	helper.ActionUp,
	helper.ActionDown,
	helper.ActionStepUp,
	helper.ActionDrop,
	helper.ActionVersion,
}

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action (up, down, step-up, drop, version) is required")
	}

	action := helper.Action(os.Args[1])
	if !slices.Contains(actions, action) {
		log.Fatal().Str("action", string(action)).Msg("Invalid action. Use 'up', 'down', 'step-up', 'drop' or 'version'")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", string(action)).Msg("Migration failed")
	}
}
