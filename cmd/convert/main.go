package main

import (
	"flag"
	"runtime"

	"github.com/overture-tools/valhallaconv/pkg/admin"
	"github.com/overture-tools/valhallaconv/pkg/converter"
	"github.com/overture-tools/valhallaconv/pkg/logger"
	"github.com/overture-tools/valhallaconv/pkg/util"
)

var (
	inputDir        = flag.String("input", "./data", "directory holding segment.parquet and connector.parquet")
	outputDir       = flag.String("output", "./data/out", "directory for ways.bin and way_nodes.bin")
	strategy        = flag.String("permissions", "class", "permission strategy: class or rules")
	workers         = flag.Int("workers", runtime.NumCPU(), "permission resolution workers")
	drivingSide     = flag.String("driving_side", "right", "driving side of the extract region: right or left")
	adminConfigPath = flag.String("admin_config", "", "optional admin policy yaml, built-in defaults when empty")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	err = util.ReadConfig()
	if err != nil {
		panic(err)
	}

	adminCfg, err := admin.Load(*adminConfigPath)
	if err != nil {
		panic(err)
	}
	logger.Sugar().Infof("admin policy loaded with %d country overrides", adminCfg.Countries())

	driveOnRight, ok := admin.DriveOnRight(*drivingSide)
	if !ok {
		logger.Sugar().Warnf("unknown driving side %q, assuming right-hand traffic", *drivingSide)
		driveOnRight = true
	}

	permissions, err := converter.NewPermissionResolver(*strategy)
	if err != nil {
		panic(err)
	}

	conv := converter.New(logger, permissions, *workers, driveOnRight)
	stats, err := conv.Convert(*inputDir, *outputDir)
	if err != nil {
		panic(err)
	}

	logger.Sugar().Infof("conversion completed successfully: %d edges from %d segments.",
		stats.Edges, stats.Segments)
}
