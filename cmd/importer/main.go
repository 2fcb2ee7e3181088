// Command importer loads pandals from a GeoJSON FeatureCollection into the
// configured store, or writes the stored pandals out as GeoJSON.
package main

import (
	"context"
	"flag"
	"os"

	"utsavdarshan/config"
	"utsavdarshan/internal/database"
	"utsavdarshan/internal/logger"
	"utsavdarshan/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "", "GeoJSON FeatureCollection to import")
	export := flag.String("export", "", "write all pandals as GeoJSON to this path instead of importing")
	flag.Parse()
	if (*file == "") == (*export == "") {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	cfg.Log.Stdout = true
	logger.Setup(cfg.Log, false)

	ctx := context.Background()
	store, err := database.OpenStore(ctx, &cfg.Store)
	if err != nil {
		logrus.WithError(err).Fatal("store")
	}
	defer store.Close(ctx)

	dir := service.NewDirectoryService(cfg.Directory, store, store, store)
	im := service.NewImporter(dir)

	if *export != "" {
		out, err := os.Create(*export)
		if err != nil {
			logrus.WithError(err).Fatal("create export file")
		}
		defer out.Close()
		if err := im.Export(ctx, out); err != nil {
			logrus.WithError(err).Fatal("export")
		}
		logrus.WithField("file", *export).Info("export finished")
		return
	}

	in, err := os.Open(*file)
	if err != nil {
		logrus.WithError(err).Fatal("open import file")
	}
	defer in.Close()
	report, err := im.Import(ctx, in)
	if err != nil {
		logrus.WithError(err).Fatal("import")
	}
	for _, s := range report.Skipped {
		logrus.WithFields(logrus.Fields{"index": s.Index, "reason": s.Reason}).Warn("feature skipped")
	}
	logrus.WithFields(logrus.Fields{"inserted": report.Inserted, "skipped": len(report.Skipped)}).Info("import finished")
}
