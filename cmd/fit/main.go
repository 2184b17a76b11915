// Command fit runs one bootstrap analysis over a spreadsheet or CSV of
// observation blocks and prints the diagnostics report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"psyfit/adapters/excel"
	"psyfit/app"
	"psyfit/domain/trials"
	"psyfit/internal/report"
	"psyfit/internal/testkit"
)

func main() {
	var (
		file          = flag.String("file", "", "xlsx or csv file with intensity,correct,trials columns (fixture data when empty)")
		sigmoid       = flag.String("sigmoid", app.DefaultSigmoid, "sigmoid descriptor")
		coreDesc      = flag.String("core", app.DefaultCore, "core descriptor, e.g. ab or mw0.1")
		nsamples      = flag.Int("nsamples", app.DefaultSamples, "number of bootstrap samples")
		nafc          = flag.Int("nafc", app.DefaultNafc, "number of alternatives (1 for yes/no)")
		cuts          = flag.String("cuts", "", "comma-separated cut levels, e.g. 0.25,0.5,0.75")
		priors        = flag.String("priors", "", "semicolon-separated prior expressions, one per parameter, e.g. 'Gauss(0,100);Gauss(0,100);Beta(2,30)'")
		nonparametric = flag.Bool("nonparametric", false, "use non-parametric resampling")
		seed          = flag.Int64("seed", 42, "engine seed")
	)
	flag.Parse()

	data, err := loadData(*file)
	if err != nil {
		log.Fatalf("failed to load data: %v", err)
	}

	params := app.Params{
		Samples: *nsamples,
		Nafc:    *nafc,
		Sigmoid: *sigmoid,
		Core:    *coreDesc,
	}
	if *cuts != "" {
		params.Cuts, err = parseCutsFlag(*cuts)
		if err != nil {
			log.Fatalf("bad -cuts: %v", err)
		}
	}
	if *priors != "" {
		params.Priors = strings.Split(*priors, ";")
	}
	if *nonparametric {
		parametric := false
		params.Parametric = &parametric
	}

	svc := app.NewBootstrapService(testkit.NewSyntheticEngine(*seed), nil)
	record, err := svc.Run(context.Background(), data, params)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	fmt.Print(report.BuildMarkdown(record))
}

func loadData(file string) (*trials.Dataset, error) {
	if file == "" {
		log.Printf("no -file given, using fixture session")
		return testkit.FixtureDataset(), nil
	}
	return excel.NewDataReader(file).ReadBlocks()
}

func parseCutsFlag(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
