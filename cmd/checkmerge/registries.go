package main

import (
	"github.com/jjkester/checkmerge/analysis"
	"github.com/jjkester/checkmerge/registry"
)

// parsers and analyses are the process-wide plugin registries (§6). A real
// build of CheckMerge would populate parsers via discovery of language
// front-ends; here there is exactly one, standing in for that mechanism.
var (
	parsers  = registry.New[string, Parser](Parser.Key)
	analyses = registry.New[string, analysis.Analysis](analysis.Analysis.Key)
)

func init() {
	mustRegisterParser(jsonParser{})

	mustRegisterAnalysis(analysis.DependenceAnalysis{})
	mustRegisterAnalysis(analysis.ReferenceAnalysis{})
}

func mustRegisterParser(p Parser) {
	if err := parsers.Register(p); err != nil {
		panic(err)
	}
}

func mustRegisterAnalysis(a analysis.Analysis) {
	if err := analyses.Register(a); err != nil {
		panic(err)
	}
}
