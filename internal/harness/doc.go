// Package harness runs YAML-declared conformance scenarios - a graph, a
// trace, and an expected replay/quantify/align outcome. Run checks the
// outcome against the scenario's expect clause; RunWithGolden additionally
// compares the result against a golden file under testdata/golden via
// goldie. The seed scenarios (§8) under the repository's scenarios/
// directory are run through Run by `dcr test`, without golden files.
package harness
