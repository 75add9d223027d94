//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/rachellllllllll/CreditCanvas-sub001/test/integration/steps"
)

// Scenarios share one in-memory database, so they run one at a time in file order.
// Flags such as -godog.tags=@pattern_rules or -godog.format=pretty override the defaults.
var opts = godog.Options{
	Format:      "progress",
	Paths:       []string{"features"},
	Output:      colors.Colored(os.Stdout),
	Concurrency: 1,
	Strict:      true,
}

func init() {
	godog.BindCommandLineFlags("godog.", &opts)
}

// TestFeatures runs the reconciliation and pattern rule feature files.
func TestFeatures(t *testing.T) {
	suiteOpts := opts
	suiteOpts.TestingT = t

	suite := godog.TestSuite{
		Name:                 "credit-canvas-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &suiteOpts,
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite failed with status %d", status)
	}
}
