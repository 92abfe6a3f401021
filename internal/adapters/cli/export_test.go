package cli

// RunScenario exposes runScenario to the external test package
var RunScenario = runScenario
