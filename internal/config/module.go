package config

import "go.uber.org/fx"

// Module provides the parsed configuration to fx graphs.
var Module = fx.Provide(Load)
