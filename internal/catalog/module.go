package catalog

import "go.uber.org/fx"

// Module provides the static catalog to the fx container.
var Module = fx.Provide(Default)
