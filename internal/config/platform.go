// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package config

import "runtime"

// runtimeIsApple reports whether the default for MetaAsCtrl (true on
// Apple platforms) should be enabled on the host.
func runtimeIsApple() bool {
	return runtime.GOOS == "darwin"
}
