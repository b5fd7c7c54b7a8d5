// ABOUTME: Sentinel errors for the derivation engine.
// ABOUTME: Missing intake data must fail loudly, never default silently.
package engine

import "errors"

// ErrMissingIntake is returned when age-adjusted classification or risk
// projection is requested without an intake profile. Defaulting age or sex
// would produce clinically misleading output, so this is a hard failure.
var ErrMissingIntake = errors.New("intake profile required for age-adjusted analysis")
